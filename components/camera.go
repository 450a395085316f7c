package components

import "github.com/yohamta/donburi"

// CameraData is the top-down view transform: a ground-plane focus point and
// pixels-per-meter zoom.
type CameraData struct {
	X, Z float64
	Zoom float64
}

var Camera = donburi.NewComponentType[CameraData]()
