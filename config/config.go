package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the render layer all draw systems register on.
const Default ecs.LayerID = 0

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
}

// CameraConfig contains camera behavior configuration
type CameraConfig struct {
	FollowSmoothing float64 // How fast camera follows player (0.0-1.0)
	PixelsPerMeter  float64 // Top-down view scale
}

// RenderConfig contains top-down rendering configuration
type RenderConfig struct {
	PlayerRadiusPx  float32 // On-screen player disc radius
	JumpPixelsPerM  float64 // Vertical offset per meter of height
	ShadowAlpha     uint8   // Ground shadow opacity
	FacingMarkerLen float32 // Length of yaw indicator line
	NameLabelOffset int     // Pixels above player for the name label
}

// HUDConfig contains network HUD configuration
type HUDConfig struct {
	TextColor  color.RGBA
	WarnColor  color.RGBA
	LineHeight int
	Margin     int
}

// MenuConfig contains main menu configuration values
type MenuConfig struct {
	BackgroundColor   color.RGBA
	TitleColor        color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	TitleY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64
	MenuOptions       []string
}

// CastFXConfig contains cast/attack effect tuning
type CastFXConfig struct {
	CastDuration   float32 // seconds
	CastRadius     float32 // meters
	AttackDuration float32
	AttackRadius   float32
	CastColor      color.RGBA
	AttackColor    color.RGBA
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	SkipMenu      bool   // Skip menu and connect directly
	AutoConnect   string // Address to connect to when SkipMenu is set
	ShowColliders bool   // Outline obstacle collision rects
}

// PlayerColorSet holds the palette cycled through for remote players.
type PlayerColorSet struct {
	Colors []color.RGBA
}

// Global configuration instances
var C *Config
var Camera CameraConfig
var Render RenderConfig
var HUD HUDConfig
var Menu MenuConfig
var CastFX CastFXConfig
var Debug DebugConfig
var PlayerColors PlayerColorSet

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BrightGreen  = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Blue         = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	Purple       = color.RGBA{R: 128, G: 0, B: 255, A: 255}
	Magenta      = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:  960,
		Height: 540,
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.1,
		PixelsPerMeter:  12.0,
	}

	Render = RenderConfig{
		PlayerRadiusPx:  6,
		JumpPixelsPerM:  8.0,
		ShadowAlpha:     90,
		FacingMarkerLen: 10,
		NameLabelOffset: 14,
	}

	HUD = HUDConfig{
		TextColor:  LightGreen,
		WarnColor:  Orange,
		LineHeight: 14,
		Margin:     4,
	}

	Menu = MenuConfig{
		BackgroundColor:   color.RGBA{R: 15, G: 25, B: 50, A: 255},
		TitleColor:        Orange,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		TitleY:            80,
		MenuStartY:        160,
		MenuItemHeight:    30,
		MenuItemGap:       12,
		MenuOptions:       []string{"Join Arena", "Exit"},
	}

	CastFX = CastFXConfig{
		CastDuration:   0.5,
		CastRadius:     2.5,
		AttackDuration: 0.25,
		AttackRadius:   1.5,
		CastColor:      LightBlue,
		AttackColor:    BrightOrange,
	}

	Debug = DebugConfig{
		SkipMenu: false,
	}

	PlayerColors = PlayerColorSet{
		Colors: []color.RGBA{Yellow, Blue, Purple, Magenta, Red, LightBlue},
	}
}
