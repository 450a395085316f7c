package scenes

import (
	"os"

	cfg "github.com/ferngale/spellarena-mp/config"
	"github.com/ferngale/spellarena-mp/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// MenuScene displays the main menu
type MenuScene struct {
	sceneChanger SceneChanger
	selected     int
}

// NewMenuScene creates a new menu scene
func NewMenuScene(sc SceneChanger) *MenuScene {
	return &MenuScene{sceneChanger: sc}
}

func (ms *MenuScene) Update() {
	options := cfg.Menu.MenuOptions

	if menuKeyJustPressed(cfg.ActionMenuUp) {
		ms.selected = (ms.selected - 1 + len(options)) % len(options)
	}
	if menuKeyJustPressed(cfg.ActionMenuDown) {
		ms.selected = (ms.selected + 1) % len(options)
	}

	if menuKeyJustPressed(cfg.ActionMenuSelect) {
		switch options[ms.selected] {
		case "Join Arena":
			ms.sceneChanger.ChangeScene(NewConnectScene(ms.sceneChanger))
		case "Exit":
			os.Exit(0)
		}
	}
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.Menu.BackgroundColor)

	titleFace := fonts.Title.Get()
	normalFace := fonts.Regular.Get()

	title := "SPELLARENA"
	titleX := cfg.C.Width/2 - len(title)*8
	text.Draw(screen, title, titleFace, titleX, int(cfg.Menu.TitleY), cfg.Menu.TitleColor)

	y := cfg.Menu.MenuStartY
	for i, option := range cfg.Menu.MenuOptions {
		clr := cfg.Menu.TextColorNormal
		label := option
		if i == ms.selected {
			clr = cfg.Menu.TextColorSelected
			label = "> " + option
		}
		text.Draw(screen, label, normalFace, cfg.C.Width/2-60, int(y), clr)
		y += cfg.Menu.MenuItemHeight + cfg.Menu.MenuItemGap
	}
}

func menuKeyJustPressed(action cfg.ActionID) bool {
	for _, k := range cfg.Input.Bindings[action].Keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
