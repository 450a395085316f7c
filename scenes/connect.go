package scenes

import (
	"image/color"
	"strings"
	"sync"

	"github.com/ferngale/spellarena-mp/network"
	"github.com/ferngale/spellarena-mp/systems"
	"github.com/ferngale/spellarena-mp/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// GameVersion is sent with the join handshake; the server rejects mismatches.
const GameVersion = "0.3.0"

// ConnectScene shows the direct-connect form and drives the join handshake.
type ConnectScene struct {
	sceneChanger SceneChanger
	connectUI    *ui.ConnectUI
	netClient    *network.Client
	once         sync.Once
	shouldGoBack bool
	playerName   string
}

func NewConnectScene(sc SceneChanger) *ConnectScene {
	return &ConnectScene{sceneChanger: sc}
}

func (s *ConnectScene) Update() {
	s.once.Do(s.configure)

	s.connectUI.Update()

	if s.shouldGoBack {
		if s.netClient != nil {
			s.netClient.Disconnect()
			s.netClient = nil
		}
		s.sceneChanger.ChangeScene(NewMenuScene(s.sceneChanger))
		return
	}

	if s.netClient == nil {
		return
	}

	switch s.netClient.State() {
	case network.StateJoinedGame:
		s.connectUI.SetStatus("Joined! Loading arena...")
		client := s.netClient
		s.netClient = nil
		s.sceneChanger.ChangeScene(NewNetworkedScene(s.sceneChanger, client))

	case network.StateError:
		errMsg := "Connection failed"
		if err := s.netClient.LastError(); err != nil {
			errMsg = err.Error()
		}
		s.connectUI.SetStatus(errMsg)
		s.connectUI.SetConnecting(false)
		s.netClient.Disconnect()
		s.netClient = nil

	case network.StateConnecting:
		s.connectUI.SetStatus("Connecting...")

	case network.StateConnected:
		s.connectUI.SetStatus("Connected, joining game...")

	case network.StateDisconnected:
		s.connectUI.SetStatus("Disconnected")
		s.connectUI.SetConnecting(false)
		s.netClient = nil
	}
}

func (s *ConnectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	if s.connectUI == nil {
		return
	}
	s.connectUI.UI.Draw(screen)
}

func (s *ConnectScene) configure() {
	s.connectUI = ui.NewConnectUI(
		func(address, playerName string) { s.onConnect(address, playerName) },
		func() { s.shouldGoBack = true },
	)

	if saved, _ := systems.LoadSettings(); saved != nil {
		s.connectUI.SetName(saved.PlayerName)
		if host, port, ok := strings.Cut(saved.LastAddress, ":"); ok {
			s.connectUI.SetAddress(host, port)
		}
	}
}

func (s *ConnectScene) onConnect(address, playerName string) {
	if s.netClient != nil {
		s.netClient.Disconnect()
	}

	s.playerName = playerName
	s.connectUI.SetStatus("Connecting...")
	s.connectUI.SetConnecting(true)

	saved, _ := systems.LoadSettings()
	if saved == nil {
		saved = &systems.SavedSettings{}
	}
	saved.PlayerName = playerName
	saved.LastAddress = address
	_ = systems.SaveSettings(saved)

	s.netClient = network.NewClient()
	s.netClient.Connect(address, GameVersion, playerName)
}
