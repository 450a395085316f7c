package systems

import (
	"fmt"
	"log"

	cfg "github.com/ferngale/spellarena-mp/config"
	"github.com/ferngale/spellarena-mp/fonts"
	"github.com/ferngale/spellarena-mp/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NetDiag aggregates netcode diagnostics: RTT over the last report window and
// reconciliation outcomes. It logs a summary periodically and feeds the HUD.
type NetDiag struct {
	prediction *NetPrediction
	ticks      int

	// Last reported values, shown on the HUD between reports.
	lastRTTMs   [3]int64 // min, avg, max
	hasRTT      bool
	lastStats   ReconcileStats
	hasStats    bool
}

func NewNetDiag(prediction *NetPrediction) *NetDiag {
	return &NetDiag{prediction: prediction}
}

// Update ticks the report timer; every DiagReportTicks it logs and resets the
// RTT and reconciliation windows.
func (d *NetDiag) Update(_ *ecs.ECS) {
	d.ticks++
	if d.ticks < netconfig.DiagReportTicks {
		return
	}
	d.ticks = 0

	if min, avg, max, ok := d.prediction.RTT.Report(); ok {
		d.lastRTTMs = [3]int64{min.Milliseconds(), avg.Milliseconds(), max.Milliseconds()}
		d.hasRTT = true
		log.Printf("[netdiag] rtt min/avg/max = %d/%d/%d ms", d.lastRTTMs[0], d.lastRTTMs[1], d.lastRTTMs[2])
	}

	stats := d.prediction.TakeStats()
	if stats.Acks > 0 {
		d.lastStats = stats
		d.hasStats = true
		log.Printf("[netdiag] reconcile acks=%d gentle=%d blends=%d snaps=%d maxErr=%.3fm",
			stats.Acks, stats.Gentle, stats.Blends, stats.Snaps, stats.MaxError)
	}
}

// DrawHUD renders connection and netcode stats in the screen corner.
func (d *NetDiag) DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	entityCount := 0
	esync.NetworkEntityQuery.Each(e.World, func(_ *donburi.Entry) {
		entityCount++
	})

	face := fonts.Small.Get()
	x := cfg.HUD.Margin
	y := cfg.HUD.LineHeight

	text.Draw(screen, fmt.Sprintf("Online - Players: %d", entityCount), face, x, y, cfg.HUD.TextColor)
	y += cfg.HUD.LineHeight

	if d.hasRTT {
		text.Draw(screen, fmt.Sprintf("RTT %d/%d/%d ms", d.lastRTTMs[0], d.lastRTTMs[1], d.lastRTTMs[2]), face, x, y, cfg.HUD.TextColor)
		y += cfg.HUD.LineHeight
	}
	if d.hasStats {
		clr := cfg.HUD.TextColor
		if d.lastStats.Snaps > 0 {
			clr = cfg.HUD.WarnColor
		}
		text.Draw(screen, fmt.Sprintf("corr %d snap %d err %.2fm",
			d.lastStats.Gentle+d.lastStats.Blends, d.lastStats.Snaps, d.lastStats.MaxError), face, x, y, clr)
	}
}
