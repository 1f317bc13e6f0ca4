package surfjump

import (
	"github.com/charmbracelet/harmonica"

	"github.com/vovakirdan/surfjump/internal/core"
)

const (
	hudFrequency = 6.0
	hudDamping   = 0.8
)

// HUD holds the progress bar state. The fill chases its target on a spring
// and snaps back to empty when the streak resets.
type HUD struct {
	spring   harmonica.Spring
	fill     float64
	vel      float64
	progress float64
}

func newHUD(fps int) *HUD {
	if fps <= 0 {
		fps = 60
	}
	return &HUD{spring: harmonica.NewSpring(harmonica.FPS(fps), hudFrequency, hudDamping)}
}

// SetProgress sets the streak progress in [0, 1].
func (h *HUD) SetProgress(progress float64) {
	h.progress = core.Clamp01(progress)
	if h.progress == 0 {
		h.fill, h.vel = 0, 0
	}
}

// Target is the fill the bar is moving toward.
func (h *HUD) Target() float64 {
	return 0.1 + h.progress*0.8
}

// Update moves the fill one frame toward the target.
func (h *HUD) Update() {
	h.fill, h.vel = h.spring.Update(h.fill, h.vel, h.Target())
}

// Fill returns the displayed fraction of the bar, in [0, 1].
func (h *HUD) Fill() float64 {
	return core.Clamp01(h.fill)
}
