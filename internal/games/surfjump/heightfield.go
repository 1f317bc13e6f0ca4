package surfjump

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/surfjump/internal/config"
	"github.com/vovakirdan/surfjump/internal/core"
)

// Span is the horizontal extent of a rigid body resting on the surface.
type Span struct {
	Left, Right float64
}

// Contains reports whether x lies inside the span, edges included.
func (s Span) Contains(x float64) bool {
	return x >= s.Left && x <= s.Right
}

// HeightField is the deformable water surface: a fixed window of depth samples
// that follows the camera. Samples live in a ring buffer; logical index 0 is the
// leftmost sample of the window.
type HeightField struct {
	cfg        config.SurfaceConfig
	viewW      float64
	segW       float64
	depths     []float64
	velocities []float64
	accel      []float64 // scratch for Tick

	base         int // ring slot of logical sample 0
	scrollSegs   int // whole segments the window has moved
	renderOffset float64

	spans []Span
	rng   *rand.Rand
}

// NewHeightField creates a surface with random initial depths in
// [-InitialDepth, InitialDepth] and zero velocities.
func NewHeightField(cfg config.SurfaceConfig, viewportWidth float64, rng *rand.Rand) *HeightField {
	n := max(cfg.Segments, 2)
	h := &HeightField{
		cfg:        cfg,
		viewW:      viewportWidth,
		segW:       viewportWidth / float64(n-1),
		depths:     make([]float64, n),
		velocities: make([]float64, n),
		accel:      make([]float64, n),
		rng:        rng,
	}
	for i := range h.depths {
		h.depths[i] = (rng.Float64()*2 - 1) * cfg.InitialDepth
	}
	return h
}

// Len returns the number of samples.
func (h *HeightField) Len() int { return len(h.depths) }

// SegmentWidth returns the world distance between two samples.
func (h *HeightField) SegmentWidth() float64 { return h.segW }

// ScrollOffset returns the segment-aligned world position of the window center.
func (h *HeightField) ScrollOffset() float64 { return float64(h.scrollSegs) * h.segW }

// RenderOffset returns the camera's sub-segment remainder.
func (h *HeightField) RenderOffset() float64 { return h.renderOffset }

func (h *HeightField) slot(i int) int {
	return (h.base + i) % len(h.depths)
}

// Sample returns the depth and velocity of logical sample i.
func (h *HeightField) Sample(i int) (depth, velocity float64) {
	s := h.slot(i)
	return h.depths[s], h.velocities[s]
}

// SampleX returns the world x coordinate of logical sample i.
func (h *HeightField) SampleX(i int) float64 {
	return h.ScrollOffset() - h.viewW/2 + float64(i)*h.segW
}

// Depths returns a copy of the depths in window order.
func (h *HeightField) Depths() []float64 {
	out := make([]float64, len(h.depths))
	for i := range out {
		out[i] = h.depths[h.slot(i)]
	}
	return out
}

// Velocities returns a copy of the velocities in window order.
func (h *HeightField) Velocities() []float64 {
	out := make([]float64, len(h.velocities))
	for i := range out {
		out[i] = h.velocities[h.slot(i)]
	}
	return out
}

// position maps worldX to a fractional sample index, clamped to the window.
func (h *HeightField) position(worldX float64) float64 {
	scaled := (worldX - h.ScrollOffset() + h.viewW/2) / h.viewW
	return core.Clamp01(scaled) * float64(len(h.depths)-1)
}

// bracket returns the two samples around pos and the weight of the upper one.
func (h *HeightField) bracket(pos float64) (lo, hi int, f float64) {
	lo = int(math.Floor(pos))
	hi = min(lo+1, len(h.depths)-1)
	return lo, hi, pos - float64(lo)
}

// DepthAt returns the interpolated surface depth at worldX.
// Positions outside the window use the nearest edge sample.
func (h *HeightField) DepthAt(worldX float64) float64 {
	lo, hi, f := h.bracket(h.position(worldX))
	return h.depths[h.slot(lo)]*(1-f) + h.depths[h.slot(hi)]*f
}

// SetSpans replaces the rigid spans used by Impact. Index i of spans is the
// span index accepted by ImpactSpan.
func (h *HeightField) SetSpans(spans []Span) {
	h.spans = append(h.spans[:0], spans...)
}

// Impact pushes the surface at worldX. Inside a rigid span the push is spread
// over the whole span; on open water only the two bracketing samples move.
func (h *HeightField) Impact(worldX, magnitude float64) {
	for i, s := range h.spans {
		if s.Contains(worldX) {
			h.ImpactSpan(i, worldX, magnitude)
			return
		}
	}
	h.impactPoint(worldX, magnitude)
}

// ImpactSpan pushes the surface under span i: half of the magnitude is shared
// evenly by every sample under the span, the other half lands at worldX.
// Panics if i does not name a current span.
func (h *HeightField) ImpactSpan(i int, worldX, magnitude float64) {
	if i < 0 || i >= len(h.spans) {
		panic(fmt.Sprintf("surfjump: impact on span %d, only %d spans", i, len(h.spans)))
	}
	s := h.spans[i]
	lo := int(math.Floor(h.position(s.Left)))
	hi := int(math.Ceil(h.position(s.Right)))
	share := magnitude / 2 / float64(hi-lo+1)
	for j := lo; j <= hi; j++ {
		h.velocities[h.slot(j)] += share
	}
	h.impactPoint(worldX, magnitude/2)
}

func (h *HeightField) impactPoint(worldX, magnitude float64) {
	lo, hi, f := h.bracket(h.position(worldX))
	if lo == hi {
		h.velocities[h.slot(lo)] += magnitude
		return
	}
	h.velocities[h.slot(lo)] += (1 - f) * magnitude
	h.velocities[h.slot(hi)] += f * magnitude
}

// Tick advances the damped wave equation by dt.
func (h *HeightField) Tick(dt float64) {
	n := len(h.depths)
	for i := 0; i < n; i++ {
		var left, right float64
		if i > 0 {
			left = h.depths[h.slot(i-1)]
		}
		if i < n-1 {
			right = h.depths[h.slot(i+1)]
		}
		h.accel[i] = -h.depths[h.slot(i)]*h.cfg.Restore + (left+right)*h.cfg.Couple
	}
	for i := 0; i < n; i++ {
		s := h.slot(i)
		h.velocities[s] += h.accel[i] * dt
		h.depths[s] += h.velocities[s] * dt
		h.velocities[s] *= h.cfg.Damping
	}

	if h.cfg.PerturbChance > 0 && h.rng.Float64() < h.cfg.PerturbChance {
		s := h.slot(h.rng.Intn(n))
		h.velocities[s] += (h.rng.Float64()*2 - 1) * h.cfg.PerturbMagnitude
	}
}

// ShiftWindow moves the window so that it covers cameraX. Each segment of
// advance recycles the trailing sample into the leading slot; retreating is
// the mirror. Sample values travel with their slots.
func (h *HeightField) ShiftWindow(cameraX float64) {
	target := int(math.Floor(cameraX / h.segW))
	if delta := target - h.scrollSegs; delta != 0 {
		n := len(h.depths)
		h.base = ((h.base+delta)%n + n) % n
		h.scrollSegs = target
	}
	h.renderOffset = cameraX - float64(target)*h.segW
}

// Energy returns a damped-oscillator energy estimate of the surface.
func (h *HeightField) Energy() float64 {
	var e float64
	for i := range h.depths {
		e += 0.5 * (h.velocities[i]*h.velocities[i] + h.cfg.Restore*h.depths[i]*h.depths[i])
	}
	return e
}
