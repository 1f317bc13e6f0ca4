package surfjump

import (
	"math/rand"

	"github.com/vovakirdan/surfjump/internal/config"
)

// PlatformGenerator owns the active platforms, ordered left to right.
// New platforms are appended ahead of the camera; dead ones retire from the left.
type PlatformGenerator struct {
	cfg       config.PlatformsConfig
	viewW     float64
	tolerance float64 // world units
	rng       *rand.Rand

	platforms []*Platform
	frontier  float64 // right edge of the rightmost platform ever placed
	spans     []Span
}

// NewPlatformGenerator creates a generator with a single starting platform
// centered on the player's spawn point.
func NewPlatformGenerator(cfg config.PlatformsConfig, viewportWidth float64, rng *rand.Rand) *PlatformGenerator {
	g := &PlatformGenerator{
		cfg:       cfg,
		viewW:     viewportWidth,
		tolerance: cfg.CollisionTolerance * viewportWidth,
		rng:       rng,
	}
	start := NewPlatform(PlatformConfig{CenterX: 0, Radius: cfg.StartRadius * viewportWidth}, cfg)
	g.platforms = append(g.platforms, start)
	g.frontier = start.Right()
	return g
}

// Len returns the number of active platforms.
func (g *PlatformGenerator) Len() int { return len(g.platforms) }

// Platform returns the active platform at index i.
func (g *PlatformGenerator) Platform(i int) *Platform { return g.platforms[i] }

// Platforms returns the active platforms, leftmost first.
// The slice is owned by the generator.
func (g *PlatformGenerator) Platforms() []*Platform { return g.platforms }

// Tolerance returns the landing tolerance in world units.
func (g *PlatformGenerator) Tolerance() float64 { return g.tolerance }

// Row returns the tiers a platform may be drawn from at the given difficulty.
// Difficulties past the table use its last row, extended with the hardest
// tier once per extra step when ExtendHardest is set.
func (g *PlatformGenerator) Row(difficulty int) []config.TierConfig {
	table := g.cfg.Table
	if len(table) == 0 {
		return []config.TierConfig{g.cfg.Hardest()}
	}
	difficulty = max(difficulty, 0)
	last := len(table) - 1
	names := table[min(difficulty, last)]

	row := make([]config.TierConfig, 0, len(names))
	for _, name := range names {
		if t, ok := g.cfg.Tier(name); ok {
			row = append(row, t)
		}
	}
	if g.cfg.ExtendHardest && difficulty > last {
		hardest := g.cfg.Hardest()
		for i := 0; i < difficulty-last; i++ {
			row = append(row, hardest)
		}
	}
	if len(row) == 0 {
		row = append(row, g.cfg.Hardest())
	}
	return row
}

// MaybeAddPlatforms appends platforms while the right edge of the view
// (cameraX plus half a viewport) has reached the frontier. Returns the number added.
func (g *PlatformGenerator) MaybeAddPlatforms(cameraX float64, difficulty int) int {
	added := 0
	for cameraX+g.viewW/2 >= g.frontier {
		row := g.Row(difficulty)
		tier := row[g.rng.Intn(len(row))]
		gap := (tier.GapMin + g.rng.Float64()*tier.GapSpan) * g.viewW
		radius := (tier.RadiusMin + g.rng.Float64()*tier.RadiusSpan) * g.viewW

		p := NewPlatform(PlatformConfig{CenterX: g.frontier + gap + radius, Radius: radius}, g.cfg)
		g.platforms = append(g.platforms, p)
		g.frontier = p.Right()
		added++
	}
	return added
}

// Tick advances every platform's sinking and resting pose.
func (g *PlatformGenerator) Tick(dt float64, surf DepthSampler) {
	for _, p := range g.platforms {
		p.Tick(dt, surf)
	}
}

// Retire kills platforms left far behind the camera, then drops the leftmost
// platforms for as long as they are no longer alive. Returns the number removed.
func (g *PlatformGenerator) Retire(cameraX float64) int {
	behind := cameraX - g.cfg.RetireBehind*g.viewW
	for _, p := range g.platforms {
		if p.Right() >= behind {
			break
		}
		if !p.IsDead() {
			p.Kill()
		}
	}

	n := 0
	for n < len(g.platforms) && !g.platforms[n].IsAlive() {
		n++
	}
	if n > 0 {
		clear(g.platforms[:n])
		g.platforms = g.platforms[n:]
	}
	return n
}

// PlatformAt returns the first platform that supports x, or -1 and nil.
// Dead platforms never support the player.
func (g *PlatformGenerator) PlatformAt(x float64) (int, *Platform) {
	for i, p := range g.platforms {
		if p.IsDead() {
			continue
		}
		if p.Contains(x, g.tolerance) {
			return i, p
		}
		if p.Left()-g.tolerance > x {
			break
		}
	}
	return -1, nil
}

// Spans returns the rigid extent of every active platform, index-aligned with Platforms.
func (g *PlatformGenerator) Spans() []Span {
	g.spans = g.spans[:0]
	for _, p := range g.platforms {
		g.spans = append(g.spans, p.Span())
	}
	return g.spans
}
