package surfjump

import (
	"math"

	"github.com/vovakirdan/surfjump/internal/config"
	"github.com/vovakirdan/surfjump/internal/core"
)

// Default platform geometry, in world units.
const (
	DefaultPlatformCenterX = 0.0
	DefaultPlatformRadius  = 0.4
)

// PlatformConfig places a single platform.
type PlatformConfig struct {
	CenterX float64
	Radius  float64
}

// DefaultPlatformConfig returns a platform at the origin with the default radius.
func DefaultPlatformConfig() PlatformConfig {
	return PlatformConfig{CenterX: DefaultPlatformCenterX, Radius: DefaultPlatformRadius}
}

// DepthSampler is the read side of the surface a platform floats on.
type DepthSampler interface {
	DepthAt(worldX float64) float64
}

// Platform is a floating body resting on the surface.
// Lifecycle: free, collided, dead and sinking, then removed by the generator.
type Platform struct {
	centerX float64
	radius  float64

	collided   bool
	dead       bool
	sinking    float64
	colorLevel int

	sinkRate      float64
	sinkThreshold float64

	y        float64
	rotation float64
}

// NewPlatform creates a free platform. Sinking parameters come from lc.
func NewPlatform(pc PlatformConfig, lc config.PlatformsConfig) *Platform {
	return &Platform{
		centerX:       pc.CenterX,
		radius:        pc.Radius,
		sinkRate:      lc.SinkRate,
		sinkThreshold: lc.SinkThreshold,
	}
}

func (p *Platform) CenterX() float64       { return p.centerX }
func (p *Platform) Radius() float64        { return p.radius }
func (p *Platform) Left() float64          { return p.centerX - p.radius }
func (p *Platform) Right() float64         { return p.centerX + p.radius }
func (p *Platform) Y() float64             { return p.y }
func (p *Platform) Rotation() float64      { return p.rotation }
func (p *Platform) IsCollided() bool       { return p.collided }
func (p *Platform) IsDead() bool           { return p.dead }
func (p *Platform) SinkingOffset() float64 { return p.sinking }

// ColorLevel is the level that was active when the platform was landed on.
func (p *Platform) ColorLevel() int { return p.colorLevel }

// Span returns the platform's rigid extent.
func (p *Platform) Span() Span {
	return Span{Left: p.Left(), Right: p.Right()}
}

// Contains reports whether x lies within the platform widened by eps on both sides.
func (p *Platform) Contains(x, eps float64) bool {
	return x >= p.centerX-p.radius-eps && x <= p.centerX+p.radius+eps
}

// SetCollided moves the platform between free and collided. Losing the
// collision kills the platform. Returns true on a free to collided transition.
func (p *Platform) SetCollided(collided bool, level int) bool {
	if p.dead || collided == p.collided {
		return false
	}
	p.collided = collided
	if collided {
		p.colorLevel = level
		return true
	}
	p.dead = true
	return false
}

// Kill marks the platform dead so it sinks and retires.
func (p *Platform) Kill() {
	p.collided = false
	p.dead = true
}

// IsAlive reports whether the platform still belongs to the active set.
func (p *Platform) IsAlive() bool {
	return !p.dead || p.sinking < p.sinkThreshold
}

// SinkProgress is the sinking offset as a fraction of the threshold, in [0, 1].
func (p *Platform) SinkProgress() float64 {
	if p.sinkThreshold <= 0 {
		return 1
	}
	return core.Clamp01(p.sinking / p.sinkThreshold)
}

// Opacity fades from 1 to 0 while the platform sinks.
func (p *Platform) Opacity() float64 {
	return 1 - p.SinkProgress()
}

// SurfaceAt returns the height of the platform's top face at world x.
func (p *Platform) SurfaceAt(x float64) float64 {
	return p.y + math.Sin(p.rotation)*(x-p.centerX)
}

// Tick updates sinking and the resting pose on the surface.
func (p *Platform) Tick(dt float64, surf DepthSampler) {
	if p.dead {
		p.sinking += p.sinkRate * dt
	}
	left := surf.DepthAt(p.Left())
	right := surf.DepthAt(p.Right())
	p.y = (left+right)/2 - p.sinking
	p.rotation = -(left - right) * p.radius * 2
}
