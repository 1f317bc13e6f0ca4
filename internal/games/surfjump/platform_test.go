package surfjump

import (
	"math"
	"testing"

	"github.com/vovakirdan/surfjump/internal/config"
)

// linearSurface is a surface with depth slope*x + offset.
type linearSurface struct {
	slope, offset float64
}

func (s linearSurface) DepthAt(x float64) float64 { return s.slope*x + s.offset }

func testPlatformsConfig() config.PlatformsConfig {
	return config.DefaultSurfjumpConfig().Platforms
}

func TestPlatformContainsTolerance(t *testing.T) {
	p := NewPlatform(PlatformConfig{CenterX: 1.0, Radius: 0.2}, testPlatformsConfig())

	tests := []struct {
		name     string
		x        float64
		eps      float64
		expected bool
	}{
		{"center", 1.0, 0, true},
		{"right edge", 1.2, 0, true},
		{"past right edge, strict", 1.19 + 0.02, 0, false},
		{"within tolerance", 1.19, 0.06, true},
		{"just within tolerance", 1.25, 0.06, true},
		{"outside tolerance", 1.30, 0.06, false},
		{"left tolerance", 0.75, 0.06, true},
		{"left outside", 0.70, 0.06, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Contains(tc.x, tc.eps); got != tc.expected {
				t.Errorf("Contains(%g, %g) = %v, expected %v", tc.x, tc.eps, got, tc.expected)
			}
		})
	}
}

func TestPlatformCollisionLifecycle(t *testing.T) {
	p := NewPlatform(DefaultPlatformConfig(), testPlatformsConfig())

	if p.IsCollided() || p.IsDead() {
		t.Fatal("new platform should be free")
	}
	if !p.SetCollided(true, 3) {
		t.Error("free to collided should report a transition")
	}
	if p.ColorLevel() != 3 {
		t.Errorf("ColorLevel() = %d, expected 3", p.ColorLevel())
	}
	if p.SetCollided(true, 5) {
		t.Error("collided to collided should not report a transition")
	}
	if p.ColorLevel() != 3 {
		t.Error("repeated collision should keep the captured level")
	}

	p.SetCollided(false, 5)
	if !p.IsDead() || p.IsCollided() {
		t.Fatal("losing the collision should kill the platform")
	}

	// Dead platforms never come back.
	if p.SetCollided(true, 6) {
		t.Error("dead platform accepted a collision")
	}
	if p.IsCollided() {
		t.Error("dead platform became collided")
	}
}

func TestFreePlatformUncollideIsNoop(t *testing.T) {
	p := NewPlatform(DefaultPlatformConfig(), testPlatformsConfig())
	p.SetCollided(false, 0)
	if p.IsDead() {
		t.Error("free platform should not die when uncollided")
	}
}

func TestPlatformSinking(t *testing.T) {
	cfg := testPlatformsConfig()
	p := NewPlatform(DefaultPlatformConfig(), cfg)
	flat := linearSurface{}
	const dt = 1.0 / 60.0

	p.Tick(dt, flat)
	if p.SinkingOffset() != 0 {
		t.Error("live platform should not sink")
	}

	p.Kill()
	prevOpacity := p.Opacity()
	ticks := 0
	for p.IsAlive() {
		p.Tick(dt, flat)
		ticks++
		if p.Opacity() > prevOpacity {
			t.Fatal("opacity increased while sinking")
		}
		prevOpacity = p.Opacity()
		if ticks > 1000 {
			t.Fatal("platform never finished sinking")
		}
	}

	// threshold / rate seconds at 60 ticks per second.
	expected := cfg.SinkThreshold / cfg.SinkRate * 60
	if math.Abs(float64(ticks)-expected) > 2 {
		t.Errorf("sank in %d ticks, expected about %.0f", ticks, expected)
	}
	if math.Abs(p.Y()+p.SinkingOffset()) > 1e-12 {
		t.Errorf("Y() = %g, expected minus the sinking offset %g", p.Y(), p.SinkingOffset())
	}
}

func TestPlatformRestingPose(t *testing.T) {
	p := NewPlatform(PlatformConfig{CenterX: 2, Radius: 0.5}, testPlatformsConfig())
	p.Tick(0, linearSurface{slope: 0.1, offset: 0.05})

	// Average of the edge depths.
	if math.Abs(p.Y()-0.25) > 1e-12 {
		t.Errorf("Y() = %g, expected 0.25", p.Y())
	}
	// -(0.2 - 0.3) * radius * 2
	if math.Abs(p.Rotation()-0.1) > 1e-12 {
		t.Errorf("Rotation() = %g, expected 0.1", p.Rotation())
	}
	if p.SurfaceAt(2.5) <= p.SurfaceAt(1.5) {
		t.Error("top face should rise with the surface slope")
	}
	if math.Abs(p.SurfaceAt(2)-p.Y()) > 1e-12 {
		t.Error("SurfaceAt(center) should equal Y()")
	}
}
