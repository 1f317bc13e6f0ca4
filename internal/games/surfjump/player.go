package surfjump

import (
	"math"

	"github.com/vovakirdan/surfjump/internal/config"
	"github.com/vovakirdan/surfjump/internal/core"
)

// Surface is what the player needs from the height field.
type Surface interface {
	DepthAt(worldX float64) float64
	Impact(worldX, magnitude float64)
}

// Supports finds the platform under a world x coordinate.
type Supports interface {
	PlatformAt(x float64) (int, *Platform)
}

// OutcomeKind classifies what happened to the player's support during a tick.
type OutcomeKind int

const (
	OutcomeNone       OutcomeKind = iota
	OutcomeLanded                 // arrived on a free platform
	OutcomeLandedSame             // jumped and came back down on the collided platform
	OutcomeMissed                 // left a platform for open water
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLanded:
		return "landed"
	case OutcomeLandedSame:
		return "landed_same"
	case OutcomeMissed:
		return "missed"
	default:
		return "none"
	}
}

// Outcome is the support transition reported by Player.Tick.
type Outcome struct {
	Kind     OutcomeKind
	Index    int       // platform index for landed outcomes, -1 otherwise
	Platform *Platform // platform now under the player
	Left     *Platform // platform the player just left
}

// Report summarizes one player tick.
type Report struct {
	Outcome Outcome
	Jumped  bool
	Landed  bool    // a jump ended this tick
	Impact  float64 // magnitude sent to the surface on landing
}

// Player is the jumping character.
// It is either grounded (stuck to its support), jumping, or exploded.
type Player struct {
	cfg config.PlayerConfig

	x, y       float64
	xVel, yVel float64

	jumping  bool
	inverted bool
	exploded bool
	alpha    float64

	maxVelBonus float64
	held        Direction
	touch       touchLatch
	screenW     float64
	support     *Platform
}

// NewPlayer creates a grounded player at the origin.
// screenW is the display width the touch X coordinates refer to.
func NewPlayer(cfg config.PlayerConfig, screenW float64) *Player {
	return &Player{
		cfg:     cfg,
		alpha:   1,
		touch:   newTouchLatch(),
		screenW: screenW,
	}
}

func (p *Player) X() float64       { return p.x }
func (p *Player) Y() float64       { return p.y }
func (p *Player) XVel() float64    { return p.xVel }
func (p *Player) YVel() float64    { return p.yVel }
func (p *Player) IsJumping() bool  { return p.jumping }
func (p *Player) IsInverted() bool { return p.inverted }
func (p *Player) IsExploded() bool { return p.exploded }

// Alpha is the player's visibility; it fades after an explosion.
func (p *Player) Alpha() float64 { return p.alpha }

// MaxVelBonus is the current speed cap increase.
func (p *Player) MaxVelBonus() float64 { return p.maxVelBonus }

// MaxVel returns the horizontal speed cap including the bonus.
func (p *Player) MaxVel() float64 { return p.cfg.MaxVel + p.maxVelBonus }

// Support returns the platform the player is standing on, if any.
func (p *Player) Support() *Platform { return p.support }

// Place puts a grounded player at x on the given support (nil for open water).
func (p *Player) Place(x float64, support *Platform) {
	p.x = x
	p.support = support
}

// SetMaxVelBonus raises the speed cap for a difficulty value.
func (p *Player) SetMaxVelBonus(difficulty int) {
	p.maxVelBonus = float64(difficulty) * p.cfg.MaxVelBonusPerLevel
}

// Touch latches touch samples until the next tick.
func (p *Player) Touch(samples []core.TouchSample) {
	if p.exploded {
		return
	}
	p.touch.push(samples, p.screenW)
}

// Release ends the latched touch if id matches it.
func (p *Player) Release(id int) {
	p.touch.release(id)
}

// Hold sets the horizontal intent for the next tick only.
// A latched touch takes precedence.
func (p *Player) Hold(d Direction) {
	p.held = d
}

// Jump starts a jump with a swipe strength in [0, 1]. Ignored while
// airborne or exploded. Returns true if a jump started.
func (p *Player) Jump(amount float64) bool {
	if p.jumping || p.exploded {
		return false
	}
	speed := math.Abs(p.xVel) / p.MaxVel()
	p.yVel = p.cfg.MaxJumpVel * math.Min(1, amount*(0.5+0.5*speed))
	p.jumping = true
	return true
}

// SetInverted flips gravity. Outside a level-up the player is also shot
// through the surface with the burst velocity.
func (p *Player) SetInverted(inverted, isLevelUp bool) {
	if p.exploded {
		return
	}
	p.inverted = inverted
	if !isLevelUp {
		p.jumping = true
		p.yVel = p.cfg.BurstVel
	}
}

// Explode ends the run for the player. It stops reacting to input and
// accelerates out of the view.
func (p *Player) Explode() {
	p.exploded = true
	p.touch = newTouchLatch()
	p.held = DirNone
}

// OutOfBounds reports whether an exploded player has left a view that
// extends halfHeight above and below the surface.
func (p *Player) OutOfBounds(halfHeight float64) bool {
	return p.exploded && math.Abs(p.y) > halfHeight
}

func (p *Player) sign() float64 {
	return core.Orientation(p.inverted)
}

// restHeight is where a grounded player sits above (or below, inverted) its support.
func (p *Player) restHeight(plat *Platform, surf Surface) float64 {
	base := surf.DepthAt(p.x)
	if plat != nil {
		base = plat.SurfaceAt(p.x)
	}
	return base + p.sign()*p.cfg.StickOffset
}

// Tick advances the player by dt. Touch input latched since the last tick
// is consumed here.
func (p *Player) Tick(dt float64, surf Surface, sup Supports) Report {
	r := Report{Outcome: Outcome{Index: -1}}

	if p.exploded {
		p.yVel -= p.cfg.ExplodeAccel * dt
		p.y += p.sign() * p.yVel * dt
		p.x += p.xVel * dt
		p.alpha = math.Max(0, p.alpha-p.cfg.ExplodeFade*dt)
		return r
	}

	if delta, ok := p.touch.swipe(); ok && delta < p.cfg.SwipeThreshold {
		r.Jumped = p.Jump(math.Min(1, -delta/p.cfg.SwipeFull))
		p.touch.settle()
	}

	p.moveHorizontal(dt)

	if p.jumping {
		p.y += p.sign() * p.yVel * dt
		p.yVel -= p.cfg.Gravity

		idx, plat := sup.PlatformAt(p.x)
		rest := p.restHeight(plat, surf)
		if p.sign()*(p.y-rest) <= 0 && p.yVel <= 0 {
			r.Landed = true
			r.Impact = p.sign() * p.yVel * p.cfg.ImpactScale
			surf.Impact(p.x, r.Impact)
			p.yVel = 0
			p.jumping = false
			p.y = rest
			r.Outcome = p.resolveSupport(idx, plat, true)
		}
		return r
	}

	idx, plat := sup.PlatformAt(p.x)
	r.Outcome = p.resolveSupport(idx, plat, false)
	p.y = p.restHeight(plat, surf)
	return r
}

func (p *Player) moveHorizontal(dt float64) {
	dir := p.touch.dir
	if dir == DirNone {
		dir = p.held
	}
	p.held = DirNone

	if dir == DirNone {
		p.xVel *= p.cfg.IdleDecay
	} else {
		limit := p.MaxVel()
		p.xVel = core.ClampF(p.xVel+dir.Sign()*p.cfg.Accel*dt, -limit, limit)
	}
	p.x += p.xVel * dt
}

// resolveSupport records the new support and classifies the transition.
func (p *Player) resolveSupport(idx int, plat *Platform, fromJump bool) Outcome {
	prev := p.support
	p.support = plat

	switch {
	case plat == nil:
		if prev != nil {
			return Outcome{Kind: OutcomeMissed, Index: -1, Left: prev}
		}
	case plat != prev || !plat.IsCollided():
		out := Outcome{Kind: OutcomeLanded, Index: idx, Platform: plat, Left: prev}
		if plat.IsCollided() {
			out.Kind = OutcomeLandedSame
		}
		if out.Left == plat {
			out.Left = nil
		}
		return out
	case fromJump:
		return Outcome{Kind: OutcomeLandedSame, Index: idx, Platform: plat}
	}
	return Outcome{Index: -1}
}
