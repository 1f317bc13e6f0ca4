package surfjump

import "github.com/vovakirdan/surfjump/internal/core"

// Direction is the horizontal intent held by the player.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// Sign returns -1, 0 or 1.
func (d Direction) Sign() float64 {
	switch d {
	case DirLeft:
		return -1
	case DirRight:
		return 1
	default:
		return 0
	}
}

const (
	noTouch      = -1
	touchHistory = 3
)

// touchLatch buffers the first active touch between ticks.
// Samples are only read by the player's tick.
type touchLatch struct {
	id  int
	ys  []float64
	dir Direction
}

func newTouchLatch() touchLatch {
	return touchLatch{id: noTouch, ys: make([]float64, 0, touchHistory)}
}

// push records samples of the latched touch. The first touch seen while no
// touch is latched becomes the latched one; other touches are ignored.
func (t *touchLatch) push(samples []core.TouchSample, screenW float64) {
	for _, s := range samples {
		if t.id == noTouch {
			t.id = s.ID
		}
		if s.ID != t.id {
			continue
		}
		if len(t.ys) == touchHistory {
			copy(t.ys, t.ys[1:])
			t.ys = t.ys[:touchHistory-1]
		}
		t.ys = append(t.ys, s.Y)
		if s.X < screenW/2 {
			t.dir = DirLeft
		} else {
			t.dir = DirRight
		}
	}
}

func (t *touchLatch) release(id int) {
	if id != t.id {
		return
	}
	t.id = noTouch
	t.ys = t.ys[:0]
	t.dir = DirNone
}

// swipe returns the vertical travel across the buffered samples.
func (t *touchLatch) swipe() (delta float64, ok bool) {
	if len(t.ys) < 2 {
		return 0, false
	}
	return t.ys[len(t.ys)-1] - t.ys[0], true
}

// settle keeps only the newest sample so one gesture fires once.
func (t *touchLatch) settle() {
	if len(t.ys) > 1 {
		t.ys = append(t.ys[:0], t.ys[len(t.ys)-1])
	}
}
