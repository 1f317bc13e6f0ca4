package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/surfjump/internal/core"
)

const scriptTouchID = 7

// script is a list of input frames replayed one per tick by the simulator.
// Past its end every tick is idle.
type script struct {
	frames []core.InputFrame
}

// parseScript reads a comma separated list of steps. Each step is an action
// with an optional repeat count: "right*40,jump,idle*30,swipe".
// Actions: idle, left, right, jump, pause, swipe. A swipe drags a touch
// upward on the right half of a screen of width screenW and takes three ticks.
func parseScript(src string, screenW int) (script, error) {
	var s script
	src = strings.TrimSpace(src)
	if src == "" {
		return s, nil
	}

	for i, step := range strings.Split(src, ",") {
		step = strings.TrimSpace(step)
		name, count := step, 1
		if before, after, ok := strings.Cut(step, "*"); ok {
			n, err := strconv.Atoi(after)
			if err != nil || n < 1 {
				return script{}, fmt.Errorf("script step %d: bad repeat count in %q", i+1, step)
			}
			name, count = before, n
		}

		frames, err := stepFrames(name, screenW)
		if err != nil {
			return script{}, fmt.Errorf("script step %d: %w", i+1, err)
		}
		for range count {
			for _, f := range frames {
				s.frames = append(s.frames, f.Clone())
			}
		}
	}
	return s, nil
}

func stepFrames(name string, screenW int) ([]core.InputFrame, error) {
	single := func(a core.Action) []core.InputFrame {
		f := core.NewInputFrame()
		if a != core.ActionNone {
			f.Set(a)
		}
		return []core.InputFrame{f}
	}

	switch name {
	case "idle":
		return single(core.ActionNone), nil
	case "left":
		return single(core.ActionLeft), nil
	case "right":
		return single(core.ActionRight), nil
	case "jump":
		return single(core.ActionJump), nil
	case "pause":
		return single(core.ActionPause), nil
	case "swipe":
		x := float64(screenW) * 0.75
		start, drag, end := core.NewInputFrame(), core.NewInputFrame(), core.NewInputFrame()
		start.Touch(scriptTouchID, x, 96)
		drag.Touch(scriptTouchID, x, 16)
		end.Release(scriptTouchID)
		return []core.InputFrame{start, drag, end}, nil
	}
	return nil, fmt.Errorf("unknown action %q", name)
}

// Len returns the number of scripted ticks.
func (s script) Len() int {
	return len(s.frames)
}

// Frame returns the input for a zero-based tick.
func (s script) Frame(tick int) core.InputFrame {
	if tick < 0 || tick >= len(s.frames) {
		return core.NewInputFrame()
	}
	return s.frames[tick]
}
