package surfjump

import (
	"fmt"
	"math"

	"github.com/vovakirdan/surfjump/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '●'
	ExplodedChar  = '✶'
	SurfaceChar   = '~'
	WaterChar     = '░'
	PlatformChar  = '▀'
	PlatformUnder = '▄'
	SinkingChar   = '▒'
	BarFull       = '█'
	BarEmpty      = '─'
)

// viewport maps world coordinates to screen cells. Row 0 and the last row
// are reserved for the HUD.
type viewport struct {
	w, h     int
	top      int
	playH    int
	cameraX  float64
	worldW   float64
	worldH   float64
	inverted bool
}

func (g *Game) viewport(dst *core.Screen) viewport {
	return viewport{
		w:        dst.Width(),
		h:        dst.Height(),
		top:      1,
		playH:    max(dst.Height()-2, 1),
		cameraX:  g.cameraX,
		worldW:   g.cfg.World.ViewportWidth,
		worldH:   g.cfg.World.ViewportHeight,
		inverted: g.inverted,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor((x - v.cameraX + v.worldW/2) / v.worldW * float64(v.w)))
}

func (v viewport) worldX(col int) float64 {
	return v.cameraX - v.worldW/2 + (float64(col)+0.5)/float64(v.w)*v.worldW
}

func (v viewport) row(y float64) int {
	center := float64(v.top) + float64(v.playH)/2
	return int(math.Floor(center - y/v.worldH*float64(v.playH)))
}

func (v viewport) inPlay(row int) bool {
	return row >= v.top && row < v.top+v.playH
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.surface == nil {
		return
	}
	v := g.viewport(dst)

	g.drawSurface(dst, v)
	g.drawPlatforms(dst, v)
	g.drawPlayer(dst, v)
	g.drawHUD(dst, v)

	if g.paused {
		drawMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.status == StatusFinished {
		drawMessage(dst,
			"GAME OVER",
			fmt.Sprintf("MAX PWR %d", g.maxLevel),
			fmt.Sprintf("SCORE %d", g.score),
			"Press R to restart")
	}
}

// drawSurface draws the water line and fills the water side. Under inversion
// the water is above the line.
func (g *Game) drawSurface(dst *core.Screen, v viewport) {
	for c := 0; c < v.w; c++ {
		r := v.row(g.surface.DepthAt(v.worldX(c)))
		if v.inPlay(r) {
			dst.SetColored(c, r, SurfaceChar, core.ColorBrightCyan)
		}
		if v.inverted {
			for y := v.top; y < min(r, v.top+v.playH); y++ {
				dst.SetColored(c, y, WaterChar, core.ColorBlue)
			}
			continue
		}
		for y := max(r+1, v.top); y < v.top+v.playH; y++ {
			dst.SetColored(c, y, WaterChar, core.ColorBlue)
		}
	}
}

func (g *Game) drawPlatforms(dst *core.Screen, v viewport) {
	for _, p := range g.platforms.Platforms() {
		from, to := v.col(p.Left()), v.col(p.Right())
		if to < 0 || from >= v.w {
			continue
		}

		ch, color := PlatformChar, core.ColorWhite
		if v.inverted {
			ch = PlatformUnder
		}
		switch {
		case p.IsDead():
			ch, color = SinkingChar, core.ColorGray
			if p.Opacity() < 0.5 {
				ch = WaterChar
			}
		case p.IsCollided():
			color = core.LevelColor(p.ColorLevel())
		}

		for c := max(from, 0); c <= min(to, v.w-1); c++ {
			r := v.row(p.SurfaceAt(v.worldX(c)))
			if v.inPlay(r) {
				dst.SetColored(c, r, ch, color)
			}
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	p := g.player
	c, r := v.col(p.X()), v.row(p.Y())
	if !v.inPlay(r) {
		return
	}
	if p.IsExploded() {
		if p.Alpha() > 0 {
			dst.SetColored(c, r, ExplodedChar, core.ColorRed)
		}
		return
	}
	dst.SetColored(c, r, PlayerChar, g.CurrentLevelColor())
}

// drawHUD draws score and level on the top row and the streak bar on the bottom row.
func (g *Game) drawHUD(dst *core.Screen, v viewport) {
	if g.status == StatusFinished {
		return
	}
	dst.DrawText(1, 0, fmt.Sprintf("SCORE %d", g.score))
	if g.subscore > 0 {
		dst.DrawTextColored(len(fmt.Sprintf("SCORE %d", g.score))+2, 0,
			fmt.Sprintf("+%d", g.subscore), g.CurrentLevelColor())
	}
	pwr := fmt.Sprintf("PWR %d", g.level)
	dst.DrawTextColored(v.w-len(pwr)-1, 0, pwr, g.CurrentLevelColor())

	barY := v.h - 1
	barW := max(v.w-2, 1)
	filled := int(math.Round(g.hud.Fill() * float64(barW)))
	under, underColor := BarEmpty, core.ColorGray
	if g.level > 0 {
		under, underColor = BarFull, core.LevelColor(g.level-1)
	}
	for i := 0; i < barW; i++ {
		if i < filled {
			dst.SetColored(1+i, barY, BarFull, g.CurrentLevelColor())
		} else {
			dst.SetColored(1+i, barY, under, underColor)
		}
	}
}

// drawMessage draws a message box in the center of the screen.
func drawMessage(dst *core.Screen, lines ...string) {
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightWhite
		}
		dst.DrawTextColored(x, box.Y+1+i*2, l, color)
	}
}
