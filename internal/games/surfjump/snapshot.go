package surfjump

// PlatformSnapshot is the observable state of one platform.
type PlatformSnapshot struct {
	CenterX    float64 `json:"center_x"`
	Radius     float64 `json:"radius"`
	Y          float64 `json:"y"`
	Rotation   float64 `json:"rotation"`
	Collided   bool    `json:"collided"`
	Dead       bool    `json:"dead"`
	Sinking    float64 `json:"sinking"`
	ColorLevel int     `json:"color_level"`
}

// PlayerSnapshot is the observable state of the player.
type PlayerSnapshot struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	XVel     float64 `json:"x_vel"`
	YVel     float64 `json:"y_vel"`
	Jumping  bool    `json:"jumping"`
	Inverted bool    `json:"inverted"`
	Exploded bool    `json:"exploded"`
	Alpha    float64 `json:"alpha"`
}

// Snapshot captures the complete game state for determinism testing and
// for spectators.
type Snapshot struct {
	Tick       uint64             `json:"tick"`
	Status     Status             `json:"status"`
	Level      int                `json:"level"`
	MaxLevel   int                `json:"max_level"`
	Difficulty int                `json:"difficulty"`
	Streak     int                `json:"streak"`
	Score      int                `json:"score"`
	Subscore   int                `json:"subscore"`
	Inverted   bool               `json:"inverted"`
	CameraX    float64            `json:"camera_x"`
	Scroll     float64            `json:"scroll"`
	Surface    []float64          `json:"surface"`
	Player     PlayerSnapshot     `json:"player"`
	Platforms  []PlatformSnapshot `json:"platforms"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Status:     g.status,
		Level:      g.level,
		MaxLevel:   g.maxLevel,
		Difficulty: g.difficulty.Value(),
		Streak:     g.streak,
		Score:      g.score,
		Subscore:   g.subscore,
		Inverted:   g.inverted,
		CameraX:    g.cameraX,
		Scroll:     g.surface.ScrollOffset(),
		Surface:    g.surface.Depths(),
		Player: PlayerSnapshot{
			X:        g.player.X(),
			Y:        g.player.Y(),
			XVel:     g.player.XVel(),
			YVel:     g.player.YVel(),
			Jumping:  g.player.IsJumping(),
			Inverted: g.player.IsInverted(),
			Exploded: g.player.IsExploded(),
			Alpha:    g.player.Alpha(),
		},
	}
	for _, p := range g.platforms.Platforms() {
		s.Platforms = append(s.Platforms, PlatformSnapshot{
			CenterX:    p.CenterX(),
			Radius:     p.Radius(),
			Y:          p.Y(),
			Rotation:   p.Rotation(),
			Collided:   p.IsCollided(),
			Dead:       p.IsDead(),
			Sinking:    p.SinkingOffset(),
			ColorLevel: p.ColorLevel(),
		})
	}
	return s
}
