package crossing

import "github.com/vovakirdan/asteroid-crossing/internal/core"

// Snapshot is a read-only copy of the round for the presentation layer.
type Snapshot struct {
	Tick          uint64
	Phase         Phase
	Players       [2]Player
	DockSites     []DockSite
	BlackHoles    []BlackHole
	Asteroids     []Asteroid
	Scores        [2]int
	Levels        [2]int
	TurnSeconds   int64
	StunRemaining int64 // Milliseconds left in an explosion pause
}

// Snapshot returns the current state. Slices are copied so the caller may
// keep the snapshot across steps.
func (r *Round) Snapshot() Snapshot {
	return Snapshot{
		Tick:          r.tick,
		Phase:         r.phase,
		Players:       r.players,
		DockSites:     append([]DockSite(nil), r.docks...),
		BlackHoles:    append([]BlackHole(nil), r.blackHoles...),
		Asteroids:     append([]Asteroid(nil), r.asteroids...),
		Scores:        r.scores,
		Levels:        r.params.Levels,
		TurnSeconds:   r.TurnSeconds(),
		StunRemaining: r.stunLeft,
	}
}

// Player returns a player from the snapshot.
func (s Snapshot) Player(id core.PlayerID) Player {
	return s.Players[id.Index()]
}

// Entities flattens the snapshot into draw order: docks, black holes,
// asteroids, then the players that are visible. Player 1 is hidden once its
// turn is over; player 2 is always shown.
func (s Snapshot) Entities() []Entity {
	out := make([]Entity, 0, len(s.DockSites)+len(s.BlackHoles)+len(s.Asteroids)+2)
	for _, d := range s.DockSites {
		out = append(out, Entity{Kind: KindDockSite, Pos: d.Pos})
	}
	for _, h := range s.BlackHoles {
		out = append(out, Entity{Kind: KindBlackHole, Pos: h.Pos})
	}
	for _, a := range s.Asteroids {
		out = append(out, Entity{Kind: KindAsteroid, Pos: a.Pos})
	}

	p1 := s.Players[0]
	if p1.Active || p1.Exploded {
		out = append(out, Entity{Kind: p1.Kind(), Pos: p1.Pos})
	}
	p2 := s.Players[1]
	out = append(out, Entity{Kind: p2.Kind(), Pos: p2.Pos})
	return out
}
