package crossing

import "github.com/vovakirdan/asteroid-crossing/internal/core"

// HazardKind selects the collision threshold.
type HazardKind int

const (
	HazardBlackHole HazardKind = iota
	HazardAsteroid
)

// Collision thresholds in arena units. These are gameplay constants and are
// not derived from sprite sizes.
const (
	BlackHoleThreshold = 40.0
	AsteroidThreshold  = 50.0
)

// Threshold returns the collision distance for the hazard kind.
func (k HazardKind) Threshold() float64 {
	if k == HazardBlackHole {
		return BlackHoleThreshold
	}
	return AsteroidThreshold
}

// Positioned is anything with an arena position.
type Positioned interface {
	Position() core.Vec
}

// IsColliding reports whether a and b are within the kind's threshold.
// The boundary is inclusive.
func IsColliding(a, b core.Vec, kind HazardKind) bool {
	return core.Distance(a, b) <= kind.Threshold()
}

// PlayerHitsAny reports whether any hazard collides with the player position.
func PlayerHitsAny[T Positioned](player core.Vec, hazards []T, kind HazardKind) bool {
	for _, h := range hazards {
		if IsColliding(player, h.Position(), kind) {
			return true
		}
	}
	return false
}
