package config

import "math"

// Difficulty maps a player's level to asteroid speed.
// Speed grows as level^Exponent, so later rounds are monotonically harder
// for any non-negative exponent.
type Difficulty struct {
	Exponent float64
}

// AsteroidSpeed returns the horizontal asteroid velocity for a level.
// Levels below 1 are treated as level 1.
func (d Difficulty) AsteroidSpeed(level int) float64 {
	if level < 1 {
		level = 1
	}
	return math.Pow(float64(level), d.Exponent)
}
