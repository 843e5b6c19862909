// Package data holds the static rosters the game draws flavor from.
package data

import "math/rand"

// Racers is the pool of rival driver names the results board fills its
// standings with.
var Racers = []string{
	"BIG MIKE", "SLICK RICK", "THE BARON", "CRASH", "NITRO NED",
	"LEADFOOT LOU", "GEARBOX", "THE PROFESSOR", "DUSTY", "REDLINE RAY",
	"SIDEWINDER", "MAVERICK", "TURBO TINA", "SMOKEY", "THE COMET",
	"HIGHWAY HANK", "DIESEL DAN", "ROADRUNNER", "WIPEOUT", "THE JUDGE",
}

// PickRacers samples n distinct names from the pool. When n exceeds the
// pool, the whole shuffled pool is returned.
func PickRacers(rng *rand.Rand, n int) []string {
	pool := make([]string, len(Racers))
	copy(pool, Racers)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
