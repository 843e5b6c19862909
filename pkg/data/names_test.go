package data

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickRacersReturnsDistinctNames(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	picked := PickRacers(rng, 7)

	assert.Len(t, picked, 7)
	seen := map[string]bool{}
	for _, name := range picked {
		assert.False(t, seen[name], "duplicate rival %q", name)
		seen[name] = true
	}
}

func TestPickRacersCapsAtPoolSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Len(t, PickRacers(rng, 1000), len(Racers))
}

func TestPickRacersDeterministicUnderSeed(t *testing.T) {
	a := PickRacers(rand.New(rand.NewSource(9)), 5)
	b := PickRacers(rand.New(rand.NewSource(9)), 5)
	assert.Equal(t, a, b)
}
