package generation

import (
	"hash/fnv"
	"math/rand"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// tableRand returns the random source a table generator draws from.
// Each table has its own stream derived from the run seed and the table name,
// so the order generators run in never changes what they produce.
func tableRand(seed int64, table entities.Table) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(table))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
}

// intBetween draws an int in [min, max]
func intBetween(r *rand.Rand, min, max int) int {
	return min + r.Intn(max-min+1)
}

// floatBetween draws a float in [min, max)
func floatBetween(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

func choice[T any](r *rand.Rand, items []T) T {
	return items[r.Intn(len(items))]
}

// oneIn returns true with probability 1/n
func oneIn(r *rand.Rand, n int) bool {
	return r.Intn(n) == 0
}
