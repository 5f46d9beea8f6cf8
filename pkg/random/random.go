package random

import (
	"math/rand"
	"time"
)

// Source is the part of *rand.Rand the sampling helpers need
type Source interface {
	Intn(n int) int
}

// New returns a random source seeded with seed.
// A zero seed means "seed from the clock", which is what end users get.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SelectRandomItems selects n distinct random indices from [0, totalCount)
// uniformly without replacement. The indices come back in selection order,
// callers sort them if they need calendar order.
func SelectRandomItems(rng Source, totalCount, n int) []int {
	if n <= 0 || totalCount <= 0 {
		return []int{}
	}

	// Create slice of all indices
	allIndices := make([]int, totalCount)
	for i := range allIndices {
		allIndices[i] = i
	}

	if n >= totalCount {
		return allIndices
	}

	// Partial Fisher-Yates: only the first n positions have to be drawn
	for i := 0; i < n; i++ {
		j := i + rng.Intn(totalCount-i)
		allIndices[i], allIndices[j] = allIndices[j], allIndices[i]
	}

	return allIndices[:n]
}

// SelectRandomDates selects n distinct dates from days
func SelectRandomDates(rng Source, days []time.Time, n int) []time.Time {
	indices := SelectRandomItems(rng, len(days), n)

	dates := make([]time.Time, len(indices))
	for i, idx := range indices {
		dates[i] = days[idx]
	}

	return dates
}
