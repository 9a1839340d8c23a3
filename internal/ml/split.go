package ml

import (
	"math/rand/v2"
)

// TrainTestSplit partitions row indices [0,n) into disjoint train and test
// sets using a deterministic shuffle. testFraction is the share of rows
// held out, truncated toward zero.
func TrainTestSplit(n int, testFraction float64, seed uint64) (train, test []int) {
	rng := rand.New(rand.NewPCG(seed, 0))
	perm := rng.Perm(n)

	nTest := int(float64(n) * testFraction)
	if nTest < 0 {
		nTest = 0
	}
	if nTest > n {
		nTest = n
	}
	return perm[nTest:], perm[:nTest]
}
