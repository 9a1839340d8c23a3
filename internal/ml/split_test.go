package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainTestSplit(t *testing.T) {
	t.Run("partitions all rows disjointly", func(t *testing.T) {
		train, test := TrainTestSplit(100, 0.2, 42)
		assert.Len(t, test, 20)
		assert.Len(t, train, 80)

		seen := map[int]bool{}
		for _, i := range append(append([]int{}, train...), test...) {
			assert.False(t, seen[i], "row %d appears twice", i)
			seen[i] = true
		}
		assert.Len(t, seen, 100)
	})

	t.Run("deterministic for a seed", func(t *testing.T) {
		train1, test1 := TrainTestSplit(50, 0.2, 42)
		train2, test2 := TrainTestSplit(50, 0.2, 42)
		assert.Equal(t, train1, train2)
		assert.Equal(t, test1, test2)

		_, test3 := TrainTestSplit(50, 0.2, 7)
		assert.NotEqual(t, test1, test3)
	})

	t.Run("truncates the test share", func(t *testing.T) {
		train, test := TrainTestSplit(24, 0.2, 42)
		assert.Len(t, test, 4) // int(24 * 0.2)
		assert.Len(t, train, 20)
	})

	t.Run("degenerate fractions", func(t *testing.T) {
		train, test := TrainTestSplit(10, 0, 42)
		require.Len(t, test, 0)
		assert.Len(t, train, 10)

		train, test = TrainTestSplit(10, 1, 42)
		assert.Len(t, test, 10)
		assert.Len(t, train, 0)
	})
}
