package ml

import (
	"sort"
)

// TreeNode is one node of a fitted regression tree. Split nodes always
// carry both children; leaves carry neither.
type TreeNode struct {
	Feature   int
	Threshold float64
	Value     float64
	Left      *TreeNode
	Right     *TreeNode
}

// TreeConfig bounds tree growth
type TreeConfig struct {
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
}

// Tree is a single CART regression tree
type Tree struct {
	Root *TreeNode
}

// fitTree grows a regression tree over the rows selected by idx
func fitTree(features [][]float64, targets []float64, idx []int, cfg TreeConfig) *Tree {
	return &Tree{Root: growNode(features, targets, idx, 0, cfg)}
}

func growNode(features [][]float64, targets []float64, idx []int, depth int, cfg TreeConfig) *TreeNode {
	node := &TreeNode{Value: meanAt(targets, idx)}
	if depth >= cfg.MaxDepth || len(idx) < cfg.MinSamplesSplit {
		return node
	}

	feature, threshold, ok := bestSplit(features, targets, idx, cfg.MinSamplesLeaf)
	if !ok {
		return node
	}

	left, right := partition(features, idx, feature, threshold)
	node.Feature = feature
	node.Threshold = threshold
	node.Left = growNode(features, targets, left, depth+1, cfg)
	node.Right = growNode(features, targets, right, depth+1, cfg)
	return node
}

// predict walks the tree to a leaf
func (t *Tree) predict(x []float64) float64 {
	n := t.Root
	for n.Left != nil {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// bestSplit scans every feature for the split minimizing the summed squared
// error of the two children. Candidate thresholds are midpoints between
// adjacent distinct feature values; candidates leaving a child smaller than
// minLeaf are discarded. Requires a strict improvement over the parent.
func bestSplit(features [][]float64, targets []float64, idx []int, minLeaf int) (int, float64, bool) {
	n := len(idx)
	if n < 2 {
		return 0, 0, false
	}

	var totalSum, totalSumSq float64
	for _, i := range idx {
		totalSum += targets[i]
		totalSumSq += targets[i] * targets[i]
	}
	parentSSE := totalSumSq - totalSum*totalSum/float64(n)
	if parentSSE <= 1e-12 {
		return 0, 0, false // node is already pure
	}

	numFeatures := len(features[idx[0]])
	bestScore := parentSSE
	bestFeature := -1
	var bestThreshold float64

	order := make([]int, n)
	for f := 0; f < numFeatures; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return features[order[a]][f] < features[order[b]][f]
		})

		var sumLeft, sumSqLeft float64
		for i := 0; i < n-1; i++ {
			t := targets[order[i]]
			sumLeft += t
			sumSqLeft += t * t

			v, next := features[order[i]][f], features[order[i+1]][f]
			if v == next {
				continue
			}
			leftN, rightN := i+1, n-i-1
			if leftN < minLeaf || rightN < minLeaf {
				continue
			}

			sumRight := totalSum - sumLeft
			sumSqRight := totalSumSq - sumSqLeft
			score := (sumSqLeft - sumLeft*sumLeft/float64(leftN)) +
				(sumSqRight - sumRight*sumRight/float64(rightN))
			if score < bestScore-1e-12 {
				bestScore = score
				bestFeature = f
				bestThreshold = (v + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func partition(features [][]float64, idx []int, feature int, threshold float64) (left, right []int) {
	for _, i := range idx {
		if features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

func meanAt(targets []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += targets[i]
	}
	return sum / float64(len(idx))
}
