package classifier

import (
	"math/rand/v2"
	"slices"
)

// Node is one element of a flattened decision tree.
// Leaves carry the fraction of positive samples that reached them.
type Node struct {
	Leaf      bool    `json:"leaf,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Value     float64 `json:"value,omitempty"`
}

// Tree is a binary CART classifier stored as a node slice rooted at index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Proba walks the tree and returns the positive-class fraction of the reached leaf.
func (t *Tree) Proba(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type treeBuilder struct {
	x               [][]float64
	y               []int
	rng             *rand.Rand
	maxFeatures     int
	maxDepth        int
	minSamplesSplit int
	nodes           []Node
}

func (b *treeBuilder) build(samples []int) *Tree {
	b.nodes = b.nodes[:0]
	b.grow(samples, 0)
	return &Tree{Nodes: slices.Clone(b.nodes)}
}

func (b *treeBuilder) grow(samples []int, depth int) int {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{})

	positives := 0
	for _, s := range samples {
		positives += b.y[s]
	}
	value := float64(positives) / float64(len(samples))

	pure := positives == 0 || positives == len(samples)
	if pure || len(samples) < b.minSamplesSplit || (b.maxDepth > 0 && depth >= b.maxDepth) {
		b.nodes[idx] = Node{Leaf: true, Value: value}
		return idx
	}

	feature, threshold, ok := b.bestSplit(samples, positives)
	if !ok {
		b.nodes[idx] = Node{Leaf: true, Value: value}
		return idx
	}

	var left, right []int
	for _, s := range samples {
		if b.x[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[idx] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return idx
}

// bestSplit scans candidate features in random order and keeps the split with
// the lowest weighted Gini impurity. Constant features do not count toward
// maxFeatures, so a split is found whenever any feature varies.
func (b *treeBuilder) bestSplit(samples []int, positives int) (int, float64, bool) {
	width := len(b.x[samples[0]])
	order := b.rng.Perm(width)

	sorted := slices.Clone(samples)
	n := float64(len(samples))

	bestScore := 0.0
	bestFeature, bestThreshold := -1, 0.0
	visited := 0

	for _, f := range order {
		if visited >= b.maxFeatures && bestFeature >= 0 {
			break
		}

		slices.SortStableFunc(sorted, func(a, c int) int {
			switch va, vc := b.x[a][f], b.x[c][f]; {
			case va < vc:
				return -1
			case va > vc:
				return 1
			}
			return 0
		})

		if b.x[sorted[0]][f] == b.x[sorted[len(sorted)-1]][f] {
			continue
		}
		visited++

		leftPos := 0
		for i := 0; i < len(sorted)-1; i++ {
			leftPos += b.y[sorted[i]]

			cur, next := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if cur == next {
				continue
			}

			nl := float64(i + 1)
			nr := n - nl
			score := nl*gini(nl, float64(leftPos)) + nr*gini(nr, float64(positives-leftPos))

			if bestFeature < 0 || score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = cur + (next-cur)/2
				if bestThreshold == next {
					bestThreshold = cur
				}
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func gini(n, positives float64) float64 {
	p := positives / n
	return 2 * p * (1 - p)
}
