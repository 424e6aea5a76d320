package anomaly

import (
	"fmt"
	"math"
	"math/rand"
)

// Isolation forest defaults matching the reference configuration
const (
	DefaultTrees      = 100
	DefaultSampleSize = 256
	DefaultSeed       = 42
)

// eulerGamma is the Euler-Mascheroni constant used in the harmonic
// number approximation H(i) = ln(i) + gamma.
const eulerGamma = 0.5772156649015329

// IsolationForest isolates observations with random axis-aligned splits.
// Anomalous rows need fewer splits to isolate, giving them shorter
// average path lengths and scores closer to 1. The generator is re-seeded
// on every Score call, so repeated runs over the same matrix are
// byte-identical.
type IsolationForest struct {
	Trees      int   // Number of trees in the ensemble
	SampleSize int   // Per-tree subsample cap
	Seed       int64 // RNG seed
}

// NewIsolationForest builds a forest with the given parameters. Values
// below the valid minimum fall back to the defaults.
func NewIsolationForest(trees, sampleSize int, seed int64) *IsolationForest {
	if trees < 1 {
		trees = DefaultTrees
	}
	if sampleSize < 2 {
		sampleSize = DefaultSampleSize
	}
	return &IsolationForest{Trees: trees, SampleSize: sampleSize, Seed: seed}
}

// Name identifies the detector in logs and reports
func (f *IsolationForest) Name() string {
	return "isolation-forest"
}

// Score returns one anomaly score in (0, 1] per feature row. Fewer than
// two rows cannot support isolation, so every row scores a neutral 0.5
// and produces no flags under either thresholding mode.
func (f *IsolationForest) Score(features [][]float64) ([]float64, error) {
	if err := validateMatrix(features); err != nil {
		return nil, fmt.Errorf("isolation forest: %w", err)
	}

	n := len(features)
	scores := make([]float64, n)
	if n < 2 {
		for i := range scores {
			scores[i] = 0.5
		}
		return scores, nil
	}

	trees := f.Trees
	if trees < 1 {
		trees = DefaultTrees
	}
	sample := f.SampleSize
	if sample < 2 {
		sample = DefaultSampleSize
	}
	if sample > n {
		sample = n
	}

	rng := rand.New(rand.NewSource(f.Seed))
	heightLimit := int(math.Ceil(math.Log2(float64(sample))))

	pathSums := make([]float64, n)
	for t := 0; t < trees; t++ {
		indices := subsample(rng, n, sample)
		root := buildIsolationTree(rng, features, indices, 0, heightLimit)
		for i, row := range features {
			pathSums[i] += pathLength(root, row, 0)
		}
	}

	norm := avgPathLength(sample)
	for i := range scores {
		mean := pathSums[i] / float64(trees)
		scores[i] = math.Pow(2, -mean/norm)
	}
	return scores, nil
}

// isoNode is one node of an isolation tree. Leaf nodes carry the number
// of rows that reached them; internal nodes carry a split.
type isoNode struct {
	feature int
	split   float64
	left    *isoNode
	right   *isoNode
	size    int
}

// subsample draws k distinct row indices, or all rows when k == n
func subsample(rng *rand.Rand, n, k int) []int {
	if k >= n {
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	return rng.Perm(n)[:k]
}

// buildIsolationTree grows a tree by splitting on a random feature at a
// random point between that feature's observed bounds. Growth stops at
// the height limit, at single-row nodes, or when every candidate feature
// is constant within the node.
func buildIsolationTree(rng *rand.Rand, features [][]float64, indices []int, depth, limit int) *isoNode {
	if depth >= limit || len(indices) <= 1 {
		return &isoNode{size: len(indices)}
	}

	dim := len(features[0])
	feature, lo, hi, ok := pickSplitFeature(rng, features, indices, dim)
	if !ok {
		return &isoNode{size: len(indices)}
	}

	split := lo + rng.Float64()*(hi-lo)
	var left, right []int
	for _, idx := range indices {
		if features[idx][feature] < split {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &isoNode{size: len(indices)}
	}

	return &isoNode{
		feature: feature,
		split:   split,
		left:    buildIsolationTree(rng, features, left, depth+1, limit),
		right:   buildIsolationTree(rng, features, right, depth+1, limit),
	}
}

// pickSplitFeature tries features in a random order and returns the first
// one whose values vary within the node
func pickSplitFeature(rng *rand.Rand, features [][]float64, indices []int, dim int) (feature int, lo, hi float64, ok bool) {
	for _, q := range rng.Perm(dim) {
		lo, hi = featureBounds(features, indices, q)
		if hi > lo {
			return q, lo, hi, true
		}
	}
	return 0, 0, 0, false
}

// featureBounds returns the min and max of one feature across the node's rows
func featureBounds(features [][]float64, indices []int, feature int) (lo, hi float64) {
	lo = features[indices[0]][feature]
	hi = lo
	for _, idx := range indices[1:] {
		v := features[idx][feature]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// pathLength walks a row down the tree and returns the isolation depth,
// extended at leaves by the expected depth of an unbuilt subtree of the
// leaf's size.
func pathLength(node *isoNode, row []float64, depth int) float64 {
	if node.left == nil {
		return float64(depth) + avgPathLength(node.size)
	}
	if row[node.feature] < node.split {
		return pathLength(node.left, row, depth+1)
	}
	return pathLength(node.right, row, depth+1)
}

// avgPathLength is c(n), the expected path length of an unsuccessful
// search in a binary search tree over n rows
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	if n == 2 {
		return 1
	}
	nf := float64(n)
	return 2*(math.Log(nf-1)+eulerGamma) - 2*(nf-1)/nf
}
