package forest

import (
	"math/rand"
	"sort"
)

// treeNode is one node of a regression tree. Leaves carry the mean target of
// their samples; internal nodes split on feature <= threshold.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

// treeBuilder grows one tree on a bootstrap sample. importances accumulates
// the total variance reduction per feature, weighted by node size.
type treeBuilder struct {
	x               [][]float64 // row-major feature matrix
	y               []float64
	rng             *rand.Rand
	maxFeatures     int
	minSamplesSplit int
	nTotal          float64
	importances     []float64
}

func (b *treeBuilder) build(idx []int) *treeNode {
	mean, variance := meanVar(b.y, idx)

	if len(idx) < b.minSamplesSplit || variance == 0 {
		return &treeNode{leaf: true, value: mean}
	}

	feature, threshold, decrease, ok := b.bestSplit(idx, variance)
	if !ok {
		return &treeNode{leaf: true, value: mean}
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return &treeNode{leaf: true, value: mean}
	}

	b.importances[feature] += float64(len(idx)) / b.nTotal * decrease

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      b.build(leftIdx),
		right:     b.build(rightIdx),
	}
}

// bestSplit scans a random subset of features for the split with the largest
// impurity (variance) decrease. Candidate thresholds are midpoints between
// consecutive distinct values.
func (b *treeBuilder) bestSplit(idx []int, parentVar float64) (feature int, threshold, decrease float64, ok bool) {
	nFeatures := len(b.x[0])
	candidates := b.rng.Perm(nFeatures)[:b.maxFeatures]

	n := float64(len(idx))
	bestDecrease := 0.0

	for _, f := range candidates {
		// Sort sample indices by this feature's value.
		sorted := make([]int, len(idx))
		copy(sorted, idx)
		sortByFeature(sorted, b.x, f)

		// Running sums for incremental left/right variance.
		var sumL, sumSqL float64
		sumR, sumSqR := 0.0, 0.0
		for _, i := range sorted {
			sumR += b.y[i]
			sumSqR += b.y[i] * b.y[i]
		}

		for s := 0; s < len(sorted)-1; s++ {
			yi := b.y[sorted[s]]
			sumL += yi
			sumSqL += yi * yi
			sumR -= yi
			sumSqR -= yi * yi

			cur := b.x[sorted[s]][f]
			next := b.x[sorted[s+1]][f]
			if cur == next {
				continue
			}

			nL := float64(s + 1)
			nR := n - nL
			varL := sumSqL/nL - (sumL/nL)*(sumL/nL)
			varR := sumSqR/nR - (sumR/nR)*(sumR/nR)

			dec := parentVar - (nL/n)*varL - (nR/n)*varR
			if dec > bestDecrease {
				bestDecrease = dec
				feature = f
				threshold = (cur + next) / 2
				ok = true
			}
		}
	}

	return feature, threshold, bestDecrease, ok
}

func (t *treeNode) predict(row []float64) float64 {
	for !t.leaf {
		if row[t.feature] <= t.threshold {
			t = t.left
		} else {
			t = t.right
		}
	}
	return t.value
}

// meanVar computes the mean and population variance of y over the indices.
func meanVar(y []float64, idx []int) (mean, variance float64) {
	n := float64(len(idx))
	if n == 0 {
		return 0, 0
	}
	sum, sumSq := 0.0, 0.0
	for _, i := range idx {
		sum += y[i]
		sumSq += y[i] * y[i]
	}
	mean = sum / n
	variance = sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, variance
}

// sortByFeature sorts sample indices ascending by one feature column,
// breaking value ties by index so tree growth is fully deterministic.
func sortByFeature(idx []int, x [][]float64, f int) {
	sort.Slice(idx, func(a, b int) bool {
		if x[idx[a]][f] != x[idx[b]][f] {
			return x[idx[a]][f] < x[idx[b]][f]
		}
		return idx[a] < idx[b]
	})
}
