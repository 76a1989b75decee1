// Package forest fits bagged ensembles of regression trees with seeded,
// reproducible randomness and reports feature importances.
package forest

import (
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/goanalytics/analysis"
	"github.com/sartorproj/goanalytics/tabular"
)

// Options controls forest construction.
type Options struct {
	Trees           int   // number of trees; must be positive
	Seed            int64 // base RNG seed; tree i derives seed Seed+i
	MaxFeatures     int   // features considered per split; 0 means ceil(p/3)
	MinSamplesSplit int   // minimum node size to attempt a split; 0 means 2
}

// DefaultOptions returns the canonical forest configuration: 100 trees,
// seed 42.
func DefaultOptions() Options {
	return Options{Trees: 100, Seed: 42}
}

// Result holds the fitted forest's in-sample metrics and importances.
type Result struct {
	Importances map[string]float64
	MAE         float64
	MSE         float64
	RMSE        float64
	RSquared    float64
}

// Fit builds a bagged ensemble of regression trees: each tree trains on a
// bootstrap resample of the rows with a random feature subset considered at
// each split. Trees are fitted in parallel, but each derives its own RNG
// from the base seed and results are aggregated in tree order, so output is
// identical at any level of parallelism.
func Fit(nt *tabular.NumericTable, target string, features []string, opts Options) (*Result, error) {
	if opts.Trees <= 0 {
		return nil, analysis.Errorf(analysis.KindInvalidParameter, "number of trees must be positive, got %d", opts.Trees)
	}
	if len(features) == 0 {
		return nil, analysis.Errorf(analysis.KindInvalidParameter, "at least one feature column required")
	}
	if nt.Column(target) == nil {
		return nil, analysis.Errorf(analysis.KindMissingColumn, "target column %q not in cleaned table", target)
	}
	for _, f := range features {
		if nt.Column(f) == nil {
			return nil, analysis.Errorf(analysis.KindMissingColumn, "feature column %q not in cleaned table", f)
		}
	}

	n := nt.Len()
	if n < 2 {
		return nil, analysis.Errorf(analysis.KindInsufficientData, "at least 2 rows required, got %d", n)
	}

	p := len(features)
	maxFeatures := opts.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = (p + 2) / 3 // ceil(p/3), the usual regression default
	}
	if maxFeatures > p {
		maxFeatures = p
	}
	minSplit := opts.MinSamplesSplit
	if minSplit < 2 {
		minSplit = 2
	}

	// Row-major feature matrix and target vector.
	x := make([][]float64, n)
	for i := 0; i < n; i++ {
		x[i] = make([]float64, p)
		for j, f := range features {
			x[i][j] = nt.Column(f)[i]
		}
	}
	y := nt.Column(target)

	trees := make([]*treeNode, opts.Trees)
	treeImportances := make([][]float64, opts.Trees)

	var eg errgroup.Group
	for t := 0; t < opts.Trees; t++ {
		t := t
		eg.Go(func() error {
			rng := rand.New(rand.NewSource(opts.Seed + int64(t)))

			// Bootstrap resample of the rows.
			sample := make([]int, n)
			for i := range sample {
				sample[i] = rng.Intn(n)
			}

			builder := &treeBuilder{
				x:               x,
				y:               y,
				rng:             rng,
				maxFeatures:     maxFeatures,
				minSamplesSplit: minSplit,
				nTotal:          float64(n),
				importances:     make([]float64, p),
			}
			trees[t] = builder.build(sample)
			treeImportances[t] = builder.importances
			return nil
		})
	}
	// Tree fits never error; the group exists for the fan-out.
	_ = eg.Wait()

	// Average predictions across trees.
	preds := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for _, tree := range trees {
			sum += tree.predict(x[i])
		}
		preds[i] = sum / float64(opts.Trees)
	}

	// Error metrics against the training rows.
	mae, mse := 0.0, 0.0
	meanY := 0.0
	for i := 0; i < n; i++ {
		meanY += y[i]
	}
	meanY /= float64(n)

	ssTot := 0.0
	for i := 0; i < n; i++ {
		resid := y[i] - preds[i]
		mae += math.Abs(resid)
		mse += resid * resid
		dev := y[i] - meanY
		ssTot += dev * dev
	}
	mae /= float64(n)
	mse /= float64(n)

	r2 := 1.0
	if ssTot > 0 {
		r2 = 1 - mse*float64(n)/ssTot
	}

	// Importances summed in tree order and normalized to 1 (all zeros when
	// no split ever reduced impurity).
	total := 0.0
	summed := make([]float64, p)
	for _, imp := range treeImportances {
		for j, v := range imp {
			summed[j] += v
			total += v
		}
	}
	importances := make(map[string]float64, p)
	for j, f := range features {
		if total > 0 {
			importances[f] = summed[j] / total
		} else {
			importances[f] = 0
		}
	}

	return &Result{
		Importances: importances,
		MAE:         mae,
		MSE:         mse,
		RMSE:        math.Sqrt(mse),
		RSquared:    r2,
	}, nil
}
