package classifier

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Options configures forest training.
type Options struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	Seed            uint64
}

// DefaultOptions returns the forest settings used by the pipeline.
func DefaultOptions() Options {
	return Options{
		Trees:           100,
		MinSamplesSplit: 2,
		Seed:            42,
	}
}

func (o *Options) normalize() {
	if o.Trees <= 0 {
		o.Trees = 100
	}
	if o.MinSamplesSplit < 2 {
		o.MinSamplesSplit = 2
	}
}

// Forest is a bagged ensemble of CART trees.
type Forest struct {
	Trees []*Tree `json:"trees"`
}

// TrainForest fits a random forest on already scaled features.
// Each tree draws a bootstrap sample and sqrt(width) candidate features per split
// from a PCG source seeded with opts.Seed, so identical input yields an identical forest.
func TrainForest(x [][]float64, y []int, opts Options) (*Forest, error) {
	if err := validate(x, y); err != nil {
		return nil, err
	}
	opts.normalize()

	width := len(x[0])
	master := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	builder := &treeBuilder{
		x:               x,
		y:               y,
		maxFeatures:     max(1, int(math.Sqrt(float64(width)))),
		maxDepth:        opts.MaxDepth,
		minSamplesSplit: opts.MinSamplesSplit,
	}

	forest := &Forest{Trees: make([]*Tree, 0, opts.Trees)}
	samples := make([]int, len(x))

	for range opts.Trees {
		builder.rng = rand.New(rand.NewPCG(master.Uint64(), master.Uint64()))
		for i := range samples {
			samples[i] = builder.rng.IntN(len(x))
		}
		forest.Trees = append(forest.Trees, builder.build(samples))
	}

	return forest, nil
}

// Proba averages the positive-class probability of every tree.
func (f *Forest) Proba(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range f.Trees {
		sum += t.Proba(x)
	}
	return sum / float64(len(f.Trees))
}

func validate(x [][]float64, y []int) error {
	if len(x) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", ErrDimensionMismatch, len(x), len(y))
	}

	width := len(x[0])
	if width == 0 {
		return fmt.Errorf("%w: rows have no features", ErrDimensionMismatch)
	}

	positives := 0
	for i, row := range x {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(row), width)
		}
		if y[i] != 0 && y[i] != 1 {
			return fmt.Errorf("label %d at row %d is not binary", y[i], i)
		}
		positives += y[i]
	}

	if positives == 0 || positives == len(y) {
		return ErrDegenerateLabels
	}
	return nil
}
