package model

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("model: invalid training input")
	ErrNotTrained   = errors.New("model: fit must be called before predicting")
)

const (
	DefaultLearningRate = 0.2
	DefaultIterations   = 1500
)

type Options struct {
	LearningRate float64
	Iterations   int

	// GradientShards splits per-iteration gradient accumulation across
	// goroutines. Shard partials are combined in shard order, so results do
	// not depend on goroutine scheduling. 0 or 1 keeps accumulation serial.
	GradientShards int
}

// LogisticRegression is a fixed-budget batch-gradient-descent classifier.
// Parameters are zeroed at the start of every Fit and are read-only between
// Fit calls; there are no online updates.
type LogisticRegression struct {
	weights []float64
	bias    float64

	learningRate float64
	iterations   int
	shards       int

	trained bool
}

func NewLogisticRegression(opts Options) *LogisticRegression {
	lr := opts.LearningRate
	if lr <= 0 {
		lr = DefaultLearningRate
	}
	iters := opts.Iterations
	if iters < 0 {
		iters = DefaultIterations
	}
	shards := opts.GradientShards
	if shards < 1 {
		shards = 1
	}
	return &LogisticRegression{
		learningRate: lr,
		iterations:   iters,
		shards:       shards,
	}
}

func (m *LogisticRegression) Trained() bool { return m.trained }

func (m *LogisticRegression) Weights() []float64 {
	out := make([]float64, len(m.weights))
	copy(out, m.weights)
	return out
}

func (m *LogisticRegression) Bias() float64 { return m.bias }

// Fit runs exactly the configured number of full-batch rounds. There is no
// convergence check or early stopping: the iteration budget is the sole
// termination condition. An iteration budget of zero is legal and leaves the
// parameters at zero.
func (m *LogisticRegression) Fit(matrix [][]float64, labels []float64) error {
	if len(matrix) == 0 {
		return fmt.Errorf("%w: empty feature matrix", ErrInvalidInput)
	}
	if len(matrix) != len(labels) {
		return fmt.Errorf("%w: %d feature rows vs %d labels", ErrInvalidInput, len(matrix), len(labels))
	}
	width := len(matrix[0])
	if width == 0 {
		return fmt.Errorf("%w: zero-width feature rows", ErrInvalidInput)
	}
	for i, row := range matrix {
		if len(row) != width {
			return fmt.Errorf("%w: ragged matrix, row %d has width %d (want %d)", ErrInvalidInput, i, len(row), width)
		}
	}

	n := len(matrix)
	shards := m.shards
	if shards > n {
		shards = n
	}

	m.weights = make([]float64, width)
	m.bias = 0

	partials := make([]gradient, shards)
	for s := range partials {
		partials[s].dw = make([]float64, width)
	}

	for iter := 0; iter < m.iterations; iter++ {
		if shards == 1 {
			partials[0].reset()
			m.accumulate(matrix, labels, 0, n, &partials[0])
		} else {
			var g errgroup.Group
			g.SetLimit(shards)
			per := (n + shards - 1) / shards
			for s := 0; s < shards; s++ {
				s := s
				lo := s * per
				hi := lo + per
				if hi > n {
					hi = n
				}
				g.Go(func() error {
					partials[s].reset()
					m.accumulate(matrix, labels, lo, hi, &partials[s])
					return nil
				})
			}
			_ = g.Wait()
		}

		var db float64
		dw := make([]float64, width)
		for s := range partials {
			db += partials[s].db
			for k, v := range partials[s].dw {
				dw[k] += v
			}
		}

		scale := m.learningRate / float64(n)
		for k := range m.weights {
			m.weights[k] -= scale * dw[k]
		}
		m.bias -= scale * db
	}

	m.trained = true
	return nil
}

type gradient struct {
	dw []float64
	db float64
}

func (g *gradient) reset() {
	for k := range g.dw {
		g.dw[k] = 0
	}
	g.db = 0
}

func (m *LogisticRegression) accumulate(matrix [][]float64, labels []float64, lo, hi int, out *gradient) {
	for i := lo; i < hi; i++ {
		row := matrix[i]
		residual := sigmoid(dot(m.weights, row)+m.bias) - labels[i]
		for k, x := range row {
			out.dw[k] += residual * x
		}
		out.db += residual
	}
}

// PredictProbability returns sigmoid(w·x + b) for a trained model.
func (m *LogisticRegression) PredictProbability(feats []float64) (float64, error) {
	if !m.trained {
		return 0, ErrNotTrained
	}
	if len(feats) != len(m.weights) {
		return 0, fmt.Errorf("%w: feature width %d, model expects %d", ErrInvalidInput, len(feats), len(m.weights))
	}
	return sigmoid(dot(m.weights, feats) + m.bias), nil
}

// PredictLabel thresholds the probability at 0.5, boundary inclusive.
func (m *LogisticRegression) PredictLabel(feats []float64) (int, error) {
	p, err := m.PredictProbability(feats)
	if err != nil {
		return 0, err
	}
	if p >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// sigmoid branches on the sign of z so the exponent argument is always
// non-positive; the naive 1/(1+e^-z) overflows for large negative z.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
