package phasecurve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

var _ interp.FittablePredictor = (*SmoothingSpline)(nil)

// Search range for the roughness penalty, as powers of ten.
const (
	minLogLambda    = -20.0
	maxLogLambda    = 10.0
	lambdaBisection = 100
)

// SmoothingSpline is a penalized cubic smoothing spline (Reinsch form). Fit chooses the
// roughness penalty so that the weighted residual sum of squares
//
//	sum_i w_i (y_i - g(x_i))^2
//
// is as close to Budget as possible without exceeding it. A zero Budget gives the
// natural cubic interpolant. Outside the knot range the spline is extended linearly.
type SmoothingSpline struct {
	Budget  float64   // Allowed weighted residual sum of squares
	Weights []float64 // Optional per-knot weights, all 1 when nil

	xs     []float64
	g      []float64 // fitted values at the knots
	gamma  []float64 // second derivatives at the knots (zero at both ends)
	lambda float64
}

// Fit fits the spline to strictly increasing xs.
func (s *SmoothingSpline) Fit(xs, ys []float64) error {
	n := len(xs)
	if len(ys) != n {
		return fmt.Errorf("spline: xs and ys lengths differ (%d != %d)", n, len(ys))
	}
	if n < 3 {
		return fmt.Errorf("spline: %d knots: %w", n, ErrInsufficientData)
	}
	for i := 1; i < n; i++ {
		if !(xs[i] > xs[i-1]) {
			return ErrUnsortedKnots
		}
	}
	w := s.Weights
	if w == nil {
		w = make([]float64, n)
		for i := range w {
			w[i] = 1
		}
	}
	if len(w) != n {
		return fmt.Errorf("spline: %d weights for %d knots", len(w), n)
	}
	for _, v := range w {
		if !(v > 0) {
			return errors.New("spline: weights must be positive")
		}
	}
	if s.Budget < 0 || math.IsNaN(s.Budget) {
		return ErrInvalidSmoothing
	}

	sys := newReinschSystem(xs, ys, w)

	lambda := 0.0
	if s.Budget > 0 {
		var err error
		lambda, err = sys.searchLambda(s.Budget)
		if err != nil {
			return err
		}
	}
	g, gamma, err := sys.solve(lambda)
	if err != nil {
		return err
	}

	s.xs = append(s.xs[:0], xs...)
	s.g = g
	s.gamma = gamma
	s.lambda = lambda
	return nil
}

// Lambda returns the roughness penalty chosen by the last Fit.
func (s *SmoothingSpline) Lambda() float64 {
	return s.lambda
}

// Predict evaluates the fitted spline at x.
func (s *SmoothingSpline) Predict(x float64) float64 {
	n := len(s.xs)
	if n == 0 {
		panic("spline: Predict called before Fit")
	}
	xs, g, gm := s.xs, s.g, s.gamma

	if x <= xs[0] {
		h := xs[1] - xs[0]
		slope := (g[1]-g[0])/h - h*gm[1]/6
		return g[0] + slope*(x-xs[0])
	}
	if x >= xs[n-1] {
		h := xs[n-1] - xs[n-2]
		slope := (g[n-1]-g[n-2])/h + h*gm[n-2]/6
		return g[n-1] + slope*(x-xs[n-1])
	}

	// xs[i] <= x < xs[i+1]
	i := sort.SearchFloat64s(xs, x)
	if xs[i] > x {
		i--
	}
	h := xs[i+1] - xs[i]
	a := x - xs[i]
	b := xs[i+1] - x
	linear := (a*g[i+1] + b*g[i]) / h
	return linear - a*b/6*((1+a/h)*gm[i+1]+(1+b/h)*gm[i])
}

// reinschSystem holds the banded matrices of the smoothing problem
//
//	(R + lambda Q^T W^-1 Q) gamma = Q^T y,   g = y - lambda W^-1 Q gamma
//
// for the interior knots 1..n-2.
type reinschSystem struct {
	n       int
	y, w    []float64
	a, b, c []float64 // non-zero entries of column j of Q: rows j-1, j, j+1
	rDiag   []float64
	rOff    []float64
	qtw     [3][]float64 // Q^T W^-1 Q: diagonal, first and second super-diagonals
	rhs     *mat.VecDense
}

func newReinschSystem(xs, y, w []float64) *reinschSystem {
	n := len(xs)
	h := make([]float64, n-1)
	for i := range h {
		h[i] = xs[i+1] - xs[i]
	}

	s := &reinschSystem{
		n: n, y: y, w: w,
		a: make([]float64, n), b: make([]float64, n), c: make([]float64, n),
		rDiag: make([]float64, n), rOff: make([]float64, n),
	}
	for j := 1; j < n-1; j++ {
		s.a[j] = 1 / h[j-1]
		s.b[j] = -1/h[j-1] - 1/h[j]
		s.c[j] = 1 / h[j]
		s.rDiag[j] = (h[j-1] + h[j]) / 3
		s.rOff[j] = h[j] / 6
	}

	for d := range s.qtw {
		s.qtw[d] = make([]float64, n)
	}
	rhs := make([]float64, n-2)
	for j := 1; j < n-1; j++ {
		s.qtw[0][j] = s.a[j]*s.a[j]/w[j-1] + s.b[j]*s.b[j]/w[j] + s.c[j]*s.c[j]/w[j+1]
		if j+1 < n-1 {
			s.qtw[1][j] = s.b[j]*s.a[j+1]/w[j] + s.c[j]*s.b[j+1]/w[j+1]
		}
		if j+2 < n-1 {
			s.qtw[2][j] = s.c[j] * s.a[j+2] / w[j+1]
		}
		rhs[j-1] = s.a[j]*y[j-1] + s.b[j]*y[j] + s.c[j]*y[j+1]
	}
	s.rhs = mat.NewVecDense(n-2, rhs)
	return s
}

// solve returns the fitted knot values and knot second derivatives for the penalty lambda.
func (s *reinschSystem) solve(lambda float64) (g, gamma []float64, err error) {
	n := s.n
	m := n - 2
	k := min(2, m-1)

	band := mat.NewSymBandDense(m, k, nil)
	for j := 1; j < n-1; j++ {
		r := j - 1
		band.SetSymBand(r, r, s.rDiag[j]+lambda*s.qtw[0][j])
		if k >= 1 && r+1 < m {
			band.SetSymBand(r, r+1, s.rOff[j]+lambda*s.qtw[1][j])
		}
		if k >= 2 && r+2 < m {
			band.SetSymBand(r, r+2, lambda*s.qtw[2][j])
		}
	}

	var chol mat.BandCholesky
	if ok := chol.Factorize(band); !ok {
		return nil, nil, errors.New("spline: system is not positive definite")
	}
	sol := mat.NewVecDense(m, nil)
	if err := chol.SolveVecTo(sol, s.rhs); err != nil {
		return nil, nil, fmt.Errorf("spline: solve failed: %w", err)
	}

	gamma = make([]float64, n)
	for j := 1; j < n-1; j++ {
		gamma[j] = sol.AtVec(j - 1)
	}

	g = make([]float64, n)
	for i := 0; i < n; i++ {
		// (Q gamma)_i collects columns i-1, i and i+1.
		var qg float64
		if i-1 >= 1 {
			qg += s.c[i-1] * gamma[i-1]
		}
		if i >= 1 && i <= n-2 {
			qg += s.b[i] * gamma[i]
		}
		if i+1 <= n-2 {
			qg += s.a[i+1] * gamma[i+1]
		}
		g[i] = s.y[i] - lambda*qg/s.w[i]
	}
	return g, gamma, nil
}

func (s *reinschSystem) rss(g []float64) float64 {
	var sum float64
	for i, v := range g {
		d := s.y[i] - v
		sum += s.w[i] * d * d
	}
	return sum
}

// searchLambda bisects log10(lambda) for the largest penalty whose residual stays within budget.
// The residual grows monotonically with lambda.
func (s *reinschSystem) searchLambda(budget float64) (float64, error) {
	g, _, err := s.solve(math.Pow(10, maxLogLambda))
	if err != nil {
		return 0, err
	}
	if s.rss(g) <= budget {
		return math.Pow(10, maxLogLambda), nil
	}

	lo, hi := minLogLambda, maxLogLambda
	for range lambdaBisection {
		mid := (lo + hi) / 2
		g, _, err := s.solve(math.Pow(10, mid))
		if err != nil {
			return 0, err
		}
		if s.rss(g) > budget {
			hi = mid
		} else {
			lo = mid
		}
	}
	return math.Pow(10, lo), nil
}
