// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Extrapolation computes a 1-dimensional velocity estimate
// for a set of timestamped points using the least squares
// fit of a 2nd order polynomial. The same method is used
// by Android.
type Extrapolation struct {
	// Index of the next sample slot.
	idx int
	// Number of valid samples.
	n       int
	samples [historySize]sample
}

// Estimate is the result of an extrapolation.
type Estimate struct {
	// Velocity is the estimated rate of change per second at the
	// time of the most recent sample.
	Velocity float32
	// Distance is the change in value over the estimation window.
	Distance float32
}

type sample struct {
	t time.Duration
	v float32
}

type matrix struct {
	rows, cols int
	data       []float32
}

type (
	vector       []float32
	coefficients [degree + 1]float32
)

const (
	degree       = 2
	historySize  = 20
	maxAge       = 100 * time.Millisecond
	maxSampleGap = 40 * time.Millisecond
)

// Sample adds a value at time t.
func (e *Extrapolation) Sample(t time.Duration, val float32) {
	e.samples[e.idx] = sample{t: t, v: val}
	e.idx = (e.idx + 1) % historySize
	if e.n < historySize {
		e.n++
	}
}

// Estimate the 1-dimensional velocity at the most recent sample.
func (e *Extrapolation) Estimate() Estimate {
	if e.n < 2 {
		return Estimate{}
	}
	newest := e.get(0)
	X := make([]float32, 0, e.n)
	Y := make([]float32, 0, e.n)
	prev := newest.t
	oldest := newest
	for i := 0; i < e.n; i++ {
		s := e.get(i)
		age := newest.t - s.t
		if age > maxAge || prev-s.t > maxSampleGap {
			// Samples too old, or separated by a pause, no longer
			// describe the motion at release.
			break
		}
		prev = s.t
		oldest = s
		X = append(X, float32(-age.Seconds()))
		Y = append(Y, s.v-newest.v)
	}
	dist := newest.v - oldest.v
	if coef, ok := polyFit(X, Y); ok {
		return Estimate{Velocity: coef[1], Distance: dist}
	}
	// Too few distinct samples for a fit; use the average slope.
	dt := float32((newest.t - oldest.t).Seconds())
	if dt <= 0 {
		return Estimate{Distance: dist}
	}
	return Estimate{Velocity: dist / dt, Distance: dist}
}

// get returns the i'th most recent sample.
func (e *Extrapolation) get(i int) sample {
	idx := (e.idx - 1 - i + 2*historySize) % historySize
	return e.samples[idx]
}

// polyFit computes the least squares polynomial coefficients
// of degree 2 for the points (X[i], Y[i]).
func polyFit(X, Y []float32) (coefficients, bool) {
	if len(X) != len(Y) {
		panic("X and Y lengths differ")
	}
	if len(X) <= degree {
		return coefficients{}, false
	}
	// Vandermonde matrix.
	A := newMatrix(len(X), degree+1)
	for i, x := range X {
		p := float32(1)
		for j := 0; j <= degree; j++ {
			A.set(i, j, p)
			p *= x
		}
	}
	Q, R, ok := decomposeQR(A)
	if !ok {
		return coefficients{}, false
	}
	// Solve R*c = Qt*Y by back substitution.
	qty := Q.transpose().mulVec(Y)
	var c coefficients
	for i := degree; i >= 0; i-- {
		s := qty[i]
		for j := i + 1; j <= degree; j++ {
			s -= R.get(i, j) * c[j]
		}
		c[i] = s / R.get(i, i)
	}
	return c, true
}

// decomposeQR computes the thin QR decomposition of A by the
// modified Gram-Schmidt process. Q has the dimensions of A, R is
// square and upper triangular. It reports false if the columns of A
// are linearly dependent.
func decomposeQR(A *matrix) (*matrix, *matrix, bool) {
	if A.rows < A.cols {
		panic("fewer rows than columns")
	}
	Q := newMatrix(A.rows, A.cols)
	R := newMatrix(A.cols, A.cols)
	col := make(vector, A.rows)
	for j := 0; j < A.cols; j++ {
		for i := range col {
			col[i] = A.get(i, j)
		}
		orig := col.norm()
		for k := 0; k < j; k++ {
			var r float32
			for i := range col {
				r += Q.get(i, k) * col[i]
			}
			R.set(k, j, r)
			for i := range col {
				col[i] -= r * Q.get(i, k)
			}
		}
		norm := col.norm()
		if norm <= 1e-4*orig || norm == 0 {
			return nil, nil, false
		}
		R.set(j, j, norm)
		for i, v := range col {
			Q.set(i, j, v/norm)
		}
	}
	return Q, R, true
}

func newMatrix(rows, cols int) *matrix {
	return &matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

func (m *matrix) get(row, col int) float32 {
	return m.data[row*m.cols+col]
}

func (m *matrix) set(row, col int, v float32) {
	m.data[row*m.cols+col] = v
}

func (m *matrix) transpose() *matrix {
	t := newMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.set(j, i, m.get(i, j))
		}
	}
	return t
}

func (m *matrix) mul(m2 *matrix) *matrix {
	if m.cols != m2.rows {
		panic("mismatched matrices")
	}
	r := newMatrix(m.rows, m2.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m2.cols; j++ {
			var s float32
			for k := 0; k < m.cols; k++ {
				s += m.get(i, k) * m2.get(k, j)
			}
			r.set(i, j, s)
		}
	}
	return r
}

func (m *matrix) mulVec(v vector) vector {
	if m.cols != len(v) {
		panic("mismatched matrix and vector")
	}
	r := make(vector, m.rows)
	for i := range r {
		for j, x := range v {
			r[i] += m.get(i, j) * x
		}
	}
	return r
}

func (m *matrix) approxEqual(m2 *matrix) bool {
	if m.rows != m2.rows || m.cols != m2.cols {
		return false
	}
	for i, v := range m.data {
		if !approxEqual(v, m2.data[i]) {
			return false
		}
	}
	return true
}

func (m *matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(float64(m.get(i, j)), 'g', 4, 32))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c coefficients) approxEqual(c2 coefficients) bool {
	for i, v := range c {
		if !approxEqual(v, c2[i]) {
			return false
		}
	}
	return true
}

func (v vector) norm() float32 {
	var s float32
	for _, x := range v {
		s += x * x
	}
	return float32(math.Sqrt(float64(s)))
}

func approxEqual(a, b float32) bool {
	const epsilon = 1e-3
	d := float64(a - b)
	return math.Abs(d) <= epsilon*math.Max(1, math.Max(math.Abs(float64(a)), math.Abs(float64(b))))
}
