package usecase

import (
	"math"

	"crypto_dashboard/internal/feature/analytics/domain/entity"
)

// sumWindow keeps a running sum over the last entity.Window observations.
type sumWindow struct {
	buf  [entity.Window]float64
	pos  int
	size int
	nans int
	sum  float64
}

func (w *sumWindow) push(x float64) {
	if w.size == entity.Window {
		old := w.buf[w.pos]
		if math.IsNaN(old) {
			w.nans--
		} else {
			w.sum -= old
		}
	} else {
		w.size++
	}
	w.buf[w.pos] = x
	if math.IsNaN(x) {
		w.nans++
	} else {
		w.sum += x
	}
	w.pos = (w.pos + 1) % entity.Window
}

// mean is NaN until the window holds entity.Window defined observations.
func (w *sumWindow) mean() float64 {
	if w.size < entity.Window || w.nans > 0 {
		return math.NaN()
	}
	return w.sum / entity.Window
}

// pairWindow keeps the last entity.Window (x, y) pairs in a ring buffer.
// Pairs where either side is NaN occupy a slot but do not contribute.
// The moments are rebuilt from the buffer on every push, so values that have
// left the window leave no rounding residue behind.
type pairWindow struct {
	xs, ys [entity.Window]float64
	ok     [entity.Window]bool
	pos    int
	size   int

	n             int
	mx, my        float64
	cxx, cyy, cxy float64

	// every defined x (y) in the window is identical
	constX, constY bool
}

func (w *pairWindow) push(x, y float64) {
	if w.size < entity.Window {
		w.size++
	}
	w.xs[w.pos], w.ys[w.pos] = x, y
	w.ok[w.pos] = !math.IsNaN(x) && !math.IsNaN(y)
	w.pos = (w.pos + 1) % entity.Window
	w.recompute()
}

// recompute is a two-pass mean and co-moment over the defined pairs.
func (w *pairWindow) recompute() {
	w.n = 0
	w.mx, w.my, w.cxx, w.cyy, w.cxy = 0, 0, 0, 0, 0
	w.constX, w.constY = true, true

	var sx, sy, fx, fy float64
	for i := 0; i < w.size; i++ {
		if !w.ok[i] {
			continue
		}
		if w.n == 0 {
			fx, fy = w.xs[i], w.ys[i]
		}
		w.constX = w.constX && w.xs[i] == fx
		w.constY = w.constY && w.ys[i] == fy
		sx += w.xs[i]
		sy += w.ys[i]
		w.n++
	}
	if w.n == 0 {
		return
	}
	w.mx = sx / float64(w.n)
	w.my = sy / float64(w.n)

	for i := 0; i < w.size; i++ {
		if !w.ok[i] {
			continue
		}
		dx := w.xs[i] - w.mx
		dy := w.ys[i] - w.my
		w.cxx += dx * dx
		w.cyy += dy * dy
		w.cxy += dx * dy
	}
}

func (w *pairWindow) full() bool {
	return w.n == entity.Window
}

// varX is the sample (n-1) variance of x.
func (w *pairWindow) varX() float64 {
	if w.n < 2 || w.constX {
		return 0
	}
	return w.cxx / float64(w.n-1)
}

func (w *pairWindow) varY() float64 {
	if w.n < 2 || w.constY {
		return 0
	}
	return w.cyy / float64(w.n-1)
}

// zscore of x, the latest observation, within a full window.
func (w *pairWindow) zscore(x float64) float64 {
	if !w.full() || math.IsNaN(x) {
		return math.NaN()
	}
	sd := math.Sqrt(w.varX())
	if sd == 0 {
		return math.NaN()
	}
	return (x - w.mx) / sd
}

// corr is the Pearson correlation of the window, clamped to [-1, 1].
func (w *pairWindow) corr() float64 {
	if !w.full() {
		return math.NaN()
	}
	vx, vy := w.varX(), w.varY()
	if vx == 0 || vy == 0 {
		return math.NaN()
	}
	r := (w.cxy / float64(w.n-1)) / math.Sqrt(vx*vy)
	return math.Max(-1, math.Min(1, r))
}
