package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_NilIsNoop(t *testing.T) {
	t.Parallel()

	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveUpstream("ticker", time.Second, errors.New("boom"))
		r.RecordLastPrice("BTC-USD", 1)
		r.RecordPass("BTC-USD", "raw", nil, true)
		r.ObserveHTTP("/", "GET", "200", time.Millisecond)
	})
}

func TestRecorder_Counters(t *testing.T) {
	t.Parallel()

	r := New(prometheus.NewRegistry())

	r.ObserveUpstream("candles", 100*time.Millisecond, nil)
	r.ObserveUpstream("candles", 100*time.Millisecond, errors.New("timeout"))
	r.RecordLastPrice("ETH-USD", 3200.5)
	r.RecordPass("ETH-USD", "raw", nil, true)
	r.RecordPass("ETH-USD", "raw", errors.New("x"), false)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.upstreamErrors.WithLabelValues("candles")))
	assert.Equal(t, 3200.5, testutil.ToFloat64(r.lastPrice.WithLabelValues("ETH-USD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.alerts.WithLabelValues("ETH-USD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.passes.WithLabelValues("raw", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.passes.WithLabelValues("raw", "error")))
}

func TestRecorder_Handler(t *testing.T) {
	t.Parallel()

	r := New(prometheus.NewRegistry())
	r.RecordLastPrice("BTC-USD", 64000)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `crypto_dashboard_last_price{pair="BTC-USD"} 64000`))
}
