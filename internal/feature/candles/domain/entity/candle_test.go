package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseGranularity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Granularity
		wantErr bool
	}{
		{in: "", want: GranularityRaw},
		{in: "raw", want: GranularityRaw},
		{in: "Raw", want: GranularityRaw},
		{in: "1min", want: GranularityOneMinute},
		{in: "1 Min", want: GranularityOneMinute},
		{in: " 5 Min ", want: GranularityFiveMinutes},
		{in: "5MIN", want: GranularityFiveMinutes},
		{in: "15min", wantErr: true},
		{in: "hourly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGranularity(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownGranularity)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGranularity_WidthAndLabel(t *testing.T) {
	t.Parallel()

	for _, g := range Granularities() {
		parsed, err := ParseGranularity(g.Label())
		assert.NoError(t, err)
		assert.Equal(t, g, parsed, "label round trip for %s", g)
	}
	assert.Equal(t, time.Duration(0), GranularityRaw.Width())
	assert.Equal(t, time.Minute, GranularityOneMinute.Width())
	assert.Equal(t, 5*time.Minute, GranularityFiveMinutes.Width())
}

func TestTimeframes(t *testing.T) {
	t.Parallel()

	tfs := Timeframes()
	days := make([]int, len(tfs))
	for i, tf := range tfs {
		days[i] = tf.Days
		assert.NotEmpty(t, tf.Label)
	}
	assert.Equal(t, []int{1, 3, 7, 30}, days)

	tfs[0].Days = 99
	assert.Equal(t, 1, Timeframes()[0].Days, "callers get a fresh copy")
}
