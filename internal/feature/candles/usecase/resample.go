package usecase

import (
	"crypto_dashboard/internal/feature/candles/domain/entity"
	"time"
)

// Resample converts s into the given granularity.
//
// Raw returns a copy of s. For a timed granularity rows are grouped into
// epoch-aligned buckets of that width (bucket = t - t mod width) and each
// bucket is aggregated as open=first, high=max, low=min, close=last,
// volume=sum. Buckets without rows are dropped rather than filled, so
// requesting 1-minute buckets from hourly candles yields one row per source
// candle. The input is expected ascending by time; output is ascending by
// bucket start.
func Resample(s entity.Series, g entity.Granularity) (entity.Series, error) {
	if g == entity.GranularityRaw {
		return s.Clone(), nil
	}
	width := g.Width()
	if width <= 0 {
		return nil, entity.ErrUnknownGranularity
	}

	out := make(entity.Series, 0, len(s))
	var (
		cur     entity.Candle
		bucket  time.Time
		started bool
	)
	for _, c := range s {
		b := bucketStart(c.Time, width)
		if !started || !b.Equal(bucket) {
			if started {
				out = append(out, cur)
			}
			bucket = b
			cur = entity.Candle{Time: b, Open: c.Open, High: c.High, Low: c.Low, Close: c.Close, Volume: c.Volume}
			started = true
			continue
		}
		if c.High > cur.High {
			cur.High = c.High
		}
		if c.Low < cur.Low {
			cur.Low = c.Low
		}
		cur.Close = c.Close
		cur.Volume += c.Volume
	}
	if started {
		out = append(out, cur)
	}
	return out, nil
}

// bucketStart aligns t to the Unix epoch in steps of width.
func bucketStart(t time.Time, width time.Duration) time.Time {
	ns := t.UnixNano()
	w := int64(width)
	rem := ns % w
	if rem < 0 {
		rem += w
	}
	return time.Unix(0, ns-rem).UTC()
}
