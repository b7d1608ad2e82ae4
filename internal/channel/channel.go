// Package channel estimates the two-sided percentile band a trading cycle
// trades against.
package channel

import (
	"errors"
	"math"
	"sort"
)

// ErrNoData is returned when the historical sample is empty. Callers must
// skip the trading decision for the cycle instead of substituting a default
// band.
var ErrNoData = errors.New("channel: no historical data")

// Channel is the price range computed from a historical sample.
type Channel struct {
	Lower float64
	Upper float64
}

// Width returns the distance between the bounds.
func (c Channel) Width() float64 {
	return c.Upper - c.Lower
}

// Calculate computes the channel enclosing intervalSize of the sample
// distribution. For intervalSize s the bounds are the p-th and (100-p)-th
// percentiles with p = (1-s)/2*100, linearly interpolated between order
// statistics.
func Calculate(closes []float64, intervalSize float64) (Channel, error) {
	if len(closes) == 0 {
		return Channel{}, ErrNoData
	}
	if intervalSize <= 0 || intervalSize >= 1 {
		return Channel{}, errors.New("channel: interval size must be in (0, 1)")
	}

	sorted := make([]float64, len(closes))
	copy(sorted, closes)
	sort.Float64s(sorted)

	p := (1 - intervalSize) / 2 * 100
	return Channel{
		Lower: percentile(sorted, p),
		Upper: percentile(sorted, 100-p),
	}, nil
}

// percentile computes the p-th percentile of an ascending sample using
// linear interpolation between the two nearest order statistics.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
