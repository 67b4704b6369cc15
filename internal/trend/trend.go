// Package trend extracts month-over-month trend ratios from ordered
// numeric series and classifies them for forecasting.
package trend

import (
	"math"

	"github.com/shopspring/decimal"
)

// Direction classifies a trend ratio.
type Direction string

// Trend classifications
const (
	Rising  Direction = "Rising"
	Falling Direction = "Falling"
	Stable  Direction = "Stable"
)

// Threshold is the fixed classification band: ratios within ±Threshold
// are considered stable.
const Threshold = 0.05

// windowSize bounds the recent and prior averaging windows.
const windowSize = 3

// Compute returns the relative change between the average of the last
// up-to-3 positive observations and the average of the up-to-3
// observations immediately preceding them.
//
// Zero and negative observations are excluded: they mean "no meaningful
// spend that period", not a data point to trend on. Fewer than two usable
// observations, an empty prior window or a degenerate ratio all yield 0
// rather than an error.
func Compute(series []decimal.Decimal) float64 {
	valid := make([]decimal.Decimal, 0, len(series))
	for _, v := range series {
		if v.IsPositive() {
			valid = append(valid, v)
		}
	}
	if len(valid) < 2 {
		return 0
	}

	recentStart := len(valid) - windowSize
	if recentStart < 0 {
		recentStart = 0
	}
	recent := valid[recentStart:]

	olderStart := recentStart - windowSize
	if olderStart < 0 {
		olderStart = 0
	}
	older := valid[olderStart:recentStart]
	if len(older) == 0 {
		return 0
	}

	recentAvg := mean(recent)
	olderAvg := mean(older)
	if olderAvg.IsZero() {
		return 0
	}

	ratio := recentAvg.Sub(olderAvg).Div(olderAvg).InexactFloat64()
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return ratio
}

// Classify maps a trend ratio onto a direction using the fixed ±0.05 band.
func Classify(ratio float64) Direction {
	switch {
	case ratio > Threshold:
		return Rising
	case ratio < -Threshold:
		return Falling
	default:
		return Stable
	}
}

// PredictNext projects the next observation as current * (1 + trend).
func PredictNext(current decimal.Decimal, ratio float64) decimal.Decimal {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 0
	}
	return current.Mul(decimal.NewFromFloat(1 + ratio))
}

func mean(values []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}
