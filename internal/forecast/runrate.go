package forecast

import (
	"github.com/shopspring/decimal"
)

// RunRateStatus tells whether the projected end-of-month balance is safe.
type RunRateStatus string

// Run-rate statuses
const (
	StatusSafe   RunRateStatus = "Safe"
	StatusAtRisk RunRateStatus = "AtRisk"
)

// RunRate is a same-month linear extrapolation of remaining spend based
// on the daily average so far.
type RunRate struct {
	DailyRate           decimal.Decimal `json:"dailyRate"`
	ProjectedRemaining  decimal.Decimal `json:"projectedRemaining"`
	ProjectedEndBalance decimal.Decimal `json:"projectedEndBalance"`
	Status              RunRateStatus   `json:"status"`
}

// ProjectRunRate extrapolates the still-open month: spentSoFar over
// elapsedDays gives the daily rate, which is projected across the days
// left in the month and subtracted from the current balance.
func ProjectRunRate(spentSoFar decimal.Decimal, elapsedDays, daysInMonth int, currentBalance decimal.Decimal) RunRate {
	if elapsedDays < 1 {
		elapsedDays = 1
	}

	dailyRate := spentSoFar.Div(decimal.NewFromInt(int64(elapsedDays)))
	remainingDays := decimal.NewFromInt(int64(daysInMonth - elapsedDays))
	projectedRemaining := dailyRate.Mul(remainingDays)
	projectedEnd := currentBalance.Sub(projectedRemaining)

	status := StatusSafe
	if projectedEnd.IsNegative() {
		status = StatusAtRisk
	}
	return RunRate{
		DailyRate:           dailyRate,
		ProjectedRemaining:  projectedRemaining,
		ProjectedEndBalance: projectedEnd,
		Status:              status,
	}
}
