package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/budget-ledger/internal/models"
)

// ChangeDirection classifies the sign of a first-vs-last change.
type ChangeDirection string

// Change directions
const (
	Increase     ChangeDirection = "Increase"
	Decrease     ChangeDirection = "Decrease"
	StableChange ChangeDirection = "Stable"
)

// Advisory thresholds. Fixed design constants, not user-configurable.
const (
	rentRiseThresholdPct    = 5.0
	foodRiseThresholdPct    = 20.0
	leisureRiseThresholdPct = 30.0
	savingsRateFloorPct     = 10.0
)

// CategoryChange describes how one category moved between the first and
// last months of the usable history.
type CategoryChange struct {
	Category      models.Category `json:"category"`
	First         decimal.Decimal `json:"first"`
	Last          decimal.Decimal `json:"last"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent float64         `json:"changePercent"`
	Direction     ChangeDirection `json:"direction"`
}

// Advisory is a rule-based recommendation produced by the comparison.
type Advisory struct {
	Category models.Category `json:"category,omitempty"`
	Message  string          `json:"message"`
}

// Comparison is the "what changed" report between the chronologically
// first and last valid entries.
type Comparison struct {
	FirstKey         string           `json:"firstKey"`
	LastKey          string           `json:"lastKey"`
	Changes          []CategoryChange `json:"changes"`
	SavingsRatePct   float64          `json:"savingsRatePct"`
	Advisories       []Advisory       `json:"advisories"`
	InsufficientData bool             `json:"insufficientData"`
}

// Compare builds the first-vs-last comparison over the valid subset of the
// history (entries with a positive income). Entries must already be in
// chronological order. Fewer than two valid entries yields an explicit
// insufficient-data result, never an error.
func Compare(entries []models.BudgetEntry) Comparison {
	valid := make([]models.BudgetEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Income.IsPositive() {
			valid = append(valid, entry)
		}
	}
	if len(valid) < 2 {
		log.WithField("validEntries", len(valid)).Debug("Not enough history to compare")
		return Comparison{InsufficientData: true}
	}

	first := valid[0]
	last := valid[len(valid)-1]

	seen := make(map[models.Category]bool)
	var categories []models.Category
	for _, entry := range []models.BudgetEntry{first, last} {
		for _, c := range entry.CategoriesSorted() {
			if !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
	}
	sortCategories(categories)

	changes := make([]CategoryChange, 0, len(categories))
	for _, c := range categories {
		firstAmount := first.Amount(c)
		lastAmount := last.Amount(c)
		change := lastAmount.Sub(firstAmount)

		changePercent := 0.0
		if firstAmount.IsPositive() {
			changePercent = change.Div(firstAmount).Mul(hundred).InexactFloat64()
		}

		direction := StableChange
		switch change.Sign() {
		case 1:
			direction = Increase
		case -1:
			direction = Decrease
		}

		changes = append(changes, CategoryChange{
			Category:      c,
			First:         firstAmount,
			Last:          lastAmount,
			Change:        change,
			ChangePercent: changePercent,
			Direction:     direction,
		})
	}

	savingsRate := meanSavingsRatePct(valid)

	return Comparison{
		FirstKey:       first.MonthKey,
		LastKey:        last.MonthKey,
		Changes:        changes,
		SavingsRatePct: savingsRate,
		Advisories:     advisories(changes, savingsRate),
	}
}

// advisories applies the fixed category thresholds and the savings-rate
// floor to the computed changes.
func advisories(changes []CategoryChange, savingsRatePct float64) []Advisory {
	var out []Advisory
	for _, change := range changes {
		switch change.Category {
		case models.CategoryRent:
			if change.ChangePercent > rentRiseThresholdPct {
				out = append(out, Advisory{
					Category: change.Category,
					Message: fmt.Sprintf("Rent rose %.1f%% (from %s to %s); review your lease or housing options",
						change.ChangePercent, change.First.StringFixed(2), change.Last.StringFixed(2)),
				})
			}
		case models.CategoryFood:
			if change.ChangePercent > foodRiseThresholdPct {
				out = append(out, Advisory{
					Category: change.Category,
					Message:  fmt.Sprintf("Food spending rose %.1f%%; consider meal planning or cheaper stores", change.ChangePercent),
				})
			}
		case models.CategoryLeisure:
			if change.ChangePercent > leisureRiseThresholdPct {
				out = append(out, Advisory{
					Category: change.Category,
					Message:  fmt.Sprintf("Leisure spending rose %.1f%%; set a monthly cap to keep it in check", change.ChangePercent),
				})
			}
		}
	}
	if savingsRatePct < savingsRateFloorPct {
		out = append(out, Advisory{
			Message: fmt.Sprintf("Average savings rate is %.1f%%, below the recommended 10%%; try to set aside more each month", savingsRatePct),
		})
	}
	return out
}

// meanSavingsRatePct averages balance/income across the valid entries,
// as a percentage.
func meanSavingsRatePct(entries []models.BudgetEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, entry := range entries {
		sum = sum.Add(entry.Balance.Div(entry.Income))
	}
	return sum.Div(decimal.NewFromInt(int64(len(entries)))).Mul(hundred).InexactFloat64()
}
