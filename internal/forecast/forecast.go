// Package forecast produces next-period predictions, run-rate projections
// and first-vs-last comparisons from the ledger's ordered history.
package forecast

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fjacquet/budget-ledger/internal/config"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/trend"
)

var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var hundred = decimal.NewFromInt(100)

// CategoryTrend is one category's month-over-month trend line.
type CategoryTrend struct {
	Category   models.Category `json:"category"`
	Current    decimal.Decimal `json:"current"`
	Predicted  decimal.Decimal `json:"predicted"`
	TrendRatio float64         `json:"trendRatio"`
	Direction  trend.Direction `json:"direction"`
}

// AggregateTrends carries the ledger-wide income/expense/balance ratios.
type AggregateTrends struct {
	Income   CategoryTrend `json:"income"`
	Expenses CategoryTrend `json:"expenses"`
	Balance  CategoryTrend `json:"balance"`
}

// GroupForecast is the multi-month prediction for one category grouping.
type GroupForecast struct {
	Group            models.CategoryGroup `json:"group"`
	Current          decimal.Decimal      `json:"current"`
	Predicted        decimal.Decimal      `json:"predicted"`
	TrendRatio       float64              `json:"trendRatio"`
	PercentChange    float64              `json:"percentChange"`
	Direction        trend.Direction      `json:"direction"`
	InsufficientData bool                 `json:"insufficientData"`
}

// CategorySeries extracts one category's chronological amounts.
func CategorySeries(entries []models.BudgetEntry, category models.Category) []decimal.Decimal {
	series := make([]decimal.Decimal, 0, len(entries))
	for _, entry := range entries {
		series = append(series, entry.Amount(category))
	}
	return series
}

// TrendForCategory runs one category's history through the trend engine.
// Entries must already be in chronological order.
func TrendForCategory(entries []models.BudgetEntry, category models.Category) CategoryTrend {
	series := CategorySeries(entries, category)
	ratio := trend.Compute(series)

	current := decimal.Zero
	if len(entries) > 0 {
		current = entries[len(entries)-1].Amount(category)
	}
	return CategoryTrend{
		Category:   category,
		Current:    current,
		Predicted:  trend.PredictNext(current, ratio),
		TrendRatio: ratio,
		Direction:  trend.Classify(ratio),
	}
}

// TrendTable computes trend lines for every category seen in the history,
// in stable category order.
func TrendTable(entries []models.BudgetEntry) []CategoryTrend {
	seen := make(map[models.Category]bool)
	var categories []models.Category
	for _, entry := range entries {
		for _, c := range entry.CategoriesSorted() {
			if !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
	}
	sortCategories(categories)

	table := make([]CategoryTrend, 0, len(categories))
	for _, c := range categories {
		table = append(table, TrendForCategory(entries, c))
	}
	return table
}

// TrendForAggregates computes the ledger-wide income, total-expense and
// balance trend lines.
func TrendForAggregates(entries []models.BudgetEntry) AggregateTrends {
	incomes := make([]decimal.Decimal, 0, len(entries))
	expenses := make([]decimal.Decimal, 0, len(entries))
	balances := make([]decimal.Decimal, 0, len(entries))
	for _, entry := range entries {
		incomes = append(incomes, entry.Income.Add(entry.OtherIncome))
		expenses = append(expenses, entry.TotalExpenses)
		balances = append(balances, entry.Balance)
	}
	return AggregateTrends{
		Income:   aggregateTrend("income", incomes),
		Expenses: aggregateTrend("expenses", expenses),
		Balance:  aggregateTrend("balance", balances),
	}
}

func aggregateTrend(name string, series []decimal.Decimal) CategoryTrend {
	ratio := trend.Compute(series)
	current := decimal.Zero
	if len(series) > 0 {
		current = series[len(series)-1]
	}
	return CategoryTrend{
		Category:   models.Category(name),
		Current:    current,
		Predicted:  trend.PredictNext(current, ratio),
		TrendRatio: ratio,
		Direction:  trend.Classify(ratio),
	}
}

// ForGroup sums each historical entry's amounts for one grouping, runs the
// series through the trend engine and projects the next period.
func ForGroup(schema models.Schema, entries []models.BudgetEntry, group models.CategoryGroup) GroupForecast {
	series := make([]decimal.Decimal, 0, len(entries))
	for _, entry := range entries {
		sum := decimal.Zero
		for c := range entry.Expenses {
			if schema.Group(c) == group {
				sum = sum.Add(entry.Amount(c))
			}
		}
		series = append(series, sum)
	}

	positives := 0
	for _, v := range series {
		if v.IsPositive() {
			positives++
		}
	}

	ratio := trend.Compute(series)
	current := decimal.Zero
	if len(series) > 0 {
		current = series[len(series)-1]
	}
	predicted := trend.PredictNext(current, ratio)

	percentChange := 0.0
	if current.IsPositive() {
		percentChange = predicted.Sub(current).Div(current).Mul(hundred).InexactFloat64()
	}

	result := GroupForecast{
		Group:            group,
		Current:          current,
		Predicted:        predicted,
		TrendRatio:       ratio,
		PercentChange:    percentChange,
		Direction:        trend.Classify(ratio),
		InsufficientData: positives < 2,
	}
	if result.InsufficientData {
		log.WithField("group", group).Debug("Not enough history to forecast grouping")
	}
	return result
}

// ForAllGroups forecasts the fixed, variable and savings groupings.
func ForAllGroups(schema models.Schema, entries []models.BudgetEntry) []GroupForecast {
	groups := []models.CategoryGroup{models.GroupFixed, models.GroupVariable, models.GroupSavings}
	out := make([]GroupForecast, 0, len(groups))
	for _, g := range groups {
		out = append(out, ForGroup(schema, entries, g))
	}
	return out
}

func sortCategories(categories []models.Category) {
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
}
