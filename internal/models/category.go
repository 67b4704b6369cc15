package models

// Category identifies one expense category in a budget entry.
type Category string

// Known categories
const (
	CategoryRent             Category = "rent"
	CategoryHousingAllowance Category = "housingAllowance"
	CategoryElectricity      Category = "electricity"
	CategoryInternet         Category = "internet"
	CategoryPhone            Category = "phone"
	CategorySubscriptions    Category = "subscriptions"
	CategoryHomeInsurance    Category = "homeInsurance"
	CategoryCarInsurance     Category = "carInsurance"
	CategoryGym              Category = "gym"
	CategoryFood             Category = "food"
	CategoryFuel             Category = "fuel"
	CategoryPetFood          Category = "petFood"
	CategoryLeisure          Category = "leisure"
	CategoryShopping         Category = "shopping"
	CategorySavings          Category = "savings"
	CategoryEmergencyFund    Category = "emergencyFund"
)

// CategoryGroup names a forecast grouping of categories.
type CategoryGroup string

// Forecast groupings
const (
	GroupFixed    CategoryGroup = "fixed"
	GroupVariable CategoryGroup = "variable"
	GroupSavings  CategoryGroup = "savings"
)

// CategoryConfig describes one category's attributes as loaded from configuration.
type CategoryConfig struct {
	Name      string        `json:"name" yaml:"name"`
	Shareable bool          `json:"shareable" yaml:"shareable"`
	Reduction bool          `json:"reduction" yaml:"reduction"`
	Group     CategoryGroup `json:"group" yaml:"group"`
}

// CategoriesConfig is the top-level structure of a categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `json:"categories" yaml:"categories"`
}

// Schema is the static category table consulted for shareable/reduction
// semantics and forecast grouping. Unknown categories are fully counted,
// never shared by default and never reduce the total, so new categories
// added by a later schema version degrade safely.
type Schema struct {
	byName map[Category]CategoryConfig
}

// defaultCategories is the built-in schema. Only the housing allowance
// carries reduction semantics: its amount subtracts from total expenses.
var defaultCategories = []CategoryConfig{
	{Name: string(CategoryRent), Shareable: true, Group: GroupFixed},
	{Name: string(CategoryHousingAllowance), Shareable: true, Reduction: true, Group: GroupFixed},
	{Name: string(CategoryElectricity), Shareable: true, Group: GroupFixed},
	{Name: string(CategoryInternet), Shareable: true, Group: GroupFixed},
	{Name: string(CategoryPhone), Group: GroupFixed},
	{Name: string(CategorySubscriptions), Shareable: true, Group: GroupFixed},
	{Name: string(CategoryHomeInsurance), Shareable: true, Group: GroupFixed},
	{Name: string(CategoryCarInsurance), Group: GroupFixed},
	{Name: string(CategoryGym), Group: GroupFixed},
	{Name: string(CategoryFood), Shareable: true, Group: GroupVariable},
	{Name: string(CategoryFuel), Group: GroupVariable},
	{Name: string(CategoryPetFood), Shareable: true, Group: GroupVariable},
	{Name: string(CategoryLeisure), Group: GroupVariable},
	{Name: string(CategoryShopping), Group: GroupVariable},
	{Name: string(CategorySavings), Group: GroupSavings},
	{Name: string(CategoryEmergencyFund), Group: GroupSavings},
}

// DefaultSchema returns the built-in category schema.
func DefaultSchema() Schema {
	return NewSchema(defaultCategories)
}

// NewSchema builds a schema from category configs. Later entries with the
// same name override earlier ones, which lets a configuration overlay
// adjust the built-in table.
func NewSchema(configs []CategoryConfig) Schema {
	byName := make(map[Category]CategoryConfig, len(configs))
	for _, c := range configs {
		if c.Name == "" {
			continue
		}
		byName[Category(c.Name)] = c
	}
	return Schema{byName: byName}
}

// Extend returns a new schema with the given configs overlaid on this one.
func (s Schema) Extend(configs []CategoryConfig) Schema {
	merged := make([]CategoryConfig, 0, len(s.byName)+len(configs))
	for _, c := range s.byName {
		merged = append(merged, c)
	}
	merged = append(merged, configs...)
	return NewSchema(merged)
}

// IsShareable reports whether a category may carry the shared flag.
func (s Schema) IsShareable(c Category) bool {
	return s.byName[c].Shareable
}

// IsReduction reports whether a category's amount subtracts from the
// expense total instead of adding to it.
func (s Schema) IsReduction(c Category) bool {
	return s.byName[c].Reduction
}

// Group returns the forecast grouping for a category, or the empty group
// for unknown categories.
func (s Schema) Group(c Category) CategoryGroup {
	return s.byName[c].Group
}

// Categories returns all configured category names.
func (s Schema) Categories() []Category {
	out := make([]Category, 0, len(s.byName))
	for c := range s.byName {
		out = append(out, c)
	}
	return out
}

// GroupMembers returns the configured categories belonging to a grouping.
func (s Schema) GroupMembers(group CategoryGroup) []Category {
	var out []Category
	for c, cfg := range s.byName {
		if cfg.Group == group {
			out = append(out, c)
		}
	}
	return out
}
