package model

// CatalogEntry is a compiled-in template for a predefined category.
type CatalogEntry struct {
	Name                string
	Description         string
	Icon                Icon
	DefaultCurrentValue int64
	DefaultMaxValue     int64
	InitiallyActive     bool
	Type                CategoryType
}

// catalog is the fixed set of predefined categories, expenditure first.
var catalog = []CatalogEntry{
	{"Mortgage/Rent", "Monthly housing payment", "Home", 1500, 3000, true, Expenditure},
	{"Groceries", "Food and household supplies", "ShoppingCart", 400, 800, true, Expenditure},
	{"Utilities", "Electricity, water, gas, internet", "Zap", 200, 500, true, Expenditure},
	{"Transportation", "Gas, public transport, car maintenance", "Car", 150, 400, true, Expenditure},
	{"Credit Card Payments", "Monthly credit card dues", "CreditCard", 300, 1000, true, Expenditure},
	{"Healthcare", "Insurance, medical bills, prescriptions", "Stethoscope", 0, 300, false, Expenditure},
	{"Personal Care", "Haircuts, toiletries, cosmetics", "Smile", 0, 100, false, Expenditure},
	{"Entertainment", "Movies, concerts, subscriptions", "Clapperboard", 0, 200, false, Expenditure},
	{"Dining Out", "Restaurants, cafes, takeaways", "Utensils", 0, 250, false, Expenditure},
	{"Savings", "Contributions to savings accounts", "PiggyBank", 0, 500, false, Expenditure},
	{"Debt Repayment", "Loans, credit cards (above minimum)", "Landmark", 0, 400, false, Expenditure},
	{"Education", "Tuition, books, courses", "BookOpen", 0, 150, false, Expenditure},
	{"Childcare", "Daycare, babysitting", "Baby", 0, 800, false, Expenditure},
	{"Insurance (Other)", "Life, car, home insurance", "ShieldCheck", 0, 150, false, Expenditure},
	{"Gifts & Donations", "Presents, charity", "Gift", 0, 100, false, Expenditure},
	{"Travel/Vacation", "Flights, accommodation, spending money", "Plane", 0, 300, false, Expenditure},
	{"Fitness", "Gym, classes, sports equipment", "Dumbbell", 0, 75, false, Expenditure},
	{"Pets", "Food, vet bills, supplies", "Dog", 0, 100, false, Expenditure},

	{"Salary", "Primary employment income", "Briefcase", 3000, 3500, true, Income},
	{"Freelance Income", "Income from freelance work", "Laptop", 0, 500, false, Income},
	{"Investment Dividends", "Income from investments", "TrendingUp", 0, 200, false, Income},
	{"Rental Income", "Income from rental properties", "Building", 0, 1000, false, Income},
	{"Bonus", "Work-related bonus payments", "Award", 0, 1000, false, Income},
	{"Interest Income", "Interest earned from savings, bonds, etc.", "Percent", 0, 100, false, Income},
	{"Gifts Received", "Monetary gifts received", "Gift", 0, 200, false, Income},
}

// Catalog returns a copy of the predefined category catalog.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// NewCategory builds a predefined category from the entry.
func (e CatalogEntry) NewCategory(id string) Category {
	c := Category{
		ID:           id,
		Name:         e.Name,
		Description:  e.Description,
		CurrentValue: e.DefaultCurrentValue,
		MaxValue:     e.DefaultMaxValue,
		Icon:         e.Icon,
		IsActive:     e.InitiallyActive,
		IsPredefined: true,
		Type:         e.Type,
	}
	c.Clamp()
	return c
}

// SeedCategories returns one category per catalog entry, in catalog order.
func SeedCategories(newID func() string) []Category {
	out := make([]Category, 0, len(catalog))
	for _, e := range catalog {
		out = append(out, e.NewCategory(newID()))
	}
	return out
}

// SeedScenario builds the default scenario populated from the catalog.
func SeedScenario(newID func() string) Scenario {
	return Scenario{
		ID:         newID(),
		Name:       DefaultScenarioName,
		Categories: SeedCategories(newID),
	}
}

// Reconcile appends an inactive, zero-valued category for every catalog entry
// the scenario does not already hold as a predefined category of the same
// name. It returns the number of categories added. Running it twice adds
// nothing the second time.
func Reconcile(s *Scenario, newID func() string) int {
	have := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		if c.IsPredefined {
			have[c.Name] = true
		}
	}

	added := 0
	for _, e := range catalog {
		if have[e.Name] {
			continue
		}
		c := e.NewCategory(newID())
		c.IsActive = false
		c.CurrentValue = 0
		s.Categories = append(s.Categories, c)
		have[e.Name] = true
		added++
	}
	return added
}
