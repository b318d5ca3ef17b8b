package model

// Totals holds one amount projected over the three display periods.
type Totals struct {
	Weekly  float64
	Monthly int64
	Yearly  int64
}

// Summary holds the aggregate view of a single scenario.
type Summary struct {
	ScenarioID   string
	ScenarioName string

	Income      Totals
	Expenditure Totals
	Net         Totals

	ActiveIncome       int
	ActiveExpenditure  int
	InactiveCategories int
	PredefinedInactive int
}

// CategoryShare is one slice of a breakdown chart.
type CategoryShare struct {
	ID      string
	Name    string
	Icon    Icon
	Type    CategoryType
	Value   int64
	Percent float64
}
