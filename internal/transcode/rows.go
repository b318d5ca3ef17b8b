// Package transcode converts scenarios to and from flat spreadsheet rows.
package transcode

import (
	"strings"

	"github.com/theirongolddev/budgetflow/internal/model"
)

// Column headers, in file order.
const (
	ColScenarioID   = "ScenarioID"
	ColScenarioName = "ScenarioName"
	ColCategoryID   = "CategoryID"
	ColCategoryName = "CategoryName"
	ColDescription  = "Description"
	ColCurrentValue = "CurrentValue"
	ColMaxValue     = "MaxValue"
	ColIcon         = "Icon"
	ColIsActive     = "IsActive"
	ColIsPredefined = "IsPredefined"
	ColType         = "Type"
)

// Columns lists every header in the order they are written.
var Columns = []string{
	ColScenarioID, ColScenarioName, ColCategoryID, ColCategoryName, ColDescription,
	ColCurrentValue, ColMaxValue, ColIcon, ColIsActive, ColIsPredefined, ColType,
}

// Names given to imported rows that lack one.
const (
	DefaultScenarioName = "Imported Scenario"
	DefaultCategoryName = "Imported Category"
)

// Row is one (scenario, category) pair.
type Row struct {
	ScenarioID   string
	ScenarioName string
	Category     model.Category
}

// Strings renders the row in column order.
func (r Row) Strings() []string {
	c := r.Category
	return []string{
		r.ScenarioID,
		r.ScenarioName,
		c.ID,
		c.Name,
		c.Description,
		model.FormatAmount(c.CurrentValue),
		model.FormatAmount(c.MaxValue),
		string(c.Icon),
		boolString(c.IsActive),
		boolString(c.IsPredefined),
		string(c.Type),
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Record is one imported row keyed by canonical column header. Missing
// columns are absent from the map.
type Record map[string]string

// Flatten produces one row per category, scenario by scenario. Scenarios
// without categories produce no rows.
func Flatten(scenarios []model.Scenario) []Row {
	var rows []Row
	for _, s := range scenarios {
		for _, c := range s.Categories {
			rows = append(rows, Row{ScenarioID: s.ID, ScenarioName: s.Name, Category: c})
		}
	}
	return rows
}

// EmptyScenarios returns the names of scenarios Flatten would drop.
func EmptyScenarios(scenarios []model.Scenario) []string {
	var out []string
	for _, s := range scenarios {
		if len(s.Categories) == 0 {
			out = append(out, s.Name)
		}
	}
	return out
}

// Unflatten groups records into scenarios in order of first appearance and
// coerces every field into a valid category. Records without a scenario id
// are grouped by scenario name under one generated id.
func Unflatten(records []Record, newID model.IDFunc) []model.Scenario {
	var scenarios []model.Scenario
	index := map[string]int{}
	seenCats := map[string]map[string]bool{}

	for _, rec := range records {
		if rec.blank() {
			continue
		}

		sid := rec.get(ColScenarioID)
		sname := rec.get(ColScenarioName)
		key := "id:" + sid
		if sid == "" {
			key = "name:" + sname
		}

		i, ok := index[key]
		if !ok {
			if sid == "" {
				sid = newID()
			}
			scenarios = append(scenarios, model.Scenario{ID: sid, Name: DefaultScenarioName})
			i = len(scenarios) - 1
			index[key] = i
			seenCats[key] = map[string]bool{}
		}
		s := &scenarios[i]
		if s.Name == DefaultScenarioName && sname != "" {
			s.Name = model.LimitText(sname, model.MaxNameLength)
		}

		c := rec.category()
		if c.ID == "" || seenCats[key][c.ID] {
			c.ID = newID()
		}
		seenCats[key][c.ID] = true
		s.Categories = append(s.Categories, c)
	}
	return scenarios
}

func (rec Record) get(col string) string {
	return strings.TrimSpace(rec[col])
}

func (rec Record) blank() bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (rec Record) category() model.Category {
	c := model.Category{
		ID:           rec.get(ColCategoryID),
		Name:         model.LimitText(rec.get(ColCategoryName), model.MaxNameLength),
		Description:  model.LimitText(rec.get(ColDescription), model.MaxDescriptionLength),
		Icon:         model.ResolveIcon(rec.get(ColIcon)),
		IsActive:     model.ParseFlag(rec.get(ColIsActive)),
		IsPredefined: model.ParseFlag(rec.get(ColIsPredefined)),
		Type:         model.ParseCategoryType(strings.ToLower(rec.get(ColType))),
	}
	if c.Name == "" {
		c.Name = DefaultCategoryName
	}
	c.CurrentValue, _ = model.ParseAmount(rec.get(ColCurrentValue))
	c.MaxValue, _ = model.ParseAmount(rec.get(ColMaxValue))
	c.Clamp()
	return c
}

// recordsFromTable turns a header row plus data rows into records. Header
// cells are matched to columns case-insensitively; unknown columns are
// ignored.
func recordsFromTable(table [][]string) ([]Record, error) {
	if len(table) == 0 {
		return nil, ErrMissingHeader
	}

	header := make([]string, len(table[0]))
	matched := 0
	for i, h := range table[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, bom))
		for _, col := range Columns {
			if strings.EqualFold(h, col) {
				header[i] = col
				matched++
				break
			}
		}
	}
	if matched == 0 {
		return nil, ErrMissingHeader
	}

	records := make([]Record, 0, len(table)-1)
	for _, row := range table[1:] {
		rec := Record{}
		for i, col := range header {
			if col == "" || i >= len(row) {
				continue
			}
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}
