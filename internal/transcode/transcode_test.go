package transcode

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetflow/internal/model"
)

func seqIDs() model.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("fresh-%d", n)
	}
}

func sampleScenarios() []model.Scenario {
	base := model.SeedScenario(model.NewID)
	other := model.Scenario{ID: "s-2", Name: "Side, \"quoted\" plan", Categories: []model.Category{
		{ID: "c-1", Name: "Café ☕", Description: "line one\nline two", CurrentValue: 35, MaxValue: 90,
			Icon: "Coffee", IsActive: true, Type: model.Expenditure},
		{ID: "c-2", Name: "Tutoring", CurrentValue: 0, MaxValue: 0, Icon: "BookOpen", Type: model.Income},
	}}
	return []model.Scenario{base, other}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatCSV, FormatXLSX} {
		t.Run(string(f), func(t *testing.T) {
			want := sampleScenarios()

			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, f, want))

			got, err := Decode(&buf, "whatever.bin", seqIDs())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFlattenSkipsEmptyScenarios(t *testing.T) {
	scenarios := []model.Scenario{{ID: "e", Name: "Empty"}, sampleScenarios()[1]}
	rows := Flatten(scenarios)
	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"Empty"}, EmptyScenarios(scenarios))
}

func TestImportCoercion(t *testing.T) {
	data := "ScenarioID,ScenarioName,CategoryID,CategoryName,Description,CurrentValue,MaxValue,Icon,IsActive,IsPredefined,Type\n" +
		"S1,,C1,Rent,,950,800,Home,TRUE,false,expenditure\n"

	got, err := Decode(strings.NewReader(data), "in.csv", seqIDs())
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, "S1", s.ID)
	assert.Equal(t, DefaultScenarioName, s.Name)
	require.Len(t, s.Categories, 1)

	c := s.Categories[0]
	assert.Equal(t, "C1", c.ID)
	assert.EqualValues(t, 800, c.CurrentValue)
	assert.EqualValues(t, 800, c.MaxValue)
	assert.True(t, c.IsActive)
	assert.False(t, c.IsPredefined)
	assert.Equal(t, model.Expenditure, c.Type)
	assert.Equal(t, model.Icon("Home"), c.Icon)
}

func TestImportDefaults(t *testing.T) {
	data := "scenarioname,CategoryName,CurrentValue,MaxValue,Icon,IsActive,Type,Extra\n" +
		"Plan A,,abc,-4,Spaceship,1,INCOME,x\n" +
		",,,,,,,\n" +
		"Plan A,Bills,12.5,40,,0,savings,y\n" +
		"Plan B,Fun,5,10,,yes,expenditure,z\n"

	got, err := Decode(strings.NewReader(data), "in.csv", seqIDs())
	require.NoError(t, err)
	require.Len(t, got, 2)

	a := got[0]
	assert.Equal(t, "Plan A", a.Name)
	assert.Equal(t, "fresh-1", a.ID)
	require.Len(t, a.Categories, 2)

	first := a.Categories[0]
	assert.Equal(t, DefaultCategoryName, first.Name)
	assert.NotEmpty(t, first.ID)
	assert.Zero(t, first.CurrentValue)
	assert.Zero(t, first.MaxValue)
	assert.Equal(t, model.DefaultIcon, first.Icon)
	assert.True(t, first.IsActive)
	assert.Equal(t, model.Income, first.Type)

	bills := a.Categories[1]
	assert.EqualValues(t, 13, bills.CurrentValue)
	assert.False(t, bills.IsActive)
	assert.Equal(t, model.Expenditure, bills.Type)

	b := got[1]
	assert.Equal(t, "Plan B", b.Name)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, b.Categories[0].IsActive, `"yes" is not a true value`)
}

func TestImportFirstNamedWins(t *testing.T) {
	data := "ScenarioID,ScenarioName,CategoryName\n" +
		"S,,One\n" +
		"S,Real Name,Two\n" +
		"S,Later Name,Three\n"
	got, err := Decode(strings.NewReader(data), "x.csv", seqIDs())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Real Name", got[0].Name)
	assert.Len(t, got[0].Categories, 3)
}

func TestImportDuplicateCategoryIDs(t *testing.T) {
	data := "ScenarioID,CategoryID,CategoryName\nS,dup,A\nS,dup,B\nT,dup,C\n"
	got, err := Decode(strings.NewReader(data), "x.csv", seqIDs())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dup", got[0].Categories[0].ID)
	assert.NotEqual(t, "dup", got[0].Categories[1].ID)
	assert.Equal(t, "dup", got[1].Categories[0].ID, "ids only need to be unique per scenario")
}

func TestImportTruncatesLongText(t *testing.T) {
	long := strings.Repeat("n", 80)
	data := "CategoryName,Description\n" + long + "," + strings.Repeat("d", 300) + "\n"
	got, err := Decode(strings.NewReader(data), "x.csv", seqIDs())
	require.NoError(t, err)
	c := got[0].Categories[0]
	assert.Len(t, c.Name, model.MaxNameLength)
	assert.Len(t, c.Description, model.MaxDescriptionLength)
}

func TestImportHugeAmountsSaturate(t *testing.T) {
	data := "ScenarioName,CategoryName,CurrentValue,MaxValue\n" +
		"S,A,18446744073709551617,18446744073709551620\n" +
		"S,B,1e30,1e30\n" +
		"S,C,-1e30,1e30\n"
	got, err := Decode(strings.NewReader(data), "big.csv", seqIDs())
	require.NoError(t, err)
	require.Len(t, got, 1)
	cats := got[0].Categories
	require.Len(t, cats, 3)
	for _, c := range cats[:2] {
		assert.Equal(t, model.MaxAmount, c.CurrentValue, c.Name)
		assert.Equal(t, model.MaxAmount, c.MaxValue, c.Name)
	}
	assert.Zero(t, cats[2].CurrentValue)
	assert.Equal(t, model.MaxAmount, cats[2].MaxValue)
}

func TestImportHeaderOnly(t *testing.T) {
	got, err := Decode(strings.NewReader(strings.Join(Columns, ",")+"\n"), "x.csv", seqIDs())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImportRejects(t *testing.T) {
	_, err := Decode(strings.NewReader("foo,bar\n1,2\n"), "x.csv", seqIDs())
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = Decode(bytes.NewReader([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}), "pic.png", seqIDs())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Decode(strings.NewReader("a,\"unterminated\n"), "x.csv", seqIDs())
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	var xlsx bytes.Buffer
	require.NoError(t, WriteXLSX(&xlsx, nil))

	f, err := DetectFormat("no-extension", xlsx.Bytes())
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = DetectFormat("data.txt", []byte("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = DetectFormat("budget.CSV", []byte("single"))
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Equal(t, "budgetflow_data.xlsx", f.DefaultFilename())

	_, err = ParseFormat("json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCSVHasHeaderAndBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatCSV, sampleScenarios()[1:]))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, bom+"ScenarioID,ScenarioName,CategoryID"))
	assert.Contains(t, out, `"Side, ""quoted"" plan"`)
}
