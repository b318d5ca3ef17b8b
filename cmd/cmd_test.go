package cmd

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/transcode"
)

func TestExportFormat(t *testing.T) {
	defer func() { flagExportFormat, flagExportOut = "", "" }()

	tests := []struct {
		format, out string
		want        transcode.Format
	}{
		{"", "", transcode.FormatCSV},
		{"", "plan.xlsx", transcode.FormatXLSX},
		{"", "plan.txt", transcode.FormatCSV},
		{"excel", "plan.csv", transcode.FormatXLSX},
		{"CSV", "-", transcode.FormatCSV},
	}
	for _, tt := range tests {
		flagExportFormat, flagExportOut = tt.format, tt.out
		got, err := exportFormat()
		require.NoError(t, err, "format=%q out=%q", tt.format, tt.out)
		assert.Equal(t, tt.want, got, "format=%q out=%q", tt.format, tt.out)
	}

	flagExportFormat = "pdf"
	_, err := exportFormat()
	assert.ErrorIs(t, err, transcode.ErrUnsupportedFormat)
}

func TestParseTypeFlag(t *testing.T) {
	got, err := parseTypeFlag(" Income ")
	require.NoError(t, err)
	assert.Equal(t, model.Income, got)

	_, err = parseTypeFlag("expense")
	assert.Error(t, err)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "sk-ant-a...wxyz", maskAPIKey("sk-ant-api03-abcdefghwxyz"))
	assert.Equal(t, "sk-a...", maskAPIKey("sk-abc"))
	assert.Equal(t, "****", maskAPIKey("abc"))
}

func TestSetupLogging(t *testing.T) {
	prevLevel, prevLogger := zerolog.GlobalLevel(), log.Logger
	defer func() {
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
	}()

	var buf bytes.Buffer
	require.NoError(t, setupLogging(&buf, "info", "json"))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	log.Info().Str("scenario", "Default").Msg("hello")
	assert.Contains(t, buf.String(), `"scenario":"Default"`)

	require.NoError(t, setupLogging(&buf, "", ""))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.Error(t, setupLogging(&buf, "loud", ""))
	assert.Error(t, setupLogging(&buf, "info", "xml"))
}

func TestCountLines(t *testing.T) {
	sum := model.Summary{ActiveIncome: 1, ActiveExpenditure: 4, InactiveCategories: 3}
	lines := countLines(sum)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "1 income and 4 expenditure categories active, 3 inactive")

	sum.PredefinedInactive = 2
	lines = countLines(sum)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "2 predefined categories available")
}
