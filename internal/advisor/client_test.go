package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/budgetflow/internal/model"
)

func reply(text string) string {
	data, _ := json.Marshal(map[string]any{
		"content":     []map[string]string{{"type": "text", "text": text}},
		"stop_reason": "end_turn",
	})
	return string(data)
}

func sampleInput() Input {
	return Input{Income: 3000, Expenses: map[string]float64{"Dining Out": 250, "Rent": 1500}, SavingsGoal: 300}
}

func TestOptimize(t *testing.T) {
	var got messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(reply("```json\n{\"suggestions\":[{\"category\":\"Dining Out\",\"potentialSavings\":100,\"justification\":\"Cook at home twice a week.\"}]}\n```")))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := c.Optimize(context.Background(), sampleInput())
	require.NoError(t, err)
	require.Len(t, out.Suggestions, 1)
	assert.Equal(t, "Dining Out", out.Suggestions[0].Category)
	assert.Equal(t, 100.0, out.TotalSavings())

	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Contains(t, got.Messages[0].Content, `"savingsGoal": 300`)
	assert.Contains(t, got.System, "personal finance advisor")
}

func TestOptimizeStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.WriteHeader(tt.status)
		}))
		c, _ := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
		_, err := c.Optimize(context.Background(), sampleInput())
		assert.ErrorIs(t, err, tt.want)
		assert.Equal(t, 1, calls, "no retry")
		srv.Close()
	}
}

func TestOptimizeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, _ := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Optimize(context.Background(), sampleInput())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOptimizeRejectsInput(t *testing.T) {
	c, _ := NewClient(Config{APIKey: "k", BaseURL: "http://127.0.0.1:0"})
	_, err := c.Optimize(context.Background(), Input{Income: -1, Expenses: map[string]float64{"a": 1}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = c.Optimize(context.Background(), Input{Income: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewClientNeedsKey(t *testing.T) {
	_, err := NewClient(Config{APIKey: "  "})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestParseSuggestions(t *testing.T) {
	out, err := parseSuggestions(`[{"category":"Fun","potentialSavings":"£1,200.50","justification":" ok "},{"category":"","potentialSavings":5}]`)
	require.NoError(t, err)
	require.Len(t, out.Suggestions, 1)
	assert.Equal(t, 1200.5, out.Suggestions[0].PotentialSavings)
	assert.Equal(t, "ok", out.Suggestions[0].Justification)

	_, err = parseSuggestions("I think you should spend less.")
	assert.ErrorIs(t, err, ErrBadResponse)

	_, err = parseSuggestions("")
	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestBuildInput(t *testing.T) {
	s := model.Scenario{Categories: []model.Category{
		{Name: "Salary", CurrentValue: 3000, IsActive: true, Type: model.Income},
		{Name: "Rent", CurrentValue: 1500, IsActive: true, Type: model.Expenditure},
		{Name: "Gym", CurrentValue: 40, IsActive: false, Type: model.Expenditure},
	}}

	in := BuildInput(s, -1, 200)
	assert.Equal(t, 3000.0, in.Income)
	assert.Equal(t, map[string]float64{"Rent": 1500}, in.Expenses)
	assert.Equal(t, 200.0, in.SavingsGoal)

	in = BuildInput(s, 4200, 0)
	assert.Equal(t, 4200.0, in.Income)
	assert.Equal(t, []string{"Rent"}, in.ExpenseNames())
}
