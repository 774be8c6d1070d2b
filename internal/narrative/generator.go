package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "llama3-70b-8192"

	defaultBaseURL = "https://api.groq.com/openai/v1"
)

var (
	ErrNoAPIKey    = errors.New("no API key is configured for the report generator")
	ErrEmptyReport = errors.New("the report generator returned no content")
)

// Report is the structured narrative report the generator produces.
// The shape is part of the API contract and is passed through to callers
// unmodified.
type Report struct {
	Summary string `json:"summary"`

	Insights []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Type        string `json:"type" example:"warning"`
	} `json:"insights"`

	Recommendations []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority" example:"high"`
	} `json:"recommendations"`

	OverspendingCategories []struct {
		Category    string  `json:"category"`
		OverspentBy float64 `json:"overspent_by"`
	} `json:"overspending_categories"`

	ActionableAdvice []string `json:"actionable_advice"`
	GeneralTips      []string `json:"general_tips"`
}

// Generator produces narrative reports from an Analysis by calling a
// Groq-compatible chat completions API.
type Generator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGenerator returns a Generator for the given API key. Model and base
// URL fall back to the Groq defaults when empty.
func NewGenerator(apiKey, model, baseURL string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Generator{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Model returns the name of the configured chat model.
func (g *Generator) Model() string {
	return g.model
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate produces a Report for an analysis.
func (g *Generator) Generate(ctx context.Context, analysis Analysis) (Report, error) {
	if g.apiKey == "" {
		return Report{}, ErrNoAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt(analysis)},
		},
	})
	if err != nil {
		return Report{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Report{}, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("report generator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("report generator returned HTTP %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return Report{}, fmt.Errorf("could not decode report generator response: %w", err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return Report{}, ErrEmptyReport
	}

	var report Report
	if err := json.Unmarshal([]byte(cleanJSON(chat.Choices[0].Message.Content)), &report); err != nil {
		return Report{}, fmt.Errorf("could not parse the generated report: %w", err)
	}

	return report, nil
}

// cleanJSON strips the markdown code fences some models wrap their JSON
// output in.
func cleanJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// prompt renders the analysis into the instruction for the chat model.
// Amounts are formatted as floats so the printer applies English digit
// grouping, e.g. 12,345.50.
func prompt(analysis Analysis) string {
	p := message.NewPrinter(language.English)

	name := firstName(analysis.UserName)

	var lines []string
	for _, d := range analysis.Details {
		lines = append(lines, p.Sprintf(
			"- %s: Spent %.2f, Budget %.2f, %s by %.2f",
			d.Category, d.Spent.InexactFloat64(), d.Budget.InexactFloat64(), d.Status, d.Difference.Abs().InexactFloat64(),
		))
	}

	return p.Sprintf(`You are a financial advisor AI.

Hello %s,

Here's an analysis of your financial data:

Your Income: %.2f
Total Budget: %.2f
Total Spending: %.2f
Overall Status: %s

Category Breakdown:
%s

Based on the data above, generate a JSON object with the following fields:
"summary" (a short summary of %s's financial behavior),
"insights" (list of {title, description, type} where type is one of positive, warning, negative),
"recommendations" (list of {title, description, priority} where priority is one of high, medium, low),
"overspending_categories" (list of {category, overspent_by}),
"actionable_advice" (list of strings) and
"general_tips" (list of strings).

Respond with the JSON object only, without markdown fences.`,
		name,
		analysis.Income.InexactFloat64(),
		analysis.TotalBudget.InexactFloat64(),
		analysis.TotalSpent.InexactFloat64(),
		analysis.Status,
		strings.Join(lines, "\n"),
		name,
	)
}

// firstName extracts the first name from a full name, defaulting to
// "there" for anonymous users.
func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "there"
	}

	return fields[0]
}
