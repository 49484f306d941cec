package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/core"
)

const (
	openaiBaseURL      = "https://api.openai.com/v1/chat/completions"
	openaiModel        = "gpt-4o"
	openaiMaxRetries   = 3
	openaiInitialDelay = 1 * time.Second

	systemPrompt = "You are an expert productivity coach. Analyze tasks and provide concise, " +
		"actionable priority recommendations. Always respond in JSON."
)

// OpenAIAdvisor delegates priority analysis to the OpenAI chat-completions
// API. Daily plans and suggestions stay rule-based, and any provider failure
// falls back to the rules, so callers always get an answer.
type OpenAIAdvisor struct {
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
	fallback *RuleEngine
	logger   *slog.Logger
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewOpenAIAdvisor creates a chat-completions advisor. An empty model selects
// the default. The fallback engine must not be nil.
func NewOpenAIAdvisor(apiKey, model, baseURL string, fallback *RuleEngine, logger *slog.Logger) *OpenAIAdvisor {
	if model == "" {
		model = openaiModel
	}
	if baseURL == "" {
		baseURL = openaiBaseURL
	}
	return &OpenAIAdvisor{
		apiKey:   apiKey,
		model:    model,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 60 * time.Second},
		fallback: fallback,
		logger:   logger,
	}
}

// AnalyzePriorities asks the provider to rank the active tasks. On any error
// the rule engine answers instead.
func (a *OpenAIAdvisor) AnalyzePriorities(ctx context.Context, tasks []core.Task) (*PriorityAnalysis, error) {
	analysis, err := a.remotePriorities(ctx, tasks)
	if err != nil {
		a.logger.Warn("provider analysis failed, falling back to rules", slog.String("error", err.Error()))
		return a.fallback.AnalyzePriorities(ctx, tasks)
	}
	return analysis, nil
}

// GenerateDailyPlan is always rule-based.
func (a *OpenAIAdvisor) GenerateDailyPlan(ctx context.Context, tasks []core.Task) (*DailyPlan, error) {
	return a.fallback.GenerateDailyPlan(ctx, tasks)
}

// SuggestTask is always rule-based.
func (a *OpenAIAdvisor) SuggestTask(ctx context.Context, title, description string) (*Suggestion, error) {
	return a.fallback.SuggestTask(ctx, title, description)
}

func (a *OpenAIAdvisor) remotePriorities(ctx context.Context, tasks []core.Task) (*PriorityAnalysis, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	var lines []string
	for _, t := range tasks {
		if t.Status == core.StatusCompleted {
			continue
		}
		deadline := "none"
		if t.Deadline != nil {
			deadline = t.Deadline.Format(time.RFC3339)
		}
		lines = append(lines, fmt.Sprintf(
			"- ID:%s | Title:%s | Priority:%s | Deadline:%s | Status:%s | Hours:%g",
			t.ID, t.Title, t.Priority, deadline, t.Status, t.EffortHours(),
		))
	}

	userPrompt := fmt.Sprintf(
		"Analyze these tasks and rank the top 3 by urgency:\n%s\n\n"+
			"Return JSON: {recommendations: [{taskId, taskTitle, rank, reason, suggestedTime}], insight: string}",
		strings.Join(lines, "\n"),
	)

	content, err := a.complete(ctx, userPrompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Recommendations []Recommendation `json:"recommendations"`
		Insight         string           `json:"insight"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	return &PriorityAnalysis{
		Recommendations: parsed.Recommendations,
		Insight:         parsed.Insight,
		GeneratedAt:     time.Now(),
	}, nil
}

// complete sends one chat request, retrying rate limits and server errors
// with exponential backoff.
func (a *OpenAIAdvisor) complete(ctx context.Context, userPrompt string) (string, error) {
	req := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.3,
		MaxTokens:   800,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < openaiMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt))) * openaiInitialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", a.baseURL, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := a.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var apiErr chatError
			if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
				lastErr = fmt.Errorf("OpenAI API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
			} else {
				lastErr = fmt.Errorf("OpenAI API error (%d): %s", resp.StatusCode, string(respBody))
			}

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return "", lastErr
		}

		var chatResp chatResponse
		if err := json.Unmarshal(respBody, &chatResp); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		if len(chatResp.Choices) == 0 {
			return "", fmt.Errorf("no completion choices returned")
		}
		return chatResp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("max retries (%d) exceeded: %w", openaiMaxRetries, lastErr)
}
