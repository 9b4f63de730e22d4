package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// openAIGenerator implements ContentGenerator against the OpenAI Responses
// API. Question batches use a strict json_schema output format so malformed
// completions fail at decode time instead of leaking into the quiz store.
type openAIGenerator struct {
	log        *slog.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
}

// NewOpenAIGenerator builds a generator from OPENAI_* environment variables.
func NewOpenAIGenerator(log *slog.Logger) (ContentGenerator, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}

	timeoutSec := 60
	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxRetries := 3
	if v := os.Getenv("OPENAI_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	return &openAIGenerator{
		log:        log.With("service", "OpenAIGenerator"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func isRetryable(err error) bool {
	var httpErr *openAIHTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	// Transport-level failures are worth one more try.
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr)
}

func (g *openAIGenerator) doOnce(ctx context.Context, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

func (g *openAIGenerator) do(ctx context.Context, path string, body any, out any) error {
	backoff := 1 * time.Second

	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		raw, err := g.doOnce(ctx, path, body)
		if err == nil {
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("openai decode error: %w", uErr)
			}
			return nil
		}

		if !isRetryable(err) || attempt == g.maxRetries {
			return err
		}

		sleepFor := backoff + time.Duration(rand.Int63n(int64(backoff/2)+1))
		g.log.Warn("OpenAI request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", g.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		time.Sleep(sleepFor)
		backoff *= 2
	}

	return fmt.Errorf("unreachable retry loop")
}

// -------------------- Responses API --------------------

type responsesRequest struct {
	Model string            `json:"model"`
	Input []responseMessage `json:"input"`
	Text  *responseText     `json:"text,omitempty"`
}

type responseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseText struct {
	Format map[string]any `json:"format"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (r *responsesResponse) outputText() string {
	var sb strings.Builder
	for _, out := range r.Output {
		if out.Type != "message" {
			continue
		}
		for _, c := range out.Content {
			if c.Type == "output_text" {
				sb.WriteString(c.Text)
			}
		}
	}
	return sb.String()
}

const questionSchemaName = "quiz_questions"

// questionBatchSchema describes the strict output shape for question batches.
func questionBatchSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correct_answer": map[string]any{"type": "string"},
						"explanation":    map[string]any{"type": "string"},
					},
					"required":             []string{"question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"questions"},
		"additionalProperties": false,
	}
}

type questionBatch struct {
	Questions []GeneratedQuestion `json:"questions"`
}

func (g *openAIGenerator) GenerateQuestions(ctx context.Context, topic string, count int, difficulty string) ([]GeneratedQuestion, error) {
	system := "You are a quiz author. Produce multiple-choice questions with exactly 4 options each. " +
		"The correct_answer must be copied verbatim from the options array. " +
		"Each explanation should briefly justify the correct answer."
	user := fmt.Sprintf("Write %d %s-difficulty multiple-choice questions about: %s", count, difficulty, topic)

	req := responsesRequest{
		Model: g.model,
		Input: []responseMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Text: &responseText{
			Format: map[string]any{
				"type":   "json_schema",
				"name":   questionSchemaName,
				"schema": questionBatchSchema(),
				"strict": true,
			},
		},
	}

	var resp responsesResponse
	if err := g.do(ctx, "/v1/responses", req, &resp); err != nil {
		return nil, err
	}

	return decodeQuestionBatch(resp.outputText())
}

func decodeQuestionBatch(raw string) ([]GeneratedQuestion, error) {
	var batch questionBatch
	if err := json.Unmarshal([]byte(raw), &batch); err != nil {
		return nil, fmt.Errorf("malformed question batch: %w", err)
	}
	return batch.Questions, nil
}

func (g *openAIGenerator) Explain(ctx context.Context, question, correctAnswer, userAnswer string) (string, error) {
	system := "You are a tutor. Explain concisely why the correct answer is correct. " +
		"If the user's answer differs, point out where it goes wrong."
	user := fmt.Sprintf("Question: %s\nCorrect answer: %s\nUser's answer: %s", question, correctAnswer, userAnswer)

	req := responsesRequest{
		Model: g.model,
		Input: []responseMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	var resp responsesResponse
	if err := g.do(ctx, "/v1/responses", req, &resp); err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.outputText())
	if text == "" {
		return "", fmt.Errorf("empty explanation from model")
	}
	return text, nil
}
