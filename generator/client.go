// Package generator calls the Gemini generateContent API and parses the
// strictly-typed course document it returns. It performs no persistence.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"coursegen/config"
	"coursegen/models"
)

var (
	// ErrEmptyResponse means the model returned no text at all, usually a
	// refusal.
	ErrEmptyResponse = errors.New("generator returned an empty response")
	// ErrMalformedResponse means the model returned text that does not parse
	// or validate as a course document.
	ErrMalformedResponse = errors.New("generator response was not a valid course document")
	// ErrInvalidInput means the caller's constraints failed validation; no
	// request is sent.
	ErrInvalidInput = errors.New("invalid generation input")
)

var validate = validator.New()

// Input are the user-supplied generation constraints.
type Input struct {
	Keyword             string `json:"keyword" validate:"required"`
	ChaptersCount       int    `json:"chapters_count" validate:"required,min=1,max=20"`
	MaxWordsDescription int    `json:"max_words_description" validate:"required,min=20"`
	MaxWordsChapterText int    `json:"max_words_chapter_text" validate:"required,min=50"`
	IncludeQuizzes      bool   `json:"include_quizzes"`
	IncludeYoutube      bool   `json:"include_youtube"`
	Level               string `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
}

// Meta records how the document was produced.
type Meta struct {
	CreatedByModelVersion string `json:"created_by_model_version"`
	PromptUsed            string `json:"prompt_used"`
	Constraints           string `json:"constraints"`
}

// CourseDocument is the generated draft, reviewed by the user before it is
// saved as a models.Course.
type CourseDocument struct {
	CourseID              string             `json:"courseId" validate:"required"`
	Title                 string             `json:"title" validate:"required"`
	Subtitle              string             `json:"subtitle" validate:"required"`
	Category              string             `json:"category" validate:"required"`
	Level                 string             `json:"level" validate:"required"`
	DurationWeeks         int                `json:"duration_weeks" validate:"min=1"`
	EstimatedTotalMinutes int                `json:"estimated_total_minutes" validate:"min=1"`
	ImageRequired         bool               `json:"image_required_before_save"`
	Description           string             `json:"description" validate:"required"`
	LearningOutcomes      []string           `json:"learning_outcomes" validate:"required,min=1"`
	Chapters              models.ChapterList `json:"chapters" validate:"required,dive"`
	Meta                  Meta               `json:"meta"`
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.GeminiBaseURL, "/"),
		apiKey:     cfg.GeminiAPIKey,
		model:      cfg.GeminiModel,
		httpClient: &http.Client{Timeout: time.Duration(cfg.GeminiTimeoutSecond) * time.Second},
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64        `json:"temperature"`
	TopP             float64        `json:"topP"`
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateCourse produces a course document for the given constraints. The
// document is validated against the schema invariants before it is returned.
func (c *Client) GenerateCourse(ctx context.Context, input Input) (*CourseDocument, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	prompt := buildPrompt(input)
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      0.7,
			TopP:             0.9,
			ResponseMimeType: "application/json",
			ResponseSchema:   courseSchema(),
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generator request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("generator request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("generator request failed: status %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	text := extractText(parsed)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	var doc CourseDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := doc.Chapters.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(doc.Chapters) != input.ChaptersCount {
		return nil, fmt.Errorf("%w: expected %d chapters, got %d", ErrMalformedResponse, input.ChaptersCount, len(doc.Chapters))
	}

	if doc.Meta.PromptUsed == "" {
		doc.Meta.PromptUsed = input.Keyword
	}
	return &doc, nil
}

func extractText(resp generateResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
