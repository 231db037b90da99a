package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nmwangi/contract-risk-api/internal/utils"
)

// Analyzer produces a free-form narrative risk assessment for contract
// text. The returned text is opaque pass-through data; callers never parse
// it.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

type geminiAnalyzer struct {
	apiKey  string
	baseURL string
	model   string
	logger  *utils.Logger
	client  *http.Client
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

// maxPromptChars bounds the contract text embedded in the prompt.
const maxPromptChars = 4000

func NewGeminiAnalyzer(apiKey, baseURL, model string, logger *utils.Logger) Analyzer {
	return &geminiAnalyzer{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		logger:  logger,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (a *geminiAnalyzer) Analyze(ctx context.Context, text string) (string, error) {
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars] + "..."
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: buildPrompt(text)}},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("Gemini API error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("Gemini API returned status %d", resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("Gemini API error: %s", geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var narrative strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		narrative.WriteString(part.Text)
	}

	result := strings.TrimSpace(narrative.String())
	if result == "" {
		return "", fmt.Errorf("empty narrative in response")
	}

	return result, nil
}

// buildPrompt embeds the contract text in the five-point analysis
// instruction template.
func buildPrompt(text string) string {
	return fmt.Sprintf(`You are a legal contract risk analysis assistant.

Analyze the contract below and provide:

1. Contract type
2. Overall risk level (Low / Medium / High)
3. Risky clauses
4. Simple business explanation
5. Safer recommendations

Contract:
%s`, text)
}
