package quizgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/payload"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	temperature = 0.3
	maxTokens   = 4000

	// maxContentRunes keeps long articles inside small model context windows.
	maxContentRunes = 15000
)

var errNoJSON = errors.New("no JSON object found in LLM response")

const systemPrompt = `You are an expert quiz generator. Your output MUST be valid JSON only.

You will receive:
1. TITLE: The Wikipedia article title
2. CONTENT: Full cleaned article text

You must return a JSON object EXACTLY in the following structure:

{
  "title": "<string>",
  "description": "<2-4 sentence summary of the article>",
  "key_entities": {
      "people": [ ... ],
      "organizations": [ ... ],
      "locations": [ ... ]
  },
  "topics": [ "<topic1>", "<topic2>", "<topic3>" ],
  "questions": [
      {
        "question": "<string>",
        "options": {
          "A": "<string>",
          "B": "<string>",
          "C": "<string>",
          "D": "<string>"
        },
        "answer": "<correct option text>",
        "explanation": "<1-2 sentences explaining the answer>",
        "difficulty": "easy | medium | hard"
      }
  ]
}

STRICT RULES:
- Output ONLY JSON (no markdown, no commentary)
- 5 to 20 questions depending on article length
- EXACTLY 4 options per question (A, B, C, D)
- "answer" must be the option TEXT, not the letter
- All fields must exist, NO missing fields
- "topics" must contain 3-6 related Wikipedia topics
- Keep the JSON clean, no trailing commas
- Do NOT wrap inside code fences`

// llmQuizGenerator implements domain.QuizGenerator
type llmQuizGenerator struct {
	model llms.Model
}

// NewLLMQuizGenerator creates a generator backed by any langchaingo model.
func NewLLMQuizGenerator(model llms.Model) domain.QuizGenerator {
	return &llmQuizGenerator{model: model}
}

// NewModel builds the langchaingo model named by cfg.Provider.
func NewModel(cfg config.LLMConfig) (llms.Model, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderOllama:
		return ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithFormat("json"),
			ollama.WithHTTPClient(httpClient),
		)
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		return openai.New(opts...)
	}
	return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
}

// GenerateQuiz implements domain.QuizGenerator
func (g *llmQuizGenerator) GenerateQuiz(ctx context.Context, article *domain.Article) (any, error) {
	l := logger.Get()
	prompt := buildPrompt(article)

	l.Info("Generating quiz with LLM", zap.String("title", article.Title), zap.Int("prompt_length", len(prompt)))

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
		llms.WithJSONMode(),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Error(err))
			return nil, domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
		}
		l.Error("Failed to get response from LLM", zap.Error(err))
		return nil, domain.NewLLMServiceError(fmt.Errorf("LLM call failed: %w", err))
	}

	l.Debug("Raw LLM response received", zap.String("raw_response", raw))

	quiz, err := parseResponse(raw)
	if err != nil {
		l.Error("Failed to parse LLM response", zap.Error(err), zap.String("raw_response", raw))
		return nil, domain.NewLLMServiceError(err)
	}
	return quiz, nil
}

func buildPrompt(article *domain.Article) string {
	content := article.Content
	if utf8.RuneCountInString(content) > maxContentRunes {
		content = string([]rune(content)[:maxContentRunes])
	}
	return fmt.Sprintf("%s\n\nTITLE:\n%s\n\nCONTENT:\n%s\n", systemPrompt, article.Title, content)
}

// parseResponse drops <think> blocks and code fences, then decodes the
// outermost {...} with key order kept.
func parseResponse(raw string) (any, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}

	if strings.Contains(cleaned, "```") {
		cleaned = strings.ReplaceAll(cleaned, "```json", "")
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "```", ""))
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return nil, errNoJSON
	}

	quiz, err := payload.Decode([]byte(cleaned[jsonStart : jsonEnd+1]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse AI-generated JSON: %w", err)
	}
	return quiz, nil
}
