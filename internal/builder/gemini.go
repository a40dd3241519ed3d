package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreylamb90/justnews/internal/feed"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-1.5-flash"

// GeminiNLP 用 Gemini 做摘要与情感分类；要点数量与口径和词法兜底保持一致
type GeminiNLP struct {
	client *genai.Client
}

func NewGeminiNLP(ctx context.Context, apiKey string) (*GeminiNLP, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("builder: init gemini client: %w", err)
	}
	return &GeminiNLP{client: client}, nil
}

func (g *GeminiNLP) Close() error {
	return g.client.Close()
}

func (g *GeminiNLP) generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("builder: gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("builder: gemini empty response")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// Bullets 让模型给出至多 5 条一句话要点，逐行解析并统一成 "• " 前缀
func (g *GeminiNLP) Bullets(ctx context.Context, text string) ([]string, error) {
	excerpt := text
	if rs := []rune(excerpt); len(rs) > excerptLen {
		excerpt = string(rs[:excerptLen])
	}

	prompt := "Summarize this news article as at most 5 short bullet points, one per line, no numbering:\n\n" + excerpt
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	bullets := make([]string, 0, maxBullets)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•-* "))
		if line == "" {
			continue
		}
		bullets = append(bullets, "• "+strings.TrimRight(line, "."))
		if len(bullets) >= maxBullets {
			break
		}
	}
	if len(bullets) == 0 {
		return nil, fmt.Errorf("builder: gemini returned no bullets")
	}
	return bullets, nil
}

// Sentiment 让模型只回一个词的标签，异常输出一律归 neutral
func (g *GeminiNLP) Sentiment(ctx context.Context, text string) (feed.Sentiment, error) {
	prompt := `Classify the sentiment of this news text.
Reply with exactly one word: positive, neutral or negative.

Text:
` + text
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return feed.Sentiment{}, err
	}

	label := strings.ToLower(strings.TrimSpace(out))
	score := 0.9
	switch label {
	case "positive", "negative":
	default:
		label = "neutral"
		score = 0.5
	}
	return feed.Sentiment{Label: label, Score: score}, nil
}
