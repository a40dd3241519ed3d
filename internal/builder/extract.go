package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	extractClientTimeout  = 12 * time.Second
	extractMaxResponse    = 4 << 20
	renderExtractTimeout  = 30 * time.Second
	renderExtractMaxChars = 20000
)

// ArticleExtractor 抓取文章页并抽取正文。
// 静态页面直接用 readability；抽取结果过短且配置了 sidecar 时，
// 再交给 render-extract（无头浏览器）兜底处理需要 JS 渲染的页面。
type ArticleExtractor struct {
	client       *http.Client
	renderClient *http.Client
	renderURL    string
}

func NewArticleExtractor(renderURL string) *ArticleExtractor {
	return &ArticleExtractor{
		client:       &http.Client{Timeout: extractClientTimeout},
		renderClient: &http.Client{Timeout: renderExtractTimeout},
		renderURL:    renderURL,
	}
}

func (a *ArticleExtractor) Extract(ctx context.Context, pageURL string) (string, error) {
	text, err := a.extractStatic(ctx, pageURL)
	if err == nil && len(text) >= minTextLen {
		return text, nil
	}

	if a.renderURL != "" {
		if rendered, rerr := a.extractRendered(ctx, pageURL); rerr == nil && len(rendered) > len(text) {
			return rendered, nil
		}
	}

	if err != nil {
		return "", err
	}
	return text, nil
}

func (a *ArticleExtractor) extractStatic(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("builder: build request: %w", err)
	}
	req.Header.Set("User-Agent", "JustNews/1.0 (+https://github.com/coreylamb90/justnews)")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("builder: fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("builder: fetch %s: status %d", pageURL, resp.StatusCode)
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("builder: parse url %s: %w", pageURL, err)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, extractMaxResponse), parsed)
	if err != nil {
		return "", fmt.Errorf("builder: readability %s: %w", pageURL, err)
	}
	return strings.TrimSpace(article.TextContent), nil
}

// render-extract sidecar 的请求/响应，与 cmd/render-extract 保持一致
type renderRequest struct {
	URL      string `json:"url"`
	MaxChars int    `json:"maxChars"`
}

type renderResponse struct {
	OK    bool   `json:"ok"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func (a *ArticleExtractor) extractRendered(ctx context.Context, pageURL string) (string, error) {
	body, err := json.Marshal(renderRequest{URL: pageURL, MaxChars: renderExtractMaxChars})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.renderURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.renderClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("builder: render-extract %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	var rr renderResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, extractMaxResponse)).Decode(&rr); err != nil {
		return "", fmt.Errorf("builder: render-extract decode: %w", err)
	}
	if !rr.OK {
		return "", fmt.Errorf("builder: render-extract: %s", rr.Error)
	}
	return strings.TrimSpace(rr.Text), nil
}
