package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	feedClientTimeout    = 12 * time.Second
	feedMaxResponseBytes = 8 << 20 // 8MB，整份 summaries.json 不会超过这个量级
)

// Client 拉取发布端定期刷新的 summaries.json
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: feedClientTimeout},
	}
}

// Fetch 返回解析后的文档与原始字节；原始字节用于缓存最近一次成功的快照
func (c *Client) Fetch(ctx context.Context) (*Document, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("feed: build request: %w", err)
	}
	req.Header.Set("User-Agent", "JustNews/1.0 (+https://github.com/coreylamb90/justnews)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("feed: fetch %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("feed: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, feedMaxResponseBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("feed: read body: %w", err)
	}

	doc, err := Decode(raw)
	if err != nil {
		return nil, nil, err
	}
	return doc, raw, nil
}

// Decode 解析一份 summaries.json；缓存回退路径也走这里，保证两条路径行为一致
func Decode(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("feed: unmarshal document: %w", err)
	}
	return &doc, nil
}
