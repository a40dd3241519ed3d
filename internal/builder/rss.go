package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreylamb90/justnews/internal/config"
	"github.com/mmcdole/gofeed"
)

// Entry 一条待处理的信源条目（RSS 项或首页头条）
type Entry struct {
	Title     string
	URL       string
	Outlet    string
	Published string
}

// fetchEntries 拉取一个信源的条目：kind=frontpage 走首页头条抓取，其余按 RSS 解析
func fetchEntries(ctx context.Context, src config.FeedSource, max int) ([]Entry, error) {
	if src.Kind == "frontpage" {
		return FrontPageEntries(src.URL, src.Outlet, max), nil
	}

	parser := gofeed.NewParser()
	parser.UserAgent = "JustNews/1.0 (+https://github.com/coreylamb90/justnews)"

	parsed, err := parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("builder: parse feed %s: %w", src.URL, err)
	}

	outlet := strings.TrimSpace(parsed.Title)

	entries := parsed.Items
	if max > 0 && len(entries) > max {
		entries = entries[:max]
	}

	out := make([]Entry, 0, len(entries))
	for _, it := range entries {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			title = "Untitled"
		}
		published := it.Published
		if published == "" {
			published = it.Updated
		}
		out = append(out, Entry{
			Title:     title,
			URL:       it.Link,
			Outlet:    outlet,
			Published: published,
		})
	}
	return out, nil
}
