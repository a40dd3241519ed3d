// Package builder 生成 summaries.json：抓取信源 → 抽取正文 → 摘要与情感 →
// 多口径要点 → 同事件聚合，产出与发布端一致的文档结构。
package builder

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/coreylamb90/justnews/internal/config"
	"github.com/coreylamb90/justnews/internal/feed"
)

const (
	defaultMaxTotal   = 300 // 单轮全局条数上限
	defaultMaxPerFeed = 5   // 单信源条数上限
	minTextLen        = 500 // 抽取后过短的页面直接跳过
	sentimentTextCap  = 700 // 情感分类只看标题加要点的前一段
)

// NLP 摘要与情感分类的抽象：配置了 API key 时走 LLM，否则用词法兜底
type NLP interface {
	Bullets(ctx context.Context, text string) ([]string, error)
	Sentiment(ctx context.Context, text string) (feed.Sentiment, error)
}

type Builder struct {
	Sources    []config.FeedSource
	NLP        NLP
	Extractor  *ArticleExtractor
	MaxTotal   int
	MaxPerFeed int
}

func New(sources []config.FeedSource, nlp NLP, extractor *ArticleExtractor) *Builder {
	return &Builder{
		Sources:    sources,
		NLP:        nlp,
		Extractor:  extractor,
		MaxTotal:   defaultMaxTotal,
		MaxPerFeed: defaultMaxPerFeed,
	}
}

// Run 执行一轮完整的生成，返回可直接发布的文档
func (b *Builder) Run(ctx context.Context) (*feed.Document, error) {
	items := make([]feed.NewsItem, 0, b.MaxTotal)
	seen := make(map[string]struct{})
	total := 0

	for _, src := range b.Sources {
		if total >= b.MaxTotal {
			break
		}
		log.Printf("parsing feed: %s (category: %s)", src.URL, src.Category)

		entries, err := fetchEntries(ctx, src, b.MaxPerFeed)
		if err != nil {
			log.Printf("fetch %s error: %v", src.URL, err)
			continue
		}

		kept := 0
		for _, e := range entries {
			if total >= b.MaxTotal {
				break
			}
			if e.URL == "" {
				continue
			}
			if _, ok := seen[e.URL]; ok {
				continue
			}
			seen[e.URL] = struct{}{}

			text, err := b.Extractor.Extract(ctx, e.URL)
			if err != nil {
				log.Printf("skip %s: extract: %v", e.URL, err)
				continue
			}
			if len(text) < minTextLen {
				log.Printf("skip %s: too short after extraction", e.URL)
				continue
			}

			bullets, err := b.NLP.Bullets(ctx, text)
			if err != nil {
				log.Printf("skip %s: summarize: %v", e.URL, err)
				continue
			}

			sent, err := b.NLP.Sentiment(ctx, sentimentText(e.Title, bullets))
			if err != nil {
				log.Printf("sentiment %s error, defaulting neutral: %v", e.URL, err)
				sent = feed.Sentiment{Label: "neutral", Score: 0}
			}

			moods := MoodVariants(bullets)
			items = append(items, feed.NewsItem{
				ID:          MakeID(e.URL),
				Title:       e.Title,
				Outlet:      e.Outlet,
				URL:         e.URL,
				PublishedAt: e.Published,
				Bullets:     bullets,
				Category:    src.Category,
				Sentiment:   &sent,
				Moods:       &moods,
			})
			total++
			kept++
		}
		log.Printf("feed done: kept %d", kept)
	}

	clusters := BuildClusters(items)

	// 与发布端一致：按原始时间文本倒序，缺失时间的排最后
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt > items[j].PublishedAt
	})

	return &feed.Document{
		GeneratedAt: NowISO(),
		Items:       items,
		Clusters:    clusters,
	}, nil
}

// sentimentText 标题拼要点后截断，保持与发布端相同的输入口径
func sentimentText(title string, bullets []string) string {
	text := strings.TrimSpace(title + " " + strings.Join(bullets, " "))
	if rs := []rune(text); len(rs) > sentimentTextCap {
		text = string(rs[:sentimentTextCap])
	}
	return text
}

// MakeID 条目 ID：URL 的 md5 前 12 位，与发布端算法一致
func MakeID(s string) string {
	h := md5.Sum([]byte(s))
	return hex.EncodeToString(h[:])[:12]
}

// NowISO 文档生成时间戳，UTC 秒级
func NowISO() string {
	return time.Now().UTC().Truncate(time.Second).Format("2006-01-02T15:04:05") + "Z"
}
