package loader

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/coreylamb90/justnews/internal/feed"
	"github.com/coreylamb90/justnews/internal/storage"
	"gorm.io/datatypes"
)

// 上游 RSS 源的时间格式五花八门，按常见程度依次尝试
var feedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFeedTime 尽力解析发布时间；解析失败返回零值（排序时垫底），原始文本另行保留
func ParseFeedTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range feedTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NormalizeSentiment 规范情感标签为固定集合；空保持为空，其余异常值归并为 neutral
func NormalizeSentiment(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", "positive", "neutral", "negative":
		return label
	default:
		return "neutral"
	}
}

// NormalizeItems 清洗一批条目并按 ID 去重：
// 缺失可选字段按空处理，ID 缺失或不合规时用 URL 的散列兜底
func NormalizeItems(in []feed.NewsItem) []storage.Item {
	out := make([]storage.Item, 0, len(in))
	seen := make(map[string]struct{})

	for _, it := range in {
		// ID 统一走收藏接口同一套校验；上游给的 ID 不合规时用 URL 散列兜底，
		// 保证入库的 ID 必然能被收藏
		id := storage.NormalizeItemID(it.ID)
		if id == "" {
			if it.URL == "" {
				continue
			}
			id = hashURL(it.URL)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		item := storage.Item{
			ID:           id,
			Title:        strings.TrimSpace(it.Title),
			Outlet:       strings.TrimSpace(it.Outlet),
			URL:          it.URL,
			PublishedRaw: strings.TrimSpace(it.PublishedAt),
			PublishedAt:  ParseFeedTime(it.PublishedAt),
			Bullets:      datatypes.NewJSONSlice(it.Bullets),
			Category:     strings.TrimSpace(it.Category),
			ClusterID:    it.ClusterID,
		}
		if it.Sentiment != nil {
			item.SentimentLabel = NormalizeSentiment(it.Sentiment.Label)
			item.SentimentScore = it.Sentiment.Score
		}
		if it.Moods != nil {
			item.Moods = moodsMap(it.Moods)
		}
		out = append(out, item)
	}

	return out
}

// ToFeedItems 把入库条目转回文档结构，供热词统计与 API 输出复用
func ToFeedItems(in []storage.Item) []feed.NewsItem {
	out := make([]feed.NewsItem, 0, len(in))
	for _, it := range in {
		fi := feed.NewsItem{
			ID:          it.ID,
			Title:       it.Title,
			Outlet:      it.Outlet,
			URL:         it.URL,
			PublishedAt: it.PublishedRaw,
			Bullets:     []string(it.Bullets),
			Category:    it.Category,
			ClusterID:   it.ClusterID,
		}
		if it.SentimentLabel != "" {
			fi.Sentiment = &feed.Sentiment{Label: it.SentimentLabel, Score: it.SentimentScore}
		}
		out = append(out, fi)
	}
	return out
}

func moodsMap(m *feed.Moods) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	if len(m.BriefBullets) > 0 {
		out["brief_bullets"] = m.BriefBullets
	}
	if len(m.HopefulBullets) > 0 {
		out["hopeful_bullets"] = m.HopefulBullets
	}
	if len(m.StakesBullets) > 0 {
		out["stakes_bullets"] = m.StakesBullets
	}
	return out
}

func hashURL(url string) string {
	h := sha1.New()
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}
