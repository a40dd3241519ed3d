package trending

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/coreylamb90/justnews/internal/feed"
)

// TopicCount 一个热词及其出现次数
type TopicCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

const minTokenLen = 4

// 先剔除链接片段再分词，避免 URL 残渣污染词频
var urlPattern = regexp.MustCompile(`https?://\S+`)

// Extractor 基于词频的热词统计。停用词集在构造时注入，之后只读，
// 多个调用方并发使用是安全的。
type Extractor struct {
	stopWords map[string]struct{}
}

func NewExtractor(stopWords []string) *Extractor {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &Extractor{stopWords: set}
}

// Extract 统计 items 的标题与摘要要点中的高频词，返回至多 topN 个。
// 按次数降序排列，次数相同时保持首次出现的先后顺序。
//
// 规则与前端展示约定保持一致：
//   - 全部转小写后拼成一段文本，剔除 URL，非字母数字连字符一律视为分隔
//   - 丢弃长度不足 4 的词与停用词
//   - 长度超过 4 且以 s 结尾的词去掉结尾 s 做朴素单数化
//     （"stories"→"storie"，不是词法还原，是既定的近似行为）
func (e *Extractor) Extract(items []feed.NewsItem, topN int) []TopicCount {
	if topN <= 0 {
		return nil
	}

	counts := make(map[string]int)
	order := make([]string, 0, 64)

	for _, it := range items {
		blob := it.Title
		if len(it.Bullets) > 0 {
			blob += " " + strings.Join(it.Bullets, " ")
		}
		blob = strings.ToLower(blob)
		blob = urlPattern.ReplaceAllString(blob, " ")

		for _, tok := range strings.Fields(sanitize(blob)) {
			if len(tok) < minTokenLen {
				continue
			}
			if _, stop := e.stopWords[tok]; stop {
				continue
			}
			if len(tok) > minTokenLen && strings.HasSuffix(tok, "s") {
				tok = tok[:len(tok)-1]
			}
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	out := make([]TopicCount, 0, len(order))
	for _, w := range order {
		out = append(out, TopicCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// sanitize 把小写字母、数字、空白、连字符之外的字符替换为空格
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || unicode.IsSpace(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(' ')
	}
	return b.String()
}
