package builder

import (
	"context"
	"strings"

	"github.com/coreylamb90/justnews/internal/feed"
)

const (
	excerptLen        = 1500 // 只摘要正文开头一段，后文对要点贡献极小
	maxBullets        = 5
	neutralThreshold  = 0.65 // 置信度不超过该值一律归 neutral
	lexicalBaseScore  = 0.5
	lexicalScoreStep  = 0.1
)

// LexicalNLP 无模型可用时的词法兜底：
// 取正文前几句做要点，用情感词表打分。质量不及 LLM，但离线可用且确定。
type LexicalNLP struct{}

// Bullets 取正文开头的句子做要点，每条加 "• " 前缀并去掉句尾句号
func (LexicalNLP) Bullets(_ context.Context, text string) ([]string, error) {
	excerpt := text
	if rs := []rune(excerpt); len(rs) > excerptLen {
		excerpt = string(rs[:excerptLen])
	}

	bullets := make([]string, 0, maxBullets)
	for _, sentence := range strings.Split(excerpt, ". ") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		bullets = append(bullets, "• "+strings.TrimRight(sentence, "."))
		if len(bullets) >= maxBullets {
			break
		}
	}
	if len(bullets) == 0 {
		bullets = append(bullets, "• (no summary)")
	}
	return bullets, nil
}

// 情感词表：正面词沿用要点筛选的词表，负面词是新闻语料里的高频负向词
var negativeWords = map[string]struct{}{
	"crisis": {}, "death": {}, "deaths": {}, "dead": {}, "killed": {}, "kills": {},
	"war": {}, "attack": {}, "attacks": {}, "crash": {}, "collapse": {}, "loss": {},
	"losses": {}, "decline": {}, "fears": {}, "fear": {}, "threat": {}, "warning": {},
	"disaster": {}, "outbreak": {}, "layoffs": {}, "shortage": {}, "fraud": {},
	"lawsuit": {}, "violence": {}, "injured": {}, "damage": {}, "failure": {},
}

// Sentiment 统计正负向词出现次数给出标签；没有明显倾向或置信度不足时归 neutral
func (LexicalNLP) Sentiment(_ context.Context, text string) (feed.Sentiment, error) {
	var pos, neg int
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?:;\"'()[]")
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}

	diff := pos - neg
	if diff < 0 {
		diff = -diff
	}
	score := lexicalBaseScore + float64(diff)*lexicalScoreStep
	if score > 0.99 {
		score = 0.99
	}

	label := "neutral"
	if score > neutralThreshold {
		if pos > neg {
			label = "positive"
		} else {
			label = "negative"
		}
	}
	return feed.Sentiment{Label: label, Score: score}, nil
}
