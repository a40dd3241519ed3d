package builder

import (
	"strings"

	"github.com/coreylamb90/justnews/internal/feed"
)

const maxMoodBullets = 4

// 正向词与影响词，用于从同一份要点里筛出不同口径的子集
var positiveWords = toSet([]string{
	"win", "gains", "growth", "record", "award", "boost", "reduce", "relief",
	"improve", "strong", "surge", "rebound", "recovery", "progress",
	"breakthrough", "help", "hope", "healing", "saved",
})

var impactWords = toSet([]string{
	"will", "could", "impact", "affect", "effect", "cause", "lead", "result",
	"expected", "plan", "policy", "bill", "ban", "require", "expand", "cut",
	"increase", "decrease", "deadline", "costs", "risk",
})

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// MoodVariants 按三种口径筛选要点：
// 简报取前两条；积极面取含正向词的；影响面取含影响词的。筛不出就退回开头几条。
func MoodVariants(bullets []string) feed.Moods {
	brief := firstN(bullets, 2)

	hopeful := filterByWords(bullets, positiveWords)
	if len(hopeful) == 0 {
		hopeful = firstN(bullets, 2)
	}

	stakes := filterByWords(bullets, impactWords)
	if len(stakes) == 0 {
		stakes = firstN(bullets, 3)
	}

	return feed.Moods{
		BriefBullets:   firstN(brief, maxMoodBullets),
		HopefulBullets: firstN(hopeful, maxMoodBullets),
		StakesBullets:  firstN(stakes, maxMoodBullets),
	}
}

func filterByWords(bullets []string, words map[string]struct{}) []string {
	out := make([]string, 0, len(bullets))
	for _, b := range bullets {
		lower := strings.ToLower(b)
		for w := range words {
			if strings.Contains(lower, w) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

func firstN(ss []string, n int) []string {
	if len(ss) <= n {
		return ss
	}
	return ss[:n]
}
