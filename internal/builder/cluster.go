package builder

import (
	"regexp"
	"sort"
	"strings"

	"github.com/coreylamb90/justnews/internal/feed"
)

const (
	signatureSize    = 6   // 标题签名取前几个实义词
	clusterThreshold = 0.6 // 签名 Jaccard 相似度达到该值即并入同一簇
)

// 聚类分词用的停用词表（与热词统计的词表口径不同：这里短词也保留到 3）
var clusterStopWords = toSet(strings.Fields(`
the and for that with from this have will your their about into over more than
been after says said were was are its you but they them who what when where why
how amid as of on to in by at a an it is be or we our not new his her has had
also may can could would should one two three u us news update latest breaking
`))

var titleTokenPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// tokenizeTitle 标题分词：小写、朴素去 s、丢弃短词与停用词
func tokenizeTitle(title string) []string {
	words := titleTokenPattern.FindAllString(title, -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if len(w) > 4 && strings.HasSuffix(w, "s") {
			w = w[:len(w)-1]
		}
		if len(w) < 3 {
			continue
		}
		if _, stop := clusterStopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// signatureWords 标题签名：去重后的前 k 个实义词
func signatureWords(title string, k int) []string {
	seen := make(map[string]struct{})
	sig := make([]string, 0, k)
	for _, w := range tokenizeTitle(title) {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		sig = append(sig, w)
		if len(sig) >= k {
			break
		}
	}
	return sig
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

type bucket struct {
	sig  map[string]struct{}
	idxs []int
}

// BuildClusters 按标题签名的 Jaccard 相似度把条目聚成事件簇，
// 并把簇 ID 回写到条目上。单条也成簇（单信源事件）。
func BuildClusters(items []feed.NewsItem) []feed.Cluster {
	buckets := make([]*bucket, 0, len(items))

	for idx := range items {
		sig := toSet(signatureWords(items[idx].Title, signatureSize))
		if len(sig) == 0 {
			buckets = append(buckets, &bucket{sig: sig, idxs: []int{idx}})
			continue
		}
		assigned := false
		for _, b := range buckets {
			if jaccard(sig, b.sig) >= clusterThreshold {
				b.idxs = append(b.idxs, idx)
				// 并入后扩展签名，让后续条目能挂到同一簇
				for w := range sig {
					b.sig[w] = struct{}{}
				}
				assigned = true
				break
			}
		}
		if !assigned {
			buckets = append(buckets, &bucket{sig: sig, idxs: []int{idx}})
		}
	}

	clusters := make([]feed.Cluster, 0, len(buckets))
	for _, b := range buckets {
		if len(b.idxs) == 0 {
			continue
		}

		sigWords := make([]string, 0, len(b.sig))
		for w := range b.sig {
			sigWords = append(sigWords, w)
		}
		sort.Strings(sigWords)

		topic := strings.Join(firstN(sigWords, 4), " ")
		if topic == "" {
			topic = "topic"
		}

		itemIDs := make([]string, 0, len(b.idxs))
		outletSet := make(map[string]struct{})
		for _, i := range b.idxs {
			itemIDs = append(itemIDs, items[i].ID)
			if items[i].Outlet != "" {
				outletSet[items[i].Outlet] = struct{}{}
			}
		}
		outlets := make([]string, 0, len(outletSet))
		for o := range outletSet {
			outlets = append(outlets, o)
		}
		sort.Strings(outlets)

		joinedIDs := strings.Join(itemIDs, "")
		if len(joinedIDs) > 24 {
			joinedIDs = joinedIDs[:24]
		}
		cid := MakeID(topic + joinedIDs)

		clusters = append(clusters, feed.Cluster{
			ID:       cid,
			Topic:    topic,
			Keywords: firstN(sigWords, 8),
			ItemIDs:  itemIDs,
			Outlets:  outlets,
		})
		for _, i := range b.idxs {
			items[i].ClusterID = cid
		}
	}

	return clusters
}
