package feed

// Sentiment 情感标签与置信度，label 固定为 positive / neutral / negative
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Moods 同一条摘要的三种口径：简报 / 积极面 / 影响面
type Moods struct {
	BriefBullets   []string `json:"brief_bullets,omitempty"`
	HopefulBullets []string `json:"hopeful_bullets,omitempty"`
	StakesBullets  []string `json:"stakes_bullets,omitempty"`
}

// NewsItem 是 summaries.json 中的一条新闻摘要。
// PublishedAt 保留原始文本：上游 RSS 的时间格式不统一，可能缺失或无法解析，
// 排序所需的解析结果由 loader 负责，不在这里做。
type NewsItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Outlet      string     `json:"outlet,omitempty"`
	URL         string     `json:"url"`
	PublishedAt string     `json:"published_at,omitempty"`
	Bullets     []string   `json:"bullets,omitempty"`
	Category    string     `json:"category,omitempty"`
	Sentiment   *Sentiment `json:"sentiment,omitempty"`
	Moods       *Moods     `json:"moods,omitempty"`
	ClusterID   string     `json:"cluster_id,omitempty"`
}

// Cluster 同一事件的多信源聚合
type Cluster struct {
	ID       string   `json:"id"`
	Topic    string   `json:"topic"`
	Keywords []string `json:"keywords,omitempty"`
	ItemIDs  []string `json:"item_ids"`
	Outlets  []string `json:"outlets,omitempty"`
}

// Document 对应发布端生成的整份 summaries.json
type Document struct {
	GeneratedAt string     `json:"generated_at"`
	Items       []NewsItem `json:"items"`
	Clusters    []Cluster  `json:"clusters,omitempty"`
}
