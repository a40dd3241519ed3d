package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// FeedSource 一个待抓取的信源：RSS 地址加一个分类标签。
// Kind 为 frontpage 时 URL 指向信源首页，按头条链接抓取；缺省按 RSS 解析。
type FeedSource struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	Kind     string `yaml:"kind,omitempty"`
	Outlet   string `yaml:"outlet,omitempty"`
}

// 信源清单缺失时的内置默认（与线上发布端一致）
var defaultSources = []FeedSource{
	{URL: "https://www.reuters.com/world/rss", Category: "World"},
	{URL: "https://feeds.npr.org/1001/rss.xml", Category: "General"},
	{URL: "https://www.theverge.com/rss/index.xml", Category: "Technology"},
	{URL: "https://www.sciencedaily.com/rss/top/science.xml", Category: "Science"},
}

// LoadSources 读取信源清单 yaml；path 为空或读取失败时回退到内置默认
func LoadSources(path string) []FeedSource {
	if path == "" {
		return defaultSources
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warn: read sources file %s: %v", path, err)
		return defaultSources
	}
	var rows []FeedSource
	if err := yaml.Unmarshal(bs, &rows); err != nil {
		log.Printf("warn: parse sources file %s: %v", path, err)
		return defaultSources
	}
	out := make([]FeedSource, 0, len(rows))
	for _, r := range rows {
		if r.URL == "" {
			continue
		}
		if r.Category == "" {
			r.Category = "General"
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return defaultSources
	}
	return out
}
