package builder

import (
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const frontPageMinTitleLen = 24

// FrontPageEntries 抓取无 RSS 信源的首页头条：取正文区域里足够长的链接文本。
// 页面结构随时可能调整，这里是“尽力而为”的解析，抓不到就返回空。
func FrontPageEntries(pageURL, outlet string, max int) []Entry {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		log.Printf("front page: bad url %q: %v", pageURL, err)
		return nil
	}

	c := colly.NewCollector(
		colly.AllowedDomains(u.Host),
		colly.UserAgent("JustNews/1.0 (+https://github.com/coreylamb90/justnews)"),
	)
	c.SetRequestTimeout(10 * time.Second)

	entries := make([]Entry, 0, max)
	seen := make(map[string]struct{})

	c.OnHTML("main a[href], article a[href], h2 a[href], h3 a[href]", func(e *colly.HTMLElement) {
		if max > 0 && len(entries) >= max {
			return
		}
		title := strings.TrimSpace(e.Text)
		// 导航、页脚之类的短链接文本不是头条
		if len(title) < frontPageMinTitleLen {
			return
		}
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" || !strings.HasPrefix(link, "http") {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}

		entries = append(entries, Entry{
			Title:  title,
			URL:    link,
			Outlet: outlet,
		})
	})

	if err := c.Visit(pageURL); err != nil {
		log.Printf("front page: visit %s: %v", pageURL, err)
		return nil
	}
	if len(entries) == 0 {
		log.Printf("front page: %s got 0 entries", pageURL)
	}
	return entries
}
