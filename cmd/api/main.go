package main

import (
	"crypto/subtle"
	"log"
	"net/http"
	"path/filepath"

	"github.com/coreylamb90/justnews/internal/api"
	"github.com/coreylamb90/justnews/internal/config"
	"github.com/coreylamb90/justnews/internal/feed"
	"github.com/coreylamb90/justnews/internal/loader"
	"github.com/coreylamb90/justnews/internal/scheduler"
	"github.com/coreylamb90/justnews/internal/storage"
	"github.com/coreylamb90/justnews/internal/trending"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	client := feed.NewClient(cfg.FeedURL)
	ldr := loader.New(client, store)

	// 周期性同步发布端的 summaries.json
	s, err := scheduler.New(cfg.CronSpec, ldr)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	extractor := trending.NewExtractor(trending.DefaultStopWords())

	// API
	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(store, ldr, extractor)
	apiServer.RegisterRoutes(r)

	// 若配置了前端目录，则托管 SPA 静态文件并做 fallback
	if cfg.WebRoot != "" {
		assetsDir := filepath.Join(cfg.WebRoot, "assets")
		indexFile := filepath.Join(cfg.WebRoot, "index.html")
		r.Static("/assets", assetsDir)
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet {
				c.Status(http.StatusNotFound)
				return
			}
			// SPA：未匹配 API 的 GET 均返回 index.html
			c.File(indexFile)
		})
	}

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// basicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// 仅当配置了 APP_BASIC_USER / APP_BASIC_PASS 时启用。
// /health 不做认证，便于健康检查。
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
