package config

import (
	"log"
	"os"
)

type Config struct {
	AppPort string

	// 发布端生成的 summaries.json 地址
	FeedURL string

	PostgresDSN string
	RedisAddr   string

	CronSpec string

	// 可选：全站 Basic Auth
	BasicAuthUser string
	BasicAuthPass string

	// 可选：前端静态文件目录（SPA 托管）
	WebRoot string

	// 生成端（cmd/build-feed）相关
	PublicDir        string // summaries.json 输出目录
	SourcesFile      string // 信源清单 yaml，缺省用内置默认信源
	GeminiAPIKey     string // 配置后摘要/情感走 LLM，否则用词法兜底
	RenderExtractURL string // chromedp 抽取 sidecar 地址，可为空
}

func Load() *Config {
	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		FeedURL:       getEnv("FEED_URL", "https://coreylamb90.github.io/justnews/summaries.json"),
		PostgresDSN:   getEnv("POSTGRES_DSN", "host=localhost user=justnews password=justnews dbname=justnews port=5432 sslmode=disable TimeZone=UTC"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		CronSpec:      getEnv("CRON_SPEC", "*/30 * * * *"),
		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
		WebRoot:       getEnv("WEB_ROOT", ""),

		PublicDir:        getEnv("PUBLIC_DIR", "public"),
		SourcesFile:      getEnv("SOURCES_FILE", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		RenderExtractURL: getEnv("RENDER_EXTRACT_URL", ""),
	}

	log.Printf("config loaded: port=%s cron=%s feed=%s", cfg.AppPort, cfg.CronSpec, cfg.FeedURL)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
