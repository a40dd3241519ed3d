package main

import (
	"context"
	"log"

	"github.com/coreylamb90/justnews/internal/builder"
	"github.com/coreylamb90/justnews/internal/config"
)

// 一个仅执行一轮生成的命令行入口：抓取信源并产出 summaries.json，
// 适合在 CI 或 cron 里定时发布
func main() {
	cfg := config.Load()
	sources := config.LoadSources(cfg.SourcesFile)

	ctx := context.Background()

	var nlp builder.NLP = builder.LexicalNLP{}
	if cfg.GeminiAPIKey != "" {
		g, err := builder.NewGeminiNLP(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("init gemini failed: %v", err)
		}
		defer g.Close()
		nlp = g
		log.Println("using gemini for summaries and sentiment")
	} else {
		log.Println("GEMINI_API_KEY not set, using lexical fallback")
	}

	b := builder.New(sources, nlp, builder.NewArticleExtractor(cfg.RenderExtractURL))

	doc, err := b.Run(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	path, err := builder.WriteDocument(doc, cfg.PublicDir)
	if err != nil {
		log.Fatalf("write document failed: %v", err)
	}
	log.Printf("wrote %d items / %d clusters to %s", len(doc.Items), len(doc.Clusters), path)
}
