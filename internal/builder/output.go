package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coreylamb90/justnews/internal/feed"
)

const outputFileName = "summaries.json"

// WriteDocument 把文档写到发布目录，返回完整路径
func WriteDocument(doc *feed.Document, publicDir string) (string, error) {
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		return "", fmt.Errorf("builder: mkdir %s: %w", publicDir, err)
	}

	bs, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("builder: marshal document: %w", err)
	}

	path := filepath.Join(publicDir, outputFileName)
	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return "", fmt.Errorf("builder: write %s: %w", path, err)
	}
	return path, nil
}
