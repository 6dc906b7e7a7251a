package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"smartbite/internal/core/pipeline"
	"smartbite/internal/pkg/common"
)

// Store 把每次估算的完整結果落地成 JSON 檔
type Store struct {
	dir string
}

// NewStore 建立快照儲存，目錄不存在時會建立
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// Save 寫入一份估算結果，回傳檔案路徑。
// 檔名為 results_<查詢>.json，查詢字串裡的空白換成底線。
func (s *Store) Save(report *pipeline.RunReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("results_%s.json", slug(report.Query)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// Load 讀回一個查詢的上次結果，沒有快照時回傳 os.ErrNotExist
func (s *Store) Load(query string) (*pipeline.RunReport, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("results_%s.json", slug(query)))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var report pipeline.RunReport
	if err := common.ParseJSONBytes(data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &report, nil
}

// slug 把查詢字串化為安全的檔名片段
func slug(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.ReplaceAll(q, " ", "_")
	q = unsafeChars.ReplaceAllString(q, "")
	if q == "" {
		q = "query"
	}
	return q
}
