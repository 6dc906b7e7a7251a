package pipeline

import (
	"smartbite/internal/core/cache"
)

// runCache 單次執行內的事實備忘錄。
// 同一個標準名稱在一次執行內最多只查一次供應商，
// 查無資料的結果也記下來，避免對同一個名稱重複打 API。
type runCache struct {
	facts map[string]*cache.Facts
}

func newRunCache() *runCache {
	return &runCache{facts: make(map[string]*cache.Facts)}
}

func (r *runCache) get(name string) (*cache.Facts, bool) {
	facts, ok := r.facts[name]
	return facts, ok
}

func (r *runCache) put(name string, facts *cache.Facts) {
	r.facts[name] = facts
}
