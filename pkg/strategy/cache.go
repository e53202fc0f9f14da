package strategy

import (
	"fmt"
	"hash/fnv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/source"
)

// DefaultCacheSize bounds the number of memoized analyzer results.
const DefaultCacheSize = 512

// CachedAnalyzer memoizes NeededImports results in an LRU cache keyed by
// file, scope span and a fingerprint of the snapshot text, so repeated runs
// over unchanged files (directory walks, watch mode) skip the analysis.
type CachedAnalyzer struct {
	inner UsageAnalyzer
	cache *lru.Cache[string, []Need]
}

// NewCachedAnalyzer wraps the analyzer with an LRU of the given size.
func NewCachedAnalyzer(inner UsageAnalyzer, size int) (*CachedAnalyzer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []Need](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer cache: %w", err)
	}
	return &CachedAnalyzer{inner: inner, cache: cache}, nil
}

func (c *CachedAnalyzer) NeededImports(tree *source.Tree, scope *source.Scope) ([]Need, error) {
	key := cacheKey(tree, scope)
	if needs, ok := c.cache.Get(key); ok {
		return append([]Need(nil), needs...), nil
	}
	needs, err := c.inner.NeededImports(tree, scope)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, append([]Need(nil), needs...))
	return needs, nil
}

func cacheKey(tree *source.Tree, scope *source.Scope) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(tree.Text))
	return fmt.Sprintf("%s:%d-%d:%x", tree.File, scope.Span.Start, scope.Span.End, h.Sum64())
}
