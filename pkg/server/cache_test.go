package server

import (
	"fmt"
	"testing"
)

func TestCountCachePutGet(t *testing.T) {
	cc := NewCountCache(8)
	if _, ok := cc.Get("the cat"); ok {
		t.Error("Get on an empty cache reported a hit")
	}
	cc.Put("the cat", 2)
	cc.Put("the", 5)
	if count, ok := cc.Get("the cat"); !ok || count != 2 {
		t.Errorf("Get(\"the cat\") = %d, %v, want 2, true", count, ok)
	}
	if count, ok := cc.Get("the"); !ok || count != 5 {
		t.Errorf("Get(\"the\") = %d, %v, want 5, true", count, ok)
	}
	cc.Put("the", 7)
	if count, _ := cc.Get("the"); count != 7 {
		t.Errorf("Get after overwrite = %d, want 7", count)
	}
	if cc.Len() != 2 {
		t.Errorf("Len = %d, want 2", cc.Len())
	}
}

func TestCountCacheEviction(t *testing.T) {
	cc := NewCountCache(4)
	for i := 0; i < 4; i++ {
		cc.Put(fmt.Sprintf("query-%d", i), i)
	}
	// Touch the oldest entry so query-1 becomes the eviction candidate.
	if _, ok := cc.Get("query-0"); !ok {
		t.Fatal("query-0 missing before eviction")
	}
	cc.Put("query-4", 4)

	if cc.Len() != 4 {
		t.Errorf("Len after eviction = %d, want 4", cc.Len())
	}
	if _, ok := cc.Get("query-1"); ok {
		t.Error("least recently used entry survived eviction")
	}
	for _, q := range []string{"query-0", "query-2", "query-3", "query-4"} {
		if _, ok := cc.Get(q); !ok {
			t.Errorf("%s missing after eviction", q)
		}
	}
}
