package cache

import (
	"fmt"
	"testing"

	"github.com/proplens/proplens/storage"
)

func TestCache_GetSet(t *testing.T) {
	c := New(10)

	if _, ok := c.Get("crawl-1"); ok {
		t.Error("empty cache reported a hit")
	}

	c.Set("crawl-1", &storage.Artifact{SessionID: "crawl-1", URLCount: 3})

	got, ok := c.Get("crawl-1")
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if got.URLCount != 3 {
		t.Errorf("urlCount = %d, want 3", got.URLCount)
	}
}

func TestCache_EvictsAtCapacity(t *testing.T) {
	c := New(2)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("crawl-%d", i)
		c.Set(id, &storage.Artifact{SessionID: id})
	}

	c.mu.RLock()
	n := len(c.store)
	c.mu.RUnlock()
	if n > 2 {
		t.Errorf("cache holds %d entries, capacity is 2", n)
	}
}
