package cache

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryHistoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(5, time.Hour)
	defer store.Close()

	user := uuid.New()
	for _, q := range []string{"budget", "roadmap", "hiring", "q2", "launch", "budget", "pricing"} {
		if err := store.Push(ctx, user, q); err != nil {
			t.Fatalf("Push(%q) error = %v", q, err)
		}
	}

	got, err := store.Recent(ctx, user)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	want := []string{"pricing", "budget", "launch", "q2", "hiring"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() = %v, want %v", got, want)
	}

	other, _ := store.Recent(ctx, uuid.New())
	if len(other) != 0 {
		t.Errorf("unknown user history = %v, want empty", other)
	}

	if err := store.Clear(ctx, user); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got, _ := store.Recent(ctx, user); len(got) != 0 {
		t.Errorf("after Clear() = %v, want empty", got)
	}
}

func TestMemoryHistoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(5, time.Hour)
	defer store.Close()

	user := uuid.New()
	_ = store.Push(ctx, user, "budget")
	store.items[historyKey(user)].expireTime = time.Now().Add(-time.Second)

	if got, _ := store.Recent(ctx, user); len(got) != 0 {
		t.Errorf("expired history = %v, want empty", got)
	}

	// An expired list is replaced, not extended.
	_ = store.Push(ctx, user, "roadmap")
	if got, _ := store.Recent(ctx, user); !reflect.DeepEqual(got, []string{"roadmap"}) {
		t.Errorf("Recent() = %v, want [roadmap]", got)
	}
}

func TestMemoryHistoryStoreRecentIsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(5, 0)
	defer store.Close()

	user := uuid.New()
	_ = store.Push(ctx, user, "budget")
	got, _ := store.Recent(ctx, user)
	got[0] = "mutated"

	if again, _ := store.Recent(ctx, user); again[0] != "budget" {
		t.Errorf("Recent() exposed internal slice: %v", again)
	}
}

func TestMemoryHistoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryHistoryStore(5, time.Hour)
	defer store.Close()

	user := uuid.New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Push(ctx, user, "budget")
			_, _ = store.Recent(ctx, user)
		}()
	}
	wg.Wait()

	if got, _ := store.Recent(ctx, user); !reflect.DeepEqual(got, []string{"budget"}) {
		t.Errorf("Recent() = %v, want [budget]", got)
	}
}

func TestPushFront(t *testing.T) {
	tests := []struct {
		name  string
		list  []string
		query string
		want  []string
	}{
		{"empty", nil, "a", []string{"a"}},
		{"moves duplicate", []string{"b", "a", "c"}, "a", []string{"a", "b", "c"}},
		{"caps size", []string{"b", "c", "d"}, "a", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pushFront(tt.list, tt.query, 3); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("pushFront() = %v, want %v", got, tt.want)
			}
		})
	}
}
