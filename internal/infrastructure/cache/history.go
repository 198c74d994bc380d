package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// HistoryStore keeps each user's most recent search queries, newest first.
// Pushing a query already in the list moves it to the front.
type HistoryStore interface {
	Push(ctx context.Context, userID uuid.UUID, query string) error
	Recent(ctx context.Context, userID uuid.UUID) ([]string, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

func historyKey(userID uuid.UUID) string {
	return fmt.Sprintf("search:history:%s", userID)
}

// pushFront moves query to the front of list and caps it at size
func pushFront(list []string, query string, size int) []string {
	out := make([]string, 0, size)
	out = append(out, query)
	for _, q := range list {
		if len(out) == size {
			break
		}
		if q != query {
			out = append(out, q)
		}
	}
	return out
}
