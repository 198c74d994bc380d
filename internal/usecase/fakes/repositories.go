// Package fakes provides in-memory repositories for usecase and handler tests.
package fakes

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/johnquangdev/transcript-search/internal/domain/entities"
	"github.com/johnquangdev/transcript-search/internal/domain/repositories"
)

// TranscriptRepository is an in-memory repositories.TranscriptRepository
type TranscriptRepository struct {
	mu          sync.Mutex
	transcripts map[uuid.UUID]*entities.Transcript
	order       []uuid.UUID

	// Err, when set, is returned from every call
	Err error
}

// NewTranscriptRepository creates an empty repository
func NewTranscriptRepository() *TranscriptRepository {
	return &TranscriptRepository{transcripts: make(map[uuid.UUID]*entities.Transcript)}
}

var _ repositories.TranscriptRepository = (*TranscriptRepository)(nil)

func (r *TranscriptRepository) Create(_ context.Context, t *entities.Transcript) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if t.ExternalID != nil {
		for _, existing := range r.transcripts {
			if existing.ExternalID != nil && *existing.ExternalID == *t.ExternalID {
				return entities.ErrDuplicateExternalID
			}
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	stored := *t
	stored.Utterances = append([]entities.TranscriptUtterance(nil), t.Utterances...)
	r.transcripts[t.ID] = &stored
	r.order = append(r.order, t.ID)
	return nil
}

func (r *TranscriptRepository) FindByID(_ context.Context, id uuid.UUID) (*entities.Transcript, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, ok := r.transcripts[id]
	if !ok {
		return nil, entities.ErrTranscriptNotFound
	}
	out := *t
	out.Utterances = append([]entities.TranscriptUtterance(nil), t.Utterances...)
	sort.SliceStable(out.Utterances, func(i, j int) bool {
		return out.Utterances[i].Position < out.Utterances[j].Position
	})
	return &out, nil
}

func (r *TranscriptRepository) FindByExternalID(_ context.Context, externalID string) (*entities.Transcript, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, t := range r.transcripts {
		if t.ExternalID != nil && *t.ExternalID == externalID {
			out := *t
			out.Utterances = nil
			return &out, nil
		}
	}
	return nil, entities.ErrTranscriptNotFound
}

func (r *TranscriptRepository) List(_ context.Context, filters repositories.TranscriptFilters) ([]*entities.Transcript, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	var matched []*entities.Transcript
	for i := len(r.order) - 1; i >= 0; i-- {
		t, ok := r.transcripts[r.order[i]]
		if !ok {
			continue
		}
		if filters.MeetingID != nil && t.MeetingID != *filters.MeetingID {
			continue
		}
		if filters.CreatedBy != nil && t.CreatedBy != *filters.CreatedBy {
			continue
		}
		if filters.Source != nil && t.Source != *filters.Source {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(filters.Search)) {
			continue
		}
		out := *t
		out.Utterances = nil
		matched = append(matched, &out)
	}

	total := int64(len(matched))
	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filters.Offset:]
		}
	}
	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

func (r *TranscriptRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.transcripts[id]; !ok {
		return entities.ErrTranscriptNotFound
	}
	delete(r.transcripts, id)
	return nil
}

// Len returns the number of stored transcripts
func (r *TranscriptRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transcripts)
}

// SavedSearchRepository is an in-memory repositories.SavedSearchRepository
type SavedSearchRepository struct {
	mu       sync.Mutex
	searches []*entities.SavedSearch
}

// NewSavedSearchRepository creates an empty repository
func NewSavedSearchRepository() *SavedSearchRepository {
	return &SavedSearchRepository{}
}

var _ repositories.SavedSearchRepository = (*SavedSearchRepository)(nil)

func (r *SavedSearchRepository) Create(_ context.Context, s *entities.SavedSearch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *s
	r.searches = append(r.searches, &stored)
	return nil
}

func (r *SavedSearchRepository) FindByID(_ context.Context, id uuid.UUID) (*entities.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.searches {
		if s.ID == id {
			out := *s
			return &out, nil
		}
	}
	return nil, entities.ErrSavedSearchNotFound
}

func (r *SavedSearchRepository) ListByUser(_ context.Context, userID uuid.UUID, transcriptID *uuid.UUID) ([]*entities.SavedSearch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entities.SavedSearch{}
	for i := len(r.searches) - 1; i >= 0; i-- {
		s := r.searches[i]
		if s.UserID != userID {
			continue
		}
		if transcriptID != nil && s.TranscriptID != *transcriptID {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (r *SavedSearchRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.searches {
		if s.ID == id {
			r.searches = append(r.searches[:i], r.searches[i+1:]...)
			return nil
		}
	}
	return entities.ErrSavedSearchNotFound
}
