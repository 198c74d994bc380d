package entities

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm/schema"

	"github.com/johnquangdev/transcript-search/pkg/search"
)

func TestSetSegments(t *testing.T) {
	tr := NewTranscript(uuid.New(), "Weekly sync", TranscriptSourceManual)
	segments := []search.Segment{
		{StartTime: 0, EndTime: 4, Text: "welcome everyone", Speaker: "Alice"},
		{StartTime: 4, EndTime: 9.5, Text: "budget review", Speaker: "Bob"},
		{StartTime: 9.5, EndTime: 12, Text: "thanks", Speaker: "Alice"},
	}

	if err := tr.SetSegments(segments, []float64{0.9, 0.8}); err != nil {
		t.Fatalf("SetSegments() error = %v", err)
	}

	if tr.Text != "welcome everyone budget review thanks" {
		t.Errorf("Text = %q", tr.Text)
	}
	if tr.SpeakerCount != 2 {
		t.Errorf("SpeakerCount = %d, want 2", tr.SpeakerCount)
	}
	if tr.DurationSeconds != 12 {
		t.Errorf("DurationSeconds = %v, want 12", tr.DurationSeconds)
	}
	for i, u := range tr.Utterances {
		if u.Position != i || u.TranscriptID != tr.ID {
			t.Errorf("utterance %d = %+v", i, u)
		}
	}
	if tr.Utterances[1].Confidence != 0.8 || tr.Utterances[2].Confidence != 0 {
		t.Errorf("confidences = %v, %v", tr.Utterances[1].Confidence, tr.Utterances[2].Confidence)
	}
	if got := tr.Segments(); !reflect.DeepEqual(got, segments) {
		t.Errorf("Segments() = %+v, want %+v", got, segments)
	}
}

func TestSetSegmentsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		segment search.Segment
		want    error
	}{
		{"negative start", search.Segment{StartTime: -1, EndTime: 2, Text: "x"}, ErrInvalidSegmentTiming},
		{"zero length", search.Segment{StartTime: 2, EndTime: 2, Text: "x"}, ErrInvalidSegmentTiming},
		{"inverted", search.Segment{StartTime: 3, EndTime: 2, Text: "x"}, ErrInvalidSegmentTiming},
		{"blank text", search.Segment{StartTime: 0, EndTime: 2, Text: "  "}, ErrEmptySegmentText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranscript(uuid.New(), "", TranscriptSourceManual)
			err := tr.SetSegments([]search.Segment{{StartTime: 0, EndTime: 1, Text: "ok"}, tt.segment}, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("SetSegments() error = %v, want %v", err, tt.want)
			}
			if len(tr.Utterances) != 0 {
				t.Errorf("utterances set on failure: %v", tr.Utterances)
			}
		})
	}
}

func TestSegmentsOrdersByPosition(t *testing.T) {
	tr := &Transcript{Utterances: []TranscriptUtterance{
		{Position: 2, Text: "c", StartTime: 2, EndTime: 3},
		{Position: 0, Text: "a", StartTime: 0, EndTime: 1},
		{Position: 1, Text: "b", StartTime: 1, EndTime: 2},
	}}

	var texts []string
	for _, s := range tr.Segments() {
		texts = append(texts, s.Text)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(texts, want) {
		t.Errorf("Segments() order = %v, want %v", texts, want)
	}
	if tr.Utterances[0].Position != 2 {
		t.Error("Segments() reordered the stored utterances")
	}
}

func TestUtterancePositionIndexIsUnique(t *testing.T) {
	s, err := schema.Parse(&TranscriptUtterance{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatal(err)
	}

	for _, idx := range s.ParseIndexes() {
		if idx.Name != "idx_utterance_position" {
			continue
		}
		if idx.Class != "UNIQUE" {
			t.Errorf("Class = %q, want UNIQUE", idx.Class)
		}
		var columns []string
		for _, f := range idx.Fields {
			columns = append(columns, f.DBName)
		}
		if want := []string{"transcript_id", "position"}; !reflect.DeepEqual(columns, want) {
			t.Errorf("columns = %v, want %v", columns, want)
		}
		return
	}
	t.Fatal("idx_utterance_position not declared")
}
