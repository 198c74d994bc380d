package search

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	usecaseErrors "github.com/johnquangdev/transcript-search/internal/usecase/errors"
	"github.com/johnquangdev/transcript-search/pkg/search"
)

var csvHeader = []string{"segment_index", "start_time", "end_time", "timestamp", "speaker", "relevance_score", "text"}

// ParseExportFormat validates a requested export format
func ParseExportFormat(format string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(format))); f {
	case ExportFormatJSON, ExportFormatCSV:
		return f, nil
	case "":
		return ExportFormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", usecaseErrors.ErrUnsupportedFormat, format)
	}
}

// exportDocument is the JSON export layout
type exportDocument struct {
	TranscriptID uuid.UUID       `json:"transcript_id"`
	Query        string          `json:"query"`
	Filter       search.Filter   `json:"filter"`
	Total        int             `json:"total"`
	ExportedAt   time.Time       `json:"exported_at"`
	Results      []search.Result `json:"results"`
}

// Export runs a search and uploads the results
func (s *SearchService) Export(ctx context.Context, input ExportInput) (*ExportOutput, error) {
	format, err := ParseExportFormat(string(input.Format))
	if err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", usecaseErrors.ErrExportFailed)
	}

	out, err := s.Search(ctx, input.SearchInput)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var (
		data        []byte
		contentType string
	)
	switch format {
	case ExportFormatCSV:
		data, err = encodeCSV(out.Results)
		contentType = "text/csv"
	default:
		data, err = json.MarshalIndent(exportDocument{
			TranscriptID: input.TranscriptID,
			Query:        out.Query,
			Filter:       out.Filter,
			Total:        out.Total,
			ExportedAt:   now,
			Results:      out.Results,
		}, "", "  ")
		contentType = "application/json"
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrExportFailed, err)
	}

	objectName := fmt.Sprintf("exports/%s/%s/%s-%s.%s",
		input.UserID, input.TranscriptID, now.Format("20060102T150405Z"), uuid.NewString()[:8], format)

	if err := s.storage.Upload(ctx, objectName, data, contentType); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrExportFailed, err)
	}
	url, err := s.storage.PresignedURL(ctx, objectName, s.cfg.ExportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrExportFailed, err)
	}

	s.logger.Info("📦 Search results exported",
		zap.String("transcript_id", input.TranscriptID.String()),
		zap.String("object", objectName),
		zap.String("format", string(format)),
		zap.Int("results", len(out.Results)),
	)

	return &ExportOutput{
		URL:        url,
		ObjectName: objectName,
		Format:     format,
		Count:      len(out.Results),
		ExpiresAt:  now.Add(s.cfg.ExportURLExpiry),
	}, nil
}

func encodeCSV(results []search.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range results {
		record := []string{
			strconv.Itoa(r.SegmentIndex),
			strconv.FormatFloat(r.StartTime, 'f', 3, 64),
			strconv.FormatFloat(r.EndTime, 'f', 3, 64),
			search.FormatTimestamp(r.StartTime),
			r.Speaker,
			strconv.FormatFloat(r.RelevanceScore, 'f', 4, 64),
			r.Text,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
