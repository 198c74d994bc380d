package assemblyai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-search/pkg/search"
)

// ErrNotCompleted is returned when a transcript is still queued, processing
// or has failed on the provider side.
var ErrNotCompleted = errors.New("transcript is not completed")

// Transcript is a completed provider transcript mapped to search segments
type Transcript struct {
	ExternalID  string
	Status      string
	Text        string
	Segments    []search.Segment
	Confidences []float64
	Confidence  float64
}

// StatusError carries the provider status of a transcript that cannot be imported
type StatusError struct {
	ExternalID string
	Status     string
	Reason     string
}

func (e *StatusError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("transcript %s is %s: %s", e.ExternalID, e.Status, e.Reason)
	}
	return fmt.Sprintf("transcript %s is %s", e.ExternalID, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrNotCompleted }

// Client fetches transcripts through the official AssemblyAI SDK
type Client struct {
	sdk            *aai.Client
	logger         *zap.Logger
	maxElapsedTime time.Duration
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	baseURL        string
	httpClient     *http.Client
	maxElapsedTime time.Duration
}

// WithBaseURL points the client at a different API host
func WithBaseURL(url string) Option {
	return func(o *clientOptions) { o.baseURL = url }
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithMaxElapsedTime bounds how long Fetch keeps retrying
func WithMaxElapsedTime(d time.Duration) Option {
	return func(o *clientOptions) { o.maxElapsedTime = d }
}

// NewClient creates an AssemblyAI client
func NewClient(apiKey string, logger *zap.Logger, opts ...Option) *Client {
	o := clientOptions{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		maxElapsedTime: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	sdkOpts := []aai.ClientOption{
		aai.WithAPIKey(apiKey),
		aai.WithHTTPClient(o.httpClient),
	}
	if o.baseURL != "" {
		sdkOpts = append(sdkOpts, aai.WithBaseURL(o.baseURL))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		sdk:            aai.NewClientWithOptions(sdkOpts...),
		logger:         logger,
		maxElapsedTime: o.maxElapsedTime,
	}
}

// Fetch retrieves a completed transcript. Transient failures (network
// errors, 5xx, 429) are retried with exponential backoff.
func (c *Client) Fetch(ctx context.Context, externalID string) (*Transcript, error) {
	var transcript aai.Transcript

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxElapsedTime

	operation := func() error {
		t, err := c.sdk.Transcripts.Get(ctx, externalID)
		if err != nil {
			if status, ok := apiStatus(err); ok && status < 500 && status != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}
		transcript = t
		return nil
	}

	notify := func(err error, next time.Duration) {
		c.logger.Warn("⚠️ AssemblyAI fetch failed, retrying",
			zap.String("external_id", externalID),
			zap.Duration("next", next),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(bo, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to fetch transcript %s: %w", externalID, err)
	}

	return FromSDK(externalID, transcript)
}

// apiStatus extracts the HTTP status of an SDK API error
func apiStatus(err error) (int, bool) {
	var apiErr aai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	var apiErrPtr *aai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Status, true
	}
	return 0, false
}

// FromSDK maps an SDK transcript into search segments. Utterances without
// text or with a non-positive duration are dropped.
func FromSDK(externalID string, t aai.Transcript) (*Transcript, error) {
	switch t.Status {
	case aai.TranscriptStatusCompleted:
	case aai.TranscriptStatusError:
		reason := ""
		if t.Error != nil {
			reason = *t.Error
		}
		return nil, &StatusError{ExternalID: externalID, Status: string(t.Status), Reason: reason}
	default:
		return nil, &StatusError{ExternalID: externalID, Status: string(t.Status)}
	}

	out := &Transcript{
		ExternalID:  externalID,
		Status:      string(t.Status),
		Segments:    make([]search.Segment, 0, len(t.Utterances)),
		Confidences: make([]float64, 0, len(t.Utterances)),
	}
	if t.Text != nil {
		out.Text = *t.Text
	}
	if t.Confidence != nil {
		out.Confidence = *t.Confidence
	}

	for _, utt := range t.Utterances {
		var seg search.Segment
		if utt.Text != nil {
			seg.Text = strings.TrimSpace(*utt.Text)
		}
		if utt.Speaker != nil {
			seg.Speaker = *utt.Speaker
		}
		if utt.Start != nil {
			seg.StartTime = float64(*utt.Start) / 1000.0 // ms to seconds
		}
		if utt.End != nil {
			seg.EndTime = float64(*utt.End) / 1000.0
		}
		if seg.Text == "" || seg.StartTime < 0 || seg.EndTime <= seg.StartTime {
			continue
		}

		confidence := 0.0
		if utt.Confidence != nil {
			confidence = *utt.Confidence
		}
		out.Segments = append(out.Segments, seg)
		out.Confidences = append(out.Confidences, confidence)
	}

	return out, nil
}
