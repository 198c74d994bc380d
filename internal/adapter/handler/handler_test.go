package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/transcript-search/errors"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/cache"
	"github.com/johnquangdev/transcript-search/internal/usecase/fakes"
	searchUsecase "github.com/johnquangdev/transcript-search/internal/usecase/search"
	transcriptUsecase "github.com/johnquangdev/transcript-search/internal/usecase/transcript"
	"github.com/johnquangdev/transcript-search/pkg/config"
	"github.com/johnquangdev/transcript-search/pkg/jwt"
	"github.com/johnquangdev/transcript-search/pkg/validator"
	"github.com/johnquangdev/transcript-search/pkg/webhook"
)

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Upload(_ context.Context, objectName string, data []byte, _ string) error {
	m.objects[objectName] = data
	return nil
}

func (m *memStorage) PresignedURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return "https://files.test/" + objectName, nil
}

type testServer struct {
	e       *echo.Echo
	tokens  *jwt.Manager
	repo    *fakes.TranscriptRepository
	storage *memStorage
}

func newTestServer(t *testing.T, webhookSecret string) *testServer {
	t.Helper()

	repo := fakes.NewTranscriptRepository()
	history := cache.NewMemoryHistoryStore(5, time.Hour)
	t.Cleanup(history.Close)
	storage := &memStorage{objects: map[string][]byte{}}
	tokens := jwt.NewManager("test-secret", time.Hour, "transcript-search")

	transcripts := transcriptUsecase.NewTranscriptService(repo, nil, webhookSecret, nil)
	searches := searchUsecase.NewSearchService(transcripts, fakes.NewSavedSearchRepository(), history, storage,
		searchUsecase.Config{DefaultMinConfidence: 0.7}, nil)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(nil)
	NewRouter(
		&config.Config{Server: config.ServerConfig{Environment: "test"}},
		tokens,
		NewTranscriptHandler(transcripts, nil),
		NewSearchHandler(searches, nil),
		NewWebhookHandler(transcripts, nil),
	).Setup(e)

	return &testServer{e: e, tokens: tokens, repo: repo, storage: storage}
}

func (s *testServer) token(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := s.tokens.GenerateAccessToken(userID, "user@example.com", "user")
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Info    string            `json:"info"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data %q: %v", env.Data, err)
		}
	}
	return env
}

func createTranscript(t *testing.T, s *testServer, token string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/v1/transcripts", token, map[string]interface{}{
		"meeting_id": uuid.NewString(),
		"title":      "Quarterly sync",
		"segments": []map[string]interface{}{
			{"start_time": 0, "end_time": 4, "text": "Welcome everyone to the quarterly sync", "speaker": "Alice"},
			{"start_time": 4, "end_time": 9, "text": "the budget review is critical", "speaker": "Bob"},
			{"start_time": 9, "end_time": 15, "text": "we discussed the Q2 roadmap timeline", "speaker": "Alice"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID       string `json:"id"`
		Segments []struct {
			Index int `json:"index"`
		} `json:"segments"`
	}
	decode(t, rec, &created)
	if len(created.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(created.Segments))
	}
	return created.ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")
	rec := s.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, "")

	tests := []struct {
		name  string
		token string
		code  errors.ErrorCode
	}{
		{"missing", "", errors.ErrorCode_UNAUTHENTICATED},
		{"garbage", "not-a-jwt", errors.ErrorCode_AUTH_INVALID_TOKEN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/v1/transcripts", tt.token, nil)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if env := decode(t, rec, nil); env.Code != int(tt.code) {
				t.Errorf("code = %d, want %d", env.Code, tt.code)
			}
		})
	}
}

func TestCreateTranscriptValidation(t *testing.T) {
	s := newTestServer(t, "")
	token := s.token(t, uuid.New())

	rec := s.do(t, http.MethodPost, "/v1/transcripts", token, map[string]interface{}{
		"meeting_id": uuid.NewString(),
		"segments": []map[string]interface{}{
			{"start_time": 5, "end_time": 2, "text": "backwards"},
		},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decode(t, rec, nil)
	if env.Code != int(errors.ErrorCode_INVALID_ARGUMENT) {
		t.Errorf("code = %d", env.Code)
	}
	if env.Details["end_time"] != "gtfield" {
		t.Errorf("details = %v, want end_time=gtfield", env.Details)
	}
}

func TestSearchFlow(t *testing.T) {
	s := newTestServer(t, "")
	token := s.token(t, uuid.New())
	id := createTranscript(t, s, token)

	rec := s.do(t, http.MethodPost, "/v1/transcripts/"+id+"/search", token, map[string]interface{}{
		"query": "budget review",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Total   int `json:"total"`
		Results []struct {
			SegmentIndex   int     `json:"segment_index"`
			RelevanceScore float64 `json:"relevance_score"`
			Timestamp      string  `json:"timestamp"`
			Highlights     []struct {
				Text        string `json:"text"`
				Highlighted bool   `json:"highlighted"`
			} `json:"highlights"`
		} `json:"results"`
	}
	decode(t, rec, &out)
	if out.Total != 1 || len(out.Results) != 1 {
		t.Fatalf("results = %+v, want 1", out)
	}
	r := out.Results[0]
	if r.SegmentIndex != 1 || r.RelevanceScore != 1 || r.Timestamp != "0:04" {
		t.Errorf("result = %+v", r)
	}
	if len(r.Highlights) != 3 || !r.Highlights[1].Highlighted || r.Highlights[1].Text != "budget review" {
		t.Errorf("highlights = %+v", r.Highlights)
	}

	rec = s.do(t, http.MethodGet, "/v1/searches/recent", token, nil)
	var recent struct {
		Queries []string `json:"queries"`
	}
	decode(t, rec, &recent)
	if len(recent.Queries) != 1 || recent.Queries[0] != "budget review" {
		t.Errorf("recent = %v", recent.Queries)
	}

	rec = s.do(t, http.MethodGet, "/v1/transcripts/"+id+"/speakers", token, nil)
	var speakers struct {
		Speakers []string `json:"speakers"`
	}
	decode(t, rec, &speakers)
	if len(speakers.Speakers) != 2 || speakers.Speakers[0] != "Alice" {
		t.Errorf("speakers = %v", speakers.Speakers)
	}
}

func TestSearchSpeakerFilter(t *testing.T) {
	s := newTestServer(t, "")
	token := s.token(t, uuid.New())
	id := createTranscript(t, s, token)

	rec := s.do(t, http.MethodPost, "/v1/transcripts/"+id+"/search", token, map[string]interface{}{
		"query":    "the",
		"speakers": []string{"Alice"},
	})
	var out struct {
		Results []struct {
			SegmentIndex int `json:"segment_index"`
		} `json:"results"`
	}
	decode(t, rec, &out)
	for _, r := range out.Results {
		if r.SegmentIndex == 1 {
			t.Errorf("Bob's segment returned under an Alice filter")
		}
	}
	if len(out.Results) != 2 {
		t.Errorf("results = %d, want 2", len(out.Results))
	}
}

func TestSearchTimeRange(t *testing.T) {
	s := newTestServer(t, "")
	token := s.token(t, uuid.New())
	id := createTranscript(t, s, token)

	tests := []struct {
		name      string
		query     string
		timeRange map[string]float64
		want      []int
	}{
		{"start only", "budget review", map[string]float64{"start": 2}, []int{1}},
		{"end only", "quarterly", map[string]float64{"end": 5}, []int{0}},
		{"both bounds", "budget", map[string]float64{"start": 4, "end": 9}, []int{1}},
		{"start past segment", "budget review", map[string]float64{"start": 5}, nil},
		{"empty range", "roadmap", map[string]float64{}, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/v1/transcripts/"+id+"/search", token, map[string]interface{}{
				"query":      tt.query,
				"time_range": tt.timeRange,
			})
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var out struct {
				Results []struct {
					SegmentIndex   int     `json:"segment_index"`
					RelevanceScore float64 `json:"relevance_score"`
				} `json:"results"`
			}
			decode(t, rec, &out)
			var got []int
			for _, r := range out.Results {
				got = append(got, r.SegmentIndex)
				if r.RelevanceScore != 1 {
					t.Errorf("segment %d score = %v, want 1", r.SegmentIndex, r.RelevanceScore)
				}
			}
			if len(got) != len(tt.want) || (len(got) > 0 && got[0] != tt.want[0]) {
				t.Errorf("segments = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSavedSearchOpenTimeRange(t *testing.T) {
	s := newTestServer(t, "")
	token := s.token(t, uuid.New())
	id := createTranscript(t, s, token)

	rec := s.do(t, http.MethodPost, "/v1/searches", token, map[string]interface{}{
		"transcript_id": id,
		"name":          "Late budget",
		"query":         "budget",
		"time_range":    map[string]float64{"start": 2},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}
	var saved struct {
		Filter struct {
			TimeRange map[string]float64 `json:"time_range"`
		} `json:"filter"`
	}
	decode(t, rec, &saved)
	if saved.Filter.TimeRange["start"] != 2 {
		t.Errorf("time_range = %v", saved.Filter.TimeRange)
	}
	if _, ok := saved.Filter.TimeRange["end"]; ok {
		t.Errorf("open range reported an end: %v", saved.Filter.TimeRange)
	}
}

func TestClearRecentSearches(t *testing.T) {
	s := newTestServer(t, "")
	token := s.token(t, uuid.New())
	id := createTranscript(t, s, token)

	s.do(t, http.MethodPost, "/v1/transcripts/"+id+"/search", token, map[string]string{"query": "budget"})

	rec := s.do(t, http.MethodDelete, "/v1/searches/recent", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/v1/searches/recent", token, nil)
	var recent struct {
		Queries []string `json:"queries"`
	}
	decode(t, rec, &recent)
	if len(recent.Queries) != 0 {
		t.Errorf("recent after clear = %v", recent.Queries)
	}
}

func TestRepositoryFailureHidesCause(t *testing.T) {
	s := newTestServer(t, "")
	token := s.token(t, uuid.New())
	s.repo.Err = stdErrors.New(`pq: relation "transcripts" does not exist`)

	rec := s.do(t, http.MethodGet, "/v1/transcripts/"+uuid.NewString(), token, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	env := decode(t, rec, nil)
	if env.Code != int(errors.ErrorCode_DB_QUERY_FAILED) {
		t.Errorf("code = %d, want %d", env.Code, errors.ErrorCode_DB_QUERY_FAILED)
	}
	if env.Info != "" {
		t.Errorf("info = %q, want empty", env.Info)
	}
	if env.Details["query"] != "get transcript" {
		t.Errorf("details = %v", env.Details)
	}
}

func TestSearchErrors(t *testing.T) {
	s := newTestServer(t, "")
	token := s.token(t, uuid.New())
	id := createTranscript(t, s, token)

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		code   errors.ErrorCode
	}{
		{"unknown transcript", "/v1/transcripts/" + uuid.NewString() + "/search", map[string]string{"query": "x"}, http.StatusNotFound, errors.ErrorCode_TRANSCRIPT_NOT_FOUND},
		{"bad id", "/v1/transcripts/nope/search", map[string]string{"query": "x"}, http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT},
		{"confidence out of range", "/v1/transcripts/" + id + "/search", map[string]interface{}{"query": "x", "min_confidence": 2}, http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT},
		{"bad export format", "/v1/transcripts/" + id + "/search/export", map[string]string{"query": "x", "format": "xml"}, http.StatusBadRequest, errors.ErrorCode_EXPORT_FORMAT_INVALID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, tt.path, token, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if env := decode(t, rec, nil); env.Code != int(tt.code) {
				t.Errorf("code = %d, want %d", env.Code, tt.code)
			}
		})
	}
}

func TestExport(t *testing.T) {
	s := newTestServer(t, "")
	token := s.token(t, uuid.New())
	id := createTranscript(t, s, token)

	rec := s.do(t, http.MethodPost, "/v1/transcripts/"+id+"/search/export", token, map[string]string{
		"query":  "budget",
		"format": "csv",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		URL   string `json:"url"`
		Count int    `json:"count"`
	}
	decode(t, rec, &out)
	if out.Count != 1 || out.URL == "" {
		t.Errorf("export = %+v", out)
	}
	if len(s.storage.objects) != 1 {
		t.Errorf("uploaded objects = %d, want 1", len(s.storage.objects))
	}
}

func TestSavedSearches(t *testing.T) {
	s := newTestServer(t, "")
	owner, other := uuid.New(), uuid.New()
	token := s.token(t, owner)
	id := createTranscript(t, s, token)

	rec := s.do(t, http.MethodPost, "/v1/searches", token, map[string]interface{}{
		"transcript_id":  id,
		"name":           "Budget",
		"query":          "budget",
		"min_confidence": 0.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}
	var saved struct {
		ID string `json:"id"`
	}
	decode(t, rec, &saved)

	rec = s.do(t, http.MethodGet, "/v1/searches?transcript_id="+id, token, nil)
	var list struct {
		Searches []struct {
			Name string `json:"name"`
		} `json:"searches"`
	}
	decode(t, rec, &list)
	if len(list.Searches) != 1 || list.Searches[0].Name != "Budget" {
		t.Errorf("list = %+v", list)
	}

	rec = s.do(t, http.MethodDelete, "/v1/searches/"+saved.ID, s.token(t, other), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("delete by other status = %d, want 403", rec.Code)
	}
	rec = s.do(t, http.MethodDelete, "/v1/searches/"+saved.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestTranscriptListAndDelete(t *testing.T) {
	s := newTestServer(t, "")
	owner := uuid.New()
	token := s.token(t, owner)
	id := createTranscript(t, s, token)
	createTranscript(t, s, s.token(t, uuid.New()))

	rec := s.do(t, http.MethodGet, "/v1/transcripts?mine=true", token, nil)
	var list struct {
		Transcripts []struct {
			ID string `json:"id"`
		} `json:"transcripts"`
		Pagination struct {
			TotalItems int64 `json:"total_items"`
		} `json:"pagination"`
	}
	decode(t, rec, &list)
	if len(list.Transcripts) != 1 || list.Transcripts[0].ID != id || list.Pagination.TotalItems != 1 {
		t.Errorf("mine = %+v", list)
	}

	rec = s.do(t, http.MethodDelete, "/v1/transcripts/"+id, s.token(t, uuid.New()), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("delete by other status = %d, want 403", rec.Code)
	}
	rec = s.do(t, http.MethodDelete, "/v1/transcripts/"+id, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec = s.do(t, http.MethodGet, "/v1/transcripts/"+id, token, nil); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestWebhookSignature(t *testing.T) {
	s := newTestServer(t, "hook-secret")
	body := []byte(`{"transcript_id":"tx_1","status":"processing"}`)
	path := "/v1/webhooks/assemblyai?meeting_id=" + uuid.NewString()

	send := func(signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if signature != "" {
			req.Header.Set(webhook.SignatureHeader, signature)
		}
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		return rec
	}

	if rec := send("deadbeef"); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad signature status = %d, want 401", rec.Code)
	}
	rec := send(webhook.Sign("hook-secret", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("signed status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out map[string]string
	decode(t, rec, &out)
	if out["status"] != "ignored" {
		t.Errorf("status = %q, want ignored", out["status"])
	}
	if s.repo.Len() != 0 {
		t.Errorf("repo has %d transcripts, want 0", s.repo.Len())
	}
}

func TestWebhookRequiresMeeting(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/assemblyai", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
