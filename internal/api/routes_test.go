package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickprogramme/shadowscribe/internal/store"
	"github.com/patrickprogramme/shadowscribe/internal/transcript"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

type fakeStore struct {
	videos   map[string][]model.Sentence
	failList bool
	failPing bool
}

func (f *fakeStore) Transcript(_ context.Context, id string) (store.Video, []model.Sentence, error) {
	s, ok := f.videos[id]
	if !ok {
		return store.Video{}, nil, store.ErrNotFound
	}
	return store.Video{ID: id, Sentences: len(s)}, s, nil
}

func (f *fakeStore) ListVideos(context.Context) ([]store.Video, error) {
	if f.failList {
		return nil, errors.New("boom")
	}
	out := []store.Video{}
	for id, s := range f.videos {
		out = append(out, store.Video{ID: id, Sentences: len(s)})
	}
	return out, nil
}

func (f *fakeStore) DeleteVideo(_ context.Context, id string) error {
	if _, ok := f.videos[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeStore) Ping(context.Context) error {
	if f.failPing {
		return errors.New("down")
	}
	return nil
}

func counterID() transcript.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testConfig(st TranscriptStore) ServerConfig {
	seg := transcript.DefaultOptions()
	seg.NewID = counterID()
	reg := transcript.DefaultRegroupOptions()
	reg.NewID = counterID()
	return ServerConfig{
		Store:          st,
		SegmentOptions: seg,
		RegroupOptions: reg,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		StartTime:      time.Now(),
		Version:        "test",
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeJSONBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("invalid json body %q: %v", rr.Body.String(), err)
	}
}

func makeSentences(n int) []model.Sentence {
	out := make([]model.Sentence, n)
	for i := range out {
		out[i] = model.Sentence{ID: fmt.Sprintf("s%d", i), Text: fmt.Sprintf("Sentence %d.", i), StartTime: float64(i), EndTime: float64(i) + 1, Highlights: []model.Highlight{}}
	}
	return out
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name  string
		store TranscriptStore
		want  string
	}{
		{"no cache", nil, "disabled"},
		{"cache ok", &fakeStore{}, "ok"},
		{"cache down", &fakeStore{failPing: true}, "error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, NewRouter(testConfig(tc.store)), http.MethodGet, "/health", "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			var resp HealthResponse
			decodeJSONBody(t, rr, &resp)
			if resp.Status != "ok" || resp.Cache != tc.want {
				t.Errorf("resp = %+v; want cache %s", resp, tc.want)
			}
			if rr.Header().Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID header")
			}
		})
	}
}

func TestVideoID(t *testing.T) {
	h := NewRouter(testConfig(nil))

	rr := do(t, h, http.MethodPost, "/video-id", `{"url":"https://youtu.be/abc123?t=10"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	var resp VideoIDResponse
	decodeJSONBody(t, rr, &resp)
	if resp.VideoID != "abc123" || resp.WatchURL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("resp = %+v", resp)
	}

	rr = do(t, h, http.MethodPost, "/video-id", `{"url":"https://example.com"}`)
	var e ErrorResponse
	decodeJSONBody(t, rr, &e)
	if rr.Code != http.StatusBadRequest || e.Code != "INVALID_URL" {
		t.Errorf("invalid url: status %d, %+v", rr.Code, e)
	}

	rr = do(t, h, http.MethodPost, "/video-id", `not json`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad body: status %d", rr.Code)
	}
}

func TestSegment(t *testing.T) {
	h := NewRouter(testConfig(nil))
	body := `{"fragments":[
		{"text":"Hello there.","start":0,"duration":1},
		{"text":"how are","start":1,"duration":1},
		{"text":"you?","start":2,"duration":1}
	],"mode":"total"}`

	rr := do(t, h, http.MethodPost, "/segment", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	var resp UnitsResponse
	decodeJSONBody(t, rr, &resp)
	if resp.Mode != model.GroupTotal || resp.Sentences != 2 || len(resp.Units) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Units[0].Text != "Hello there. how are you?" || resp.Units[0].EndTime != 3 {
		t.Errorf("unit = %+v", resp.Units[0])
	}

	rr = do(t, h, http.MethodPost, "/segment", `{"fragments":[]}`)
	decodeJSONBody(t, rr, &resp)
	if rr.Code != http.StatusOK || resp.Mode != model.GroupSentence || resp.Units == nil || len(resp.Units) != 0 {
		t.Errorf("empty input: status %d, %+v", rr.Code, resp)
	}

	rr = do(t, h, http.MethodPost, "/segment", `{"fragments":[],"mode":"chapter"}`)
	var e ErrorResponse
	decodeJSONBody(t, rr, &e)
	if rr.Code != http.StatusBadRequest || e.Code != "INVALID_MODE" {
		t.Errorf("unknown mode: status %d, %+v", rr.Code, e)
	}
}

func TestRegroup(t *testing.T) {
	h := NewRouter(testConfig(nil))
	b, _ := json.Marshal(RegroupRequest{Sentences: makeSentences(7), Mode: "paragraph"})

	rr := do(t, h, http.MethodPost, "/regroup", string(b))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	var resp UnitsResponse
	decodeJSONBody(t, rr, &resp)
	if len(resp.Units) != 2 || resp.Sentences != 7 {
		t.Errorf("resp = %+v; want 2 paragraphs", resp)
	}
}

func TestVideos(t *testing.T) {
	st := &fakeStore{videos: map[string][]model.Sentence{"vid1": makeSentences(3)}}
	h := NewRouter(testConfig(st))

	rr := do(t, h, http.MethodGet, "/videos", "")
	var list VideosResponse
	decodeJSONBody(t, rr, &list)
	if rr.Code != http.StatusOK || len(list.Videos) != 1 || list.Videos[0].ID != "vid1" {
		t.Errorf("list: status %d, %+v", rr.Code, list)
	}

	rr = do(t, h, http.MethodGet, "/videos/vid1/units?mode=total", "")
	var units VideoUnitsResponse
	decodeJSONBody(t, rr, &units)
	if rr.Code != http.StatusOK || units.Video.ID != "vid1" || len(units.Units) != 1 || units.Sentences != 3 {
		t.Errorf("units: status %d, %+v", rr.Code, units)
	}

	rr = do(t, h, http.MethodGet, "/videos/missing/units", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing video: status %d", rr.Code)
	}

	st.failList = true
	rr = do(t, h, http.MethodGet, "/videos", "")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("store failure: status %d", rr.Code)
	}
}

func TestVideos_CacheDisabled(t *testing.T) {
	h := NewRouter(testConfig(nil))
	for _, path := range []string{"/videos", "/videos/x/units"} {
		rr := do(t, h, http.MethodGet, path, "")
		if rr.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status %d; want 503", path, rr.Code)
		}
	}
}

func TestMerge(t *testing.T) {
	h := NewRouter(testConfig(nil))

	body := `{"a":{"id":"a","text":"Hello there.","startTime":0,"endTime":1,"highlights":[]},
		"b":{"id":"b","text":"How are you?","startTime":1,"endTime":2,"highlights":[{"id":"h","start":0,"end":3}]}}`
	rr := do(t, h, http.MethodPost, "/merge", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	var resp SentencesResponse
	decodeJSONBody(t, rr, &resp)
	if len(resp.Sentences) != 1 {
		t.Fatalf("got %d sentences, want 1", len(resp.Sentences))
	}
	m := resp.Sentences[0]
	if m.ID != "id-1" || m.Text != "Hello there. How are you?" || m.StartTime != 0 || m.EndTime != 2 {
		t.Errorf("merged = %+v", m)
	}
	if len(m.Highlights) != 1 || m.Highlights[0].Start != 13 || m.Highlights[0].End != 16 {
		t.Errorf("highlights = %+v", m.Highlights)
	}
}

func TestMerge_BadRequest(t *testing.T) {
	h := NewRouter(testConfig(nil))
	for _, body := range []string{`{`, `{"a":{"text":"x"},"b":{"text":"  "}}`} {
		rr := do(t, h, http.MethodPost, "/merge", body)
		var resp ErrorResponse
		decodeJSONBody(t, rr, &resp)
		if rr.Code != http.StatusBadRequest || resp.Code != "BAD_REQUEST" {
			t.Errorf("body %q: status %d, %+v", body, rr.Code, resp)
		}
	}
}

func TestSplit(t *testing.T) {
	h := NewRouter(testConfig(nil))

	body := `{"sentence":{"id":"s","text":"First part second part","startTime":10,"endTime":12.2,"highlights":[]},"at":10}`
	rr := do(t, h, http.MethodPost, "/split", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	var resp SentencesResponse
	decodeJSONBody(t, rr, &resp)
	if len(resp.Sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(resp.Sentences))
	}
	first, second := resp.Sentences[0], resp.Sentences[1]
	if first.Text != "First part" || second.Text != "second part" {
		t.Errorf("texts = %q / %q", first.Text, second.Text)
	}
	if first.ID != "id-1" || second.ID != "id-2" || first.EndTime != 11 || second.StartTime != 11 {
		t.Errorf("split = %+v / %+v", first, second)
	}
}

func TestSplit_InvalidOffset(t *testing.T) {
	h := NewRouter(testConfig(nil))
	tests := []struct {
		name string
		body string
		code string
	}{
		{"offset zero", `{"sentence":{"text":"Hello world"},"at":0}`, "INVALID_SPLIT"},
		{"offset past end", `{"sentence":{"text":"Hello world"},"at":11}`, "INVALID_SPLIT"},
		{"blank half", `{"sentence":{"text":"Hello    "},"at":6}`, "INVALID_SPLIT"},
		{"bad json", `nope`, "BAD_REQUEST"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/split", tc.body)
			var resp ErrorResponse
			decodeJSONBody(t, rr, &resp)
			if rr.Code != http.StatusBadRequest || resp.Code != tc.code {
				t.Errorf("status %d, %+v; want 400 %s", rr.Code, resp, tc.code)
			}
		})
	}
}

func TestDeleteVideo(t *testing.T) {
	st := &fakeStore{videos: map[string][]model.Sentence{"vid1": makeSentences(2)}}
	h := NewRouter(testConfig(st))

	rr := do(t, h, http.MethodDelete, "/videos/vid1", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if _, ok := st.videos["vid1"]; ok {
		t.Error("video still in store")
	}

	rr = do(t, h, http.MethodDelete, "/videos/vid1", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d; want 404", rr.Code)
	}

	rr = do(t, NewRouter(testConfig(nil)), http.MethodDelete, "/videos/vid1", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("cache disabled: status %d; want 503", rr.Code)
	}
}
