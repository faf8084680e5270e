package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/patrickprogramme/shadowscribe/internal/captions"
	"github.com/patrickprogramme/shadowscribe/internal/config"
	"github.com/patrickprogramme/shadowscribe/internal/store"
	"github.com/patrickprogramme/shadowscribe/internal/yt"
	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

// --- fakes ---

type fakeUI struct {
	url, id string
	err     error
	asked   int
	infos   []string
	errors  []string
}

func (f *fakeUI) GetVideoURL(context.Context) (string, string, error) {
	f.asked++
	return f.url, f.id, f.err
}
func (f *fakeUI) PrintInfo(_ context.Context, s string)  { f.infos = append(f.infos, s) }
func (f *fakeUI) PrintError(_ context.Context, s string) { f.errors = append(f.errors, s) }

type fakeYt struct {
	json     string
	err      error
	lastURL  string
	extracts int
}

func (f *fakeYt) CheckBinary() error                          { return nil }
func (f *fakeYt) GetVersion(context.Context) (string, error) { return "test", nil }
func (f *fakeYt) ExtractRaw(_ context.Context, url string) (*yt.ExtractedRaw, error) {
	f.extracts++
	f.lastURL = url
	if f.err != nil {
		return nil, f.err
	}
	return &yt.ExtractedRaw{JSON: []byte(f.json), Warnings: []string{"WARNING: test"}}, nil
}

type fakeCache struct {
	videos map[string][]model.Sentence
	meta   map[string]store.Video
	saves  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{videos: map[string][]model.Sentence{}, meta: map[string]store.Video{}}
}

func (f *fakeCache) SaveTranscript(_ context.Context, v store.Video, s []model.Sentence) error {
	f.saves++
	f.videos[v.ID] = s
	f.meta[v.ID] = v
	return nil
}
func (f *fakeCache) Transcript(_ context.Context, id string) (store.Video, []model.Sentence, error) {
	s, ok := f.videos[id]
	if !ok {
		return store.Video{}, nil, store.ErrNotFound
	}
	return f.meta[id], s, nil
}
func (f *fakeCache) ListVideos(context.Context) ([]store.Video, error) { return nil, nil }
func (f *fakeCache) Ping(context.Context) error                        { return nil }
func (f *fakeCache) DeleteVideo(context.Context, string) error         { return nil }

const metaJSON = `{
  "id": "vid12345678",
  "title": "Daily English",
  "uploader": "Coach",
  "duration": 30,
  "subtitles": {"en": [{"ext": "json3", "url": "https://captions.test/en.json3"}]},
  "automatic_captions": {}
}`

var sampleFragments = []model.CaptionFragment{
	{Text: "Good morning everyone.", Start: 0, Duration: 1.5},
	{Text: "Today we practise", Start: 1.5, Duration: 1},
	{Text: "shadowing.", Start: 2.5, Duration: 1},
	{Text: "Ready?", Start: 6, Duration: 0.5},
}

type harness struct {
	app       *App
	ui        *fakeUI
	yt        *fakeYt
	cache     *fakeCache
	downloads int
	copied    string
	outDir    string
}

func newHarness(t *testing.T, flags *CLIFlags) *harness {
	t.Helper()
	h := &harness{
		ui:     &fakeUI{url: "https://youtu.be/vid12345678", id: "vid12345678"},
		yt:     &fakeYt{json: metaJSON},
		cache:  newFakeCache(),
		outDir: t.TempDir(),
	}
	cfg := config.Default()
	cfg.Output.Dir = h.outDir
	if flags == nil {
		flags = &CLIFlags{}
	}
	h.app = New(cfg, h.ui, flags, nil, h.cache)
	h.app.ytClient = h.yt
	h.app.download = func(ctx context.Context, track model.SubtitleTrack, _ time.Duration, _ int64) ([]model.CaptionFragment, error) {
		h.downloads++
		if track.URL != "https://captions.test/en.json3" {
			t.Errorf("downloaded track %v", track)
		}
		return sampleFragments, nil
	}
	h.app.copyText = func(s string) error {
		h.copied = s
		return nil
	}
	return h
}

func readUnits(t *testing.T, path string) []model.Sentence {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var units []model.Sentence
	if err := json.Unmarshal(b, &units); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	return units
}

// --- tests ---

func TestRun_FromPromptToJSON(t *testing.T) {
	h := newHarness(t, nil)

	res, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if h.ui.asked != 1 {
		t.Errorf("ui asked %d times; want 1", h.ui.asked)
	}
	if h.yt.lastURL != "https://www.youtube.com/watch?v=vid12345678" {
		t.Errorf("yt-dlp called with %q", h.yt.lastURL)
	}
	if res.FromCache || res.Sentences != 3 || len(res.Units) != 3 {
		t.Fatalf("res = %+v", res)
	}

	want := filepath.Join(h.outDir, "vid12345678.sentence.json")
	if res.OutputPath != want {
		t.Errorf("output path = %q; want %q", res.OutputPath, want)
	}
	units := readUnits(t, want)
	texts := []string{"Good morning everyone.", "Today we practise shadowing.", "Ready?"}
	for i, u := range units {
		if u.Text != texts[i] {
			t.Errorf("unit %d = %q; want %q", i, u.Text, texts[i])
		}
	}

	if h.cache.saves != 1 || h.cache.meta["vid12345678"].Title != "Daily English" || h.cache.meta["vid12345678"].Source != "manual" {
		t.Errorf("cache = %d saves, %+v", h.cache.saves, h.cache.meta)
	}
	if h.copied != "" {
		t.Errorf("clipboard should not be touched without -copy")
	}
}

func TestRun_CacheHitSkipsDownload(t *testing.T) {
	h := newHarness(t, &CLIFlags{URL: "https://www.youtube.com/watch?v=vid12345678&t=3", Mode: "total", Copy: true})
	h.cache.videos["vid12345678"] = []model.Sentence{
		{ID: "a", Text: "Cached one.", StartTime: 0, EndTime: 1, Highlights: []model.Highlight{}},
		{ID: "b", Text: "Cached two.", StartTime: 1, EndTime: 2, Highlights: []model.Highlight{}},
	}

	res, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !res.FromCache || h.yt.extracts != 0 || h.downloads != 0 || h.ui.asked != 0 {
		t.Errorf("cache hit should skip ui/yt-dlp/download: res %+v, extracts %d, downloads %d, asked %d", res, h.yt.extracts, h.downloads, h.ui.asked)
	}
	if len(res.Units) != 1 || res.Units[0].Text != "Cached one. Cached two." {
		t.Fatalf("units = %+v", res.Units)
	}
	if !strings.HasSuffix(res.OutputPath, "vid12345678.total.json") {
		t.Errorf("output path = %q", res.OutputPath)
	}
	if h.copied != "Cached one. Cached two.\n" {
		t.Errorf("copied = %q", h.copied)
	}
}

func TestRun_NoCacheFlag(t *testing.T) {
	h := newHarness(t, &CLIFlags{NoCache: true})
	h.cache.videos["vid12345678"] = []model.Sentence{{ID: "old", Text: "Stale."}}

	res, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.FromCache || h.downloads != 1 {
		t.Errorf("-no-cache should force a download: res %+v, downloads %d", res, h.downloads)
	}
	if got := h.cache.videos["vid12345678"]; len(got) != 3 {
		t.Errorf("cache should be refreshed, got %v", got)
	}
}

func TestRun_CaptionsFileParagraphTxt(t *testing.T) {
	dir := t.TempDir()
	capPath := filepath.Join(dir, "lesson42.json")
	if err := os.WriteFile(capPath, []byte(`[
		{"text":"One.","start":0,"duration":1},
		{"text":"Two.","start":1,"duration":1},
		{"text":"Three.","start":2,"duration":1},
		{"text":"Four.","start":3,"duration":1},
		{"text":"Five.","start":4,"duration":1},
		{"text":"Six.","start":5,"duration":1}
	]`), 0o644); err != nil {
		t.Fatal(err)
	}

	h := newHarness(t, &CLIFlags{CaptionsPath: capPath, Mode: "paragraph", Format: "txt"})
	res, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if h.ui.asked != 0 || h.yt.extracts != 0 || h.downloads != 0 {
		t.Errorf("local captions should not hit ui/yt-dlp: asked %d extracts %d downloads %d", h.ui.asked, h.yt.extracts, h.downloads)
	}
	if res.Video.ID != "lesson42" || res.Video.Source != "file" {
		t.Errorf("video = %+v", res.Video)
	}

	b, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "[00:00] One. Two. Three. Four. Five.\n[00:05] Six.\n"
	if string(b) != want {
		t.Errorf("txt output = %q; want %q", b, want)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Run("invalid url flag", func(t *testing.T) {
		h := newHarness(t, &CLIFlags{URL: "https://example.com/video"})
		if _, err := h.app.Run(context.Background()); !errors.Is(err, yt.ErrInvalidURL) {
			t.Errorf("err = %v; want ErrInvalidURL", err)
		}
	})

	t.Run("invalid mode flag", func(t *testing.T) {
		h := newHarness(t, &CLIFlags{Mode: "chapter"})
		if _, err := h.app.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "group_mode") {
			t.Errorf("err = %v; want group_mode error", err)
		}
	})

	t.Run("no subtitle track", func(t *testing.T) {
		h := newHarness(t, nil)
		h.yt.json = `{"id":"vid12345678","title":"Silent"}`
		if _, err := h.app.Run(context.Background()); !errors.Is(err, captions.ErrNoTrack) {
			t.Errorf("err = %v; want ErrNoTrack", err)
		}
	})

	t.Run("yt-dlp failure", func(t *testing.T) {
		h := newHarness(t, nil)
		h.yt.err = errors.New("exit status 1")
		if _, err := h.app.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "extract raw") {
			t.Errorf("err = %v; want extract raw error", err)
		}
	})

	t.Run("ui failure", func(t *testing.T) {
		h := newHarness(t, nil)
		h.ui.err = yt.ErrInvalidURL
		if _, err := h.app.Run(context.Background()); !errors.Is(err, yt.ErrInvalidURL) {
			t.Errorf("err = %v; want wrapped ui error", err)
		}
	})
}

func TestRun_SaveInSubdir(t *testing.T) {
	h := newHarness(t, nil)
	h.app.cfg.Output.SaveInSubdir = true

	res, err := h.app.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := filepath.Join(h.outDir, "Daily English", "vid12345678.sentence.json")
	if res.OutputPath != want {
		t.Errorf("output path = %q; want %q", res.OutputPath, want)
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	h := newHarness(t, nil)
	h.app.cfg.Server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.app.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
