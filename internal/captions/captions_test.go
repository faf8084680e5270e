package captions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/patrickprogramme/shadowscribe/pkg/model"
)

const sampleJSON3 = `{
  "wireMagic": "pb3",
  "events": [
    {"tStartMs": 0, "dDurationMs": 5000, "id": 1, "wWinId": 1},
    {"tStartMs": 120, "dDurationMs": 2400, "segs": [{"utf8": "we&#39;re"}, {"utf8": " going", "tOffsetMs": 400}, {"utf8": "  home"}]},
    {"tStartMs": 2520, "aAppend": 1, "segs": [{"utf8": "\n"}]},
    {"tStartMs": 2600, "dDurationMs": 1000, "segs": [{"utf8": "Tom &amp; Jerry."}]},
    {"tStartMs": 4000, "dDurationMs": 500, "segs": [{"utf8": "   "}]}
  ]
}`

func TestParseJSON3(t *testing.T) {
	frags, err := ParseJSON3([]byte(sampleJSON3))
	if err != nil {
		t.Fatalf("ParseJSON3 error: %v", err)
	}
	want := []model.CaptionFragment{
		{Text: "we're going home", Start: 0.12, Duration: 2.4},
		{Text: "Tom & Jerry.", Start: 2.6, Duration: 1},
	}
	if len(frags) != len(want) {
		t.Fatalf("got %d fragments %v; want %d", len(frags), frags, len(want))
	}
	for i := range want {
		if frags[i] != want[i] {
			t.Errorf("fragment %d = %+v; want %+v", i, frags[i], want[i])
		}
	}
}

func TestParseJSON3_Errors(t *testing.T) {
	if _, err := ParseJSON3(nil); !errors.Is(err, ErrNoEvents) {
		t.Errorf("empty input: err = %v; want ErrNoEvents", err)
	}
	if _, err := ParseJSON3([]byte(`{"events":[{"segs":[{"utf8":"\n"}]}]}`)); !errors.Is(err, ErrNoEvents) {
		t.Errorf("newline only: err = %v; want ErrNoEvents", err)
	}
	if _, err := ParseJSON3([]byte(`{"events":`)); err == nil || errors.Is(err, ErrNoEvents) {
		t.Errorf("truncated json: err = %v; want decode error", err)
	}
}

func TestParseList(t *testing.T) {
	frags, err := ParseList([]byte(`[
	  {"text": "I&#39;m here", "start": 1.5, "duration": 2},
	  {"text": "", "start": 3.5, "duration": 0.5},
	  {"text": "now.", "start": 4}
	]`))
	if err != nil {
		t.Fatalf("ParseList error: %v", err)
	}
	if len(frags) != 3 || frags[0].Text != "I'm here" || frags[2].Duration != 0 {
		t.Errorf("frags = %+v", frags)
	}

	if _, err := ParseList([]byte(`[{"start": 1}]`)); err == nil {
		t.Error("missing text should fail")
	}
	if _, err := ParseList([]byte(`[]`)); !errors.Is(err, ErrNoEvents) {
		t.Errorf("empty list: err = %v; want ErrNoEvents", err)
	}
}

func TestDecodeText(t *testing.T) {
	tests := map[string]string{
		"  a \n b  ":            "a b",
		"rock &amp; roll":       "rock & roll",
		"it&amp;#39;s":          "it's",
		"&lt;i&gt;x&lt;/i&gt;": "<i>x</i>",
	}
	for in, want := range tests {
		if got := DecodeText(in); got != want {
			t.Errorf("DecodeText(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name      string
		file      string
		content   string
		wantCount int
		wantErr   bool
	}{
		{"json3 extension", "a.json3", sampleJSON3, 2, false},
		{"list in json", "b.json", `[{"text":"hi","start":0,"duration":1}]`, 1, false},
		{"json3 in json", "c.json", sampleJSON3, 2, false},
		{"garbage json", "d.json", `{"foo": 1}`, 0, true},
		{"unknown extension", "e.vtt", "WEBVTT", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frags, err := LoadFile(write(tc.file, tc.content))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("want error, got %v", frags)
				}
				return
			}
			if err != nil || len(frags) != tc.wantCount {
				t.Fatalf("LoadFile = %v, %v; want %d fragments", frags, err, tc.wantCount)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json3")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleJSON3))
	}))
	defer srv.Close()

	track := model.SubtitleTrack{Lang: "en", Format: model.FormatJSON3, URL: srv.URL, Source: model.SubSourceManual}
	frags, err := Download(context.Background(), track, time.Second, 0)
	if err != nil || len(frags) != 2 {
		t.Fatalf("Download = %v, %v", frags, err)
	}

	if _, err := Download(context.Background(), model.SubtitleTrack{}, time.Second, 0); !errors.Is(err, ErrNoTrack) {
		t.Errorf("empty track: err = %v; want ErrNoTrack", err)
	}
	vtt := track
	vtt.Format = model.FormatTXT
	if _, err := Download(context.Background(), vtt, time.Second, 0); err == nil {
		t.Error("non-json3 track should fail")
	}
}
