package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewStreamDefaults(t *testing.T) {
	s := NewStream(StreamConfig{})
	if s.URL() != DefaultStreamURL {
		t.Fatalf("url=%s", s.URL())
	}
	if got := s.Samples(4); len(got) != 4 || got[3] != 0 {
		t.Fatalf("samples before load=%v", got)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close before start: %v", err)
	}
}

func TestStreamOpenRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := NewStream(StreamConfig{URL: srv.URL})
	_, _, _, err := s.open(context.Background())
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("err=%v", err)
	}
}

func TestStreamOpenRejectsGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an mp3"))
	}))
	defer srv.Close()

	s := NewStream(StreamConfig{URL: srv.URL})
	if _, _, _, err := s.open(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNewFileRejectsUnknownExtension(t *testing.T) {
	if _, err := NewFile("song.ogg", nil); err == nil {
		t.Fatalf("expected error for .ogg")
	}
	f, err := NewFile("song.FLAC", nil)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if f.ext != ".flac" {
		t.Fatalf("ext=%s", f.ext)
	}
}

func TestSourcesImplementSource(t *testing.T) {
	var _ Source = (*Stream)(nil)
	var _ Source = (*File)(nil)
	var _ Source = (*Capture)(nil)
	var _ Source = (*Synth)(nil)
}
