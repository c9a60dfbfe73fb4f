package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
)

// DefaultStreamURL is the internet radio stream played when no other source is chosen.
const DefaultStreamURL = "http://stream.dancewave.online:8080/dance.mp3"

// StreamConfig controls how a Stream is created.
type StreamConfig struct {
	URL    string
	Client *http.Client
	Log    *log.Logger
}

// Stream plays an MP3 stream over HTTP. Loading is fire-and-forget: Samples
// stays silent until audio arrives, and failures are only logged.
type Stream struct {
	url    string
	client *http.Client
	*player
}

// NewStream creates a Stream. Call Start to begin loading.
func NewStream(cfg StreamConfig) *Stream {
	if cfg.URL == "" {
		cfg.URL = DefaultStreamURL
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	return &Stream{
		url:    cfg.URL,
		client: cfg.Client,
		player: newPlayer("stream "+cfg.URL, cfg.Log),
	}
}

// URL returns the stream address.
func (s *Stream) URL() string { return s.url }

// Start connects and plays in the background. It does not wait for audio.
func (s *Stream) Start(ctx context.Context) {
	s.start(ctx, s.open)
}

func (s *Stream) open(ctx context.Context) (beep.Streamer, beep.Format, io.Closer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, beep.Format{}, nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, beep.Format{}, nil, fmt.Errorf("connect: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("connect: unexpected status %s", resp.Status)
	}

	streamer, format, err := mp3.Decode(resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decode mp3: %w", err)
	}
	return streamer, format, streamer, nil
}

func (s *Stream) Samples(n int) []float64 { return s.tap.Samples(n) }

func (s *Stream) SampleRate() float64 { return float64(PlaybackRate) }

// Close stops playback and waits for the loader to exit.
func (s *Stream) Close() error {
	s.stop()
	return nil
}
