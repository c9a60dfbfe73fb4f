package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/guidoenr/streambars/internal/audio"
)

// SourceConfig selects and configures the audio source.
type SourceConfig struct {
	// Kind is one of audio.SourceNames().
	Kind       string
	URL        string
	Path       string
	DeviceName string
	BufferSize int
}

type starter interface {
	Start(ctx context.Context)
}

// OpenSource creates the configured source without starting playback.
// Missing audio backends are reported as audio.ErrUnsupported.
func OpenSource(cfg SourceConfig, logger *log.Logger) (audio.Source, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", "stream":
		if err := audio.InitSpeaker(); err != nil {
			return nil, err
		}
		return audio.NewStream(audio.StreamConfig{URL: cfg.URL, Log: logger}), nil
	case "file":
		f, err := audio.NewFile(cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		if err := audio.InitSpeaker(); err != nil {
			return nil, err
		}
		return f, nil
	case "mic":
		if err := audio.Initialize(); err != nil {
			return nil, err
		}
		capture, err := audio.NewCapture(audio.CaptureConfig{
			DeviceName: cfg.DeviceName,
			BufferSize: cfg.BufferSize,
			Channels:   2,
		})
		if err != nil {
			audio.Terminate()
			return nil, fmt.Errorf("audio capture: %w", err)
		}
		if info := capture.Device(); info != nil {
			logger.Printf("audio capture started on \"%s\" @ %.0f Hz", info.Name, capture.SampleRate())
		}
		return &micSource{Capture: capture}, nil
	case "synth":
		logger.Println("audio disabled, using synthetic generator")
		return audio.NewSynth(), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want one of %s)", cfg.Kind, strings.Join(audio.SourceNames(), "|"))
	}
}

// micSource releases PortAudio together with the capture stream.
type micSource struct {
	*audio.Capture
}

func (m *micSource) Close() error {
	err := m.Capture.Close()
	audio.Terminate()
	return err
}
