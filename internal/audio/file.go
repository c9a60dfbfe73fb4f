package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// File plays a local wav, mp3 or flac file once.
type File struct {
	path string
	ext  string
	*player
}

// NewFile validates the extension and creates a File. Call Start to play it.
func NewFile(path string, logger *log.Logger) (*File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	return &File{
		path:   path,
		ext:    ext,
		player: newPlayer("file "+filepath.Base(path), logger),
	}, nil
}

// Start decodes and plays the file in the background.
func (f *File) Start(ctx context.Context) {
	f.start(ctx, f.open)
}

func (f *File) open(context.Context) (beep.Streamer, beep.Format, io.Closer, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, beep.Format{}, nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch f.ext {
	case ".wav":
		streamer, format, err = wav.Decode(fh)
	case ".mp3":
		streamer, format, err = mp3.Decode(fh)
	case ".flac":
		streamer, format, err = flac.Decode(fh)
	}
	if err != nil {
		fh.Close()
		return nil, beep.Format{}, nil, fmt.Errorf("decode %s: %w", f.ext, err)
	}

	closer := closerFunc(func() error {
		streamer.Close()
		return fh.Close()
	})
	return streamer, format, closer, nil
}

func (f *File) Samples(n int) []float64 { return f.tap.Samples(n) }

func (f *File) SampleRate() float64 { return float64(PlaybackRate) }

func (f *File) Close() error {
	f.stop()
	return nil
}

type closerFunc func() error

func (fn closerFunc) Close() error { return fn() }
