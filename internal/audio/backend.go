package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/gordonklaus/portaudio"
)

// PlaybackRate is the sample rate the speaker is opened with. Sources at other
// rates are resampled.
const PlaybackRate = beep.SampleRate(44100)

// backend opens an audio system at most once and remembers the outcome.
type backend struct {
	name     string
	open     func() error
	close    func() error
	initOnce sync.Once
	termOnce sync.Once
	opened   bool
	err      error
}

func (b *backend) init() error {
	b.initOnce.Do(func() {
		if err := b.open(); err != nil {
			b.err = fmt.Errorf("%w: %s: %v", ErrUnsupported, b.name, err)
			return
		}
		b.opened = true
	})
	return b.err
}

func (b *backend) terminate() {
	b.termOnce.Do(func() {
		if b.opened && b.close != nil {
			_ = b.close()
		}
	})
}

var (
	speakerBackend = &backend{
		name: "speaker",
		open: func() error {
			return speaker.Init(PlaybackRate, PlaybackRate.N(time.Second/20))
		},
	}
	portaudioBackend = &backend{
		name:  "portaudio",
		open:  portaudio.Initialize,
		close: portaudio.Terminate,
	}
)

// InitSpeaker opens the output device once. Failures wrap ErrUnsupported.
func InitSpeaker() error { return speakerBackend.init() }

// Initialize initializes PortAudio once. Failures wrap ErrUnsupported.
func Initialize() error { return portaudioBackend.init() }

// Terminate releases PortAudio after a successful Initialize.
func Terminate() { portaudioBackend.terminate() }

func toPlaybackRate(s beep.Streamer, format beep.Format) beep.Streamer {
	if format.SampleRate == PlaybackRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, PlaybackRate, s)
}
