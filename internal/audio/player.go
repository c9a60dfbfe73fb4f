package audio

import (
	"context"
	"io"
	"log"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

type opener func(ctx context.Context) (beep.Streamer, beep.Format, io.Closer, error)

// player runs one decoded streamer through the speaker until it ends or its
// context is cancelled. Everything it plays passes through tap.
type player struct {
	label string
	tap   *Tap
	log   *log.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

func newPlayer(label string, logger *log.Logger) *player {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &player{label: label, tap: NewTap(defaultRingSize), log: logger}
}

// start launches playback and returns immediately.
func (p *player) start(parent context.Context, open opener) {
	if p.done != nil {
		return
	}
	ctx, cancel := context.WithCancel(parent)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		if err := p.run(ctx, open); err != nil {
			if ctx.Err() == nil {
				p.log.Printf("%s: %v", p.label, err)
			}
			return
		}
		p.log.Printf("%s: playback finished", p.label)
	}()
}

func (p *player) run(ctx context.Context, open opener) error {
	streamer, format, closer, err := open(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	p.log.Printf("%s: playing %d Hz, %d channels", p.label, format.SampleRate, format.NumChannels)

	ended := make(chan struct{})
	speaker.Play(beep.Seq(
		p.tap.Wrap(toPlaybackRate(streamer, format)),
		beep.Callback(func() { close(ended) }),
	))

	select {
	case <-ended:
		p.tap.Reset()
		return streamer.Err()
	case <-ctx.Done():
		speaker.Clear()
		p.tap.Reset()
		return ctx.Err()
	}
}

func (p *player) stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}
