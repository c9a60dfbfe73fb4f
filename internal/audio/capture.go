package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Capture records a PortAudio input device into a Tap. It is the Source used
// for -source mic.
type Capture struct {
	stream     *portaudio.Stream
	sampleRate float64
	channels   int
	device     *portaudio.DeviceInfo
	tap        *Tap
	closeOnce  sync.Once
	closeErr   error
}

// CaptureConfig controls how a Capture instance is created.
type CaptureConfig struct {
	DeviceName string
	BufferSize int
	Channels   int
}

const defaultBufferSize = 4096

// NewCapture opens and starts an input stream. PortAudio must be initialized.
func NewCapture(cfg CaptureConfig) (*Capture, error) {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}

	device, err := findDevice(cfg.DeviceName)
	if err != nil {
		return nil, err
	}
	channels := min(cfg.Channels, device.MaxInputChannels)

	c := &Capture{
		sampleRate: device.DefaultSampleRate,
		channels:   channels,
		device:     device,
		tap:        NewTap(max(cfg.BufferSize, defaultRingSize)),
	}

	framesPerBuffer := cfg.BufferSize / channels
	if framesPerBuffer < 64 {
		framesPerBuffer = portaudio.FramesPerBufferUnspecified
	}

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      c.sampleRate,
		FramesPerBuffer: framesPerBuffer,
	}, c.process)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	c.stream = stream

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("start stream: %w", err)
	}
	return c, nil
}

// Close stops and closes the input stream.
func (c *Capture) Close() error {
	c.closeOnce.Do(func() {
		if c.stream == nil {
			return
		}
		if err := c.stream.Stop(); err != nil && !errorsIsInvalidStreamState(err) {
			c.closeErr = err
			return
		}
		c.closeErr = c.stream.Close()
	})
	return c.closeErr
}

// SampleRate returns the device sample rate.
func (c *Capture) SampleRate() float64 { return c.sampleRate }

// Device returns the device being recorded.
func (c *Capture) Device() *portaudio.DeviceInfo { return c.device }

// Samples returns the latest n mono samples.
func (c *Capture) Samples(n int) []float64 { return c.tap.Samples(n) }

func (c *Capture) process(in []float32) {
	c.tap.RecordInterleaved(in, c.channels)
}
