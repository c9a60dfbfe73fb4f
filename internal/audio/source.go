package audio

import (
	"errors"
	"strings"
)

// ErrUnsupported reports that the host cannot provide audio output or capture.
var ErrUnsupported = errors.New("audio analysis is not supported on this system")

const defaultRingSize = 8192

// Source provides the most recently played or captured mono samples.
type Source interface {
	// Samples returns the latest n samples, oldest first. Missing history is
	// zero-padded at the front.
	Samples(n int) []float64
	SampleRate() float64
	Close() error
}

// SourceNames lists the values accepted by the -source flag.
func SourceNames() []string {
	return []string{"stream", "file", "mic", "synth"}
}

// errorsIsInvalidStreamState checks if the provided error stems from stopping an already stopped stream.
func errorsIsInvalidStreamState(err error) bool {
	if err == nil {
		return false
	}
	const invalidStateMsg = "PaErrorCode -9986"
	return strings.Contains(err.Error(), invalidStateMsg)
}
