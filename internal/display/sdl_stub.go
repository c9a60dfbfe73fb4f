//go:build !sdl

package display

import (
	"errors"

	"github.com/guidoenr/streambars/internal/app"
	"github.com/guidoenr/streambars/internal/render"
)

var errNoSDL = errors.New("SDL display not enabled; rebuild with -tags sdl")

// SupportsSDL reports whether the binary was built with the sdl tag.
func SupportsSDL() bool { return false }

// SDL is unavailable without the sdl build tag.
type SDL struct{}

func NewSDL(*app.App, int, int) (*SDL, error) { return nil, errNoSDL }

func (s *SDL) Canvas() (render.Surface, error) { return nil, errNoSDL }

func (s *SDL) Present(string) error { return errNoSDL }

func (s *SDL) Close() error { return nil }
