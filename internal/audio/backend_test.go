package audio

import (
	"errors"
	"testing"
)

func TestBackendWrapsUnsupportedOnce(t *testing.T) {
	opens, closes := 0, 0
	b := &backend{
		name:  "fake",
		open:  func() error { opens++; return errors.New("no device") },
		close: func() error { closes++; return nil },
	}
	for i := 0; i < 2; i++ {
		err := b.init()
		if !errors.Is(err, ErrUnsupported) {
			t.Fatalf("err=%v want ErrUnsupported", err)
		}
	}
	b.terminate()
	if opens != 1 || closes != 0 {
		t.Fatalf("opens=%d closes=%d", opens, closes)
	}
}

func TestBackendTerminatesOnce(t *testing.T) {
	closes := 0
	b := &backend{
		name:  "fake",
		open:  func() error { return nil },
		close: func() error { closes++; return nil },
	}
	if err := b.init(); err != nil {
		t.Fatal(err)
	}
	b.terminate()
	b.terminate()
	if closes != 1 {
		t.Fatalf("closes=%d want 1", closes)
	}
}
