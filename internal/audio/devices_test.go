package audio

import (
	"testing"

	"github.com/gordonklaus/portaudio"
)

func TestScoreDevice(t *testing.T) {
	cases := []struct {
		name      string
		inputs    int
		def, host bool
		want      int
	}{
		{"Built-in Microphone", 1, false, false, 1},
		{"Built-in Microphone", 2, true, false, 52},
		{"Monitor of Speakers", 2, false, false, 22},
		{"default", 2, false, true, 52},
		{"Stereo Mix (Loopback)", 2, false, false, 22},
	}
	for _, c := range cases {
		if got := scoreDevice(c.name, c.inputs, c.def, c.host); got != c.want {
			t.Fatalf("scoreDevice(%q)=%d want %d", c.name, got, c.want)
		}
	}
}

func TestPickBestDevicePrefersLoopback(t *testing.T) {
	devices := []*portaudio.DeviceInfo{
		{Index: 0, Name: "HDMI Output", MaxInputChannels: 0},
		{Index: 1, Name: "USB Mic", MaxInputChannels: 2},
		{Index: 2, Name: "Monitor of Built-in Audio", MaxInputChannels: 2},
		nil,
	}
	if got := pickBestDevice(devices, -1, -1); got == nil || got.Index != 2 {
		t.Fatalf("picked %+v want monitor", got)
	}
	if got := pickBestDevice(devices, 1, -1); got == nil || got.Index != 1 {
		t.Fatalf("picked %+v want default input", got)
	}
	if got := pickBestDevice(devices[:1], -1, -1); got != nil {
		t.Fatalf("picked %+v from output-only devices", got)
	}
}

func TestMatchDevice(t *testing.T) {
	devices := []*portaudio.DeviceInfo{
		{Name: "Speakers", MaxInputChannels: 0},
		{Name: "Speakers Monitor", MaxInputChannels: 2},
	}
	if got := matchDevice(devices, "SPEAKERS"); got == nil || got.Name != "Speakers Monitor" {
		t.Fatalf("matched %+v", got)
	}
	if got := matchDevice(devices, "usb"); got != nil {
		t.Fatalf("matched %+v", got)
	}
}

func TestInputDevicesAndSort(t *testing.T) {
	devices := []Device{
		{Name: "b", HostAPI: "ALSA", MaxInput: 2},
		{Name: "out", HostAPI: "ALSA"},
		{Name: "a", HostAPI: "JACK", MaxInput: 1},
		{Name: "a", HostAPI: "ALSA", MaxInput: 1},
	}
	sortDevices(devices)
	inputs := InputDevices(devices)
	want := []string{"ALSA/a", "ALSA/b", "JACK/a"}
	if len(inputs) != len(want) {
		t.Fatalf("inputs=%+v", inputs)
	}
	for i, d := range inputs {
		if got := d.HostAPI + "/" + d.Name; got != want[i] {
			t.Fatalf("inputs[%d]=%s want %s", i, got, want[i])
		}
	}
}
