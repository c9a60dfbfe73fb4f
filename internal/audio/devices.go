package audio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gordonklaus/portaudio"
)

// Device describes a PortAudio device.
type Device struct {
	Name            string
	MaxInput        int
	MaxOutput       int
	DefaultSampleHz float64
	HostAPI         string
	IsDefaultInput  bool
	IsDefaultOutput bool
}

// loopback devices capture what the speakers play, which is what a visualizer wants.
var loopbackKeywords = []string{"monitor", "loopback", "mix", "stereo mix", "what u hear"}

// ListDevices returns all devices sorted by host API and name.
func ListDevices() ([]Device, error) {
	hosts, err := portaudio.HostApis()
	if err != nil {
		return nil, fmt.Errorf("host apis: %w", err)
	}
	defaultInput := defaultInputIndex()

	var devices []Device
	for _, host := range hosts {
		for _, d := range host.Devices {
			devices = append(devices, Device{
				Name:            d.Name,
				MaxInput:        d.MaxInputChannels,
				MaxOutput:       d.MaxOutputChannels,
				DefaultSampleHz: d.DefaultSampleRate,
				HostAPI:         host.Name,
				IsDefaultInput:  d.Index == defaultInput,
				IsDefaultOutput: host.DefaultOutputDevice != nil && d.Index == host.DefaultOutputDevice.Index,
			})
		}
	}
	sortDevices(devices)
	return devices, nil
}

// InputDevices keeps the devices that can record.
func InputDevices(devices []Device) []Device {
	var out []Device
	for _, d := range devices {
		if d.MaxInput > 0 {
			out = append(out, d)
		}
	}
	return out
}

// AutoDetectDevice returns the best input device PortAudio can find.
func AutoDetectDevice() (*portaudio.DeviceInfo, error) {
	return findDevice("")
}

func sortDevices(devices []Device) {
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].HostAPI == devices[j].HostAPI {
			return devices[i].Name < devices[j].Name
		}
		return devices[i].HostAPI < devices[j].HostAPI
	})
}

func defaultInputIndex() int {
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		return def.Index
	}
	return -1
}

func findDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list audio devices: %w", err)
	}
	if name != "" {
		if d := matchDevice(devices, name); d != nil {
			return d, nil
		}
		return nil, fmt.Errorf("audio device %q not found", name)
	}

	if dev, err := portaudio.DefaultInputDevice(); err == nil && dev != nil && dev.MaxInputChannels > 0 {
		return dev, nil
	}
	hostDefault := -1
	if host, err := portaudio.DefaultHostApi(); err == nil && host != nil && host.DefaultInputDevice != nil {
		if host.DefaultInputDevice.MaxInputChannels > 0 {
			return host.DefaultInputDevice, nil
		}
		hostDefault = host.DefaultInputDevice.Index
	}
	if d := pickBestDevice(devices, defaultInputIndex(), hostDefault); d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("no suitable audio input device found")
}

// matchDevice returns the first input device whose name contains name, ignoring case.
func matchDevice(devices []*portaudio.DeviceInfo, name string) *portaudio.DeviceInfo {
	name = strings.ToLower(name)
	for _, d := range devices {
		if d == nil || d.MaxInputChannels == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(d.Name), name) {
			return d
		}
	}
	return nil
}

func pickBestDevice(devices []*portaudio.DeviceInfo, defaultInput, hostDefault int) *portaudio.DeviceInfo {
	var (
		best      *portaudio.DeviceInfo
		bestScore int
	)
	for _, d := range devices {
		if d == nil || d.MaxInputChannels <= 0 {
			continue
		}
		score := scoreDevice(d.Name, d.MaxInputChannels, d.Index == defaultInput, d.Index == hostDefault)
		if best == nil || score > bestScore ||
			(score == bestScore && strings.ToLower(d.Name) < strings.ToLower(best.Name)) {
			best, bestScore = d, score
		}
	}
	return best
}

// scoreDevice ranks an input device. Defaults win, then loopback devices.
func scoreDevice(name string, inputs int, isDefault, isHostDefault bool) int {
	score := inputs
	if isDefault {
		score += 50
	}
	if isHostDefault {
		score += 40
	}
	lower := strings.ToLower(name)
	for _, kw := range loopbackKeywords {
		if strings.Contains(lower, kw) {
			score += 20
			break
		}
	}
	if strings.Contains(lower, "default") {
		score += 10
	}
	return score
}
