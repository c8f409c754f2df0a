package strategy

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Device is the hardware a model runs on.
type Device string

const (
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
	DeviceMPS  Device = "mps"
)

// DeviceProbe describes the host for device detection.
type DeviceProbe struct {
	GOOS       string
	GOARCH     string
	FileExists func(path string) bool
	LookPath   func(file string) (string, error)
}

// HostDeviceProbe probes the running host.
func HostDeviceProbe() DeviceProbe {
	return DeviceProbe{
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
		FileExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		LookPath: exec.LookPath,
	}
}

// DetectDevice prefers MPS, then CUDA, then CPU.
func DetectDevice(p DeviceProbe) Device {
	if p.GOOS == "darwin" && p.GOARCH == "arm64" {
		return DeviceMPS
	}
	if p.FileExists != nil && p.FileExists("/dev/nvidia0") {
		return DeviceCUDA
	}
	if p.LookPath != nil {
		if _, err := p.LookPath("nvidia-smi"); err == nil {
			return DeviceCUDA
		}
	}
	return DeviceCPU
}

// ParseDevice validates a configured device. Empty or "auto" means detect.
func ParseDevice(value string) (Device, bool, error) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "", "auto":
		return "", true, nil
	case string(DeviceCPU), string(DeviceCUDA), string(DeviceMPS):
		return Device(v), false, nil
	default:
		return "", false, fmt.Errorf("invalid device %q, must be one of: auto, cpu, cuda, mps", value)
	}
}
