package application

import (
	"fmt"
	"strings"

	"voice-to-docs/internal/domain"
)

type SelectionReason string

const (
	ReasonExplicit   SelectionReason = "explicit"
	ReasonConfigured SelectionReason = "configured"
	ReasonVendor     SelectionReason = "vendor"
	ReasonDefault    SelectionReason = "default"
)

type Selection struct {
	Device domain.DeviceInfo
	Reason SelectionReason
}

// DefaultPreferredVendors lists external microphone keywords, best first.
func DefaultPreferredVendors() []string {
	return []string{"hyperx", "blue", "rode", "shure", "elgato", "usb"}
}

// SelectDevice picks a capture device. An explicit id must exist; a configured
// id is used when it exists and ignored otherwise; then devices matching a
// vendor keyword win, and finally the system default input is used.
func SelectDevice(available []domain.DeviceInfo, explicit, configured *int, vendors []string) (Selection, error) {
	var inputs []domain.DeviceInfo
	for _, d := range available {
		if d.IsInput() {
			inputs = append(inputs, d)
		}
	}

	if explicit != nil {
		d, ok := findDevice(available, *explicit)
		if !ok {
			return Selection{}, fmt.Errorf("%w: device %d does not exist", domain.ErrDeviceNotFound, *explicit)
		}
		if !d.IsInput() {
			return Selection{}, fmt.Errorf("%w: device %d (%s) doesn't support audio input", domain.ErrDeviceNotFound, d.ID, d.Name)
		}
		return Selection{Device: d, Reason: ReasonExplicit}, nil
	}

	if len(inputs) == 0 {
		return Selection{}, fmt.Errorf("%w: no audio input devices found", domain.ErrDeviceNotFound)
	}

	if configured != nil {
		if d, ok := findDevice(inputs, *configured); ok {
			return Selection{Device: d, Reason: ReasonConfigured}, nil
		}
	}

	bestRank := -1
	var best domain.DeviceInfo
	for _, d := range inputs {
		rank := vendorRank(d.Name, vendors)
		if rank < 0 {
			continue
		}
		if bestRank < 0 || rank < bestRank || (rank == bestRank && d.ID < best.ID) {
			bestRank = rank
			best = d
		}
	}
	if bestRank >= 0 {
		return Selection{Device: best, Reason: ReasonVendor}, nil
	}

	fallback := inputs[0]
	for _, d := range inputs {
		if d.IsDefault {
			return Selection{Device: d, Reason: ReasonDefault}, nil
		}
		if d.ID < fallback.ID {
			fallback = d
		}
	}
	return Selection{Device: fallback, Reason: ReasonDefault}, nil
}

func findDevice(devices []domain.DeviceInfo, id int) (domain.DeviceInfo, bool) {
	for _, d := range devices {
		if d.ID == id {
			return d, true
		}
	}
	return domain.DeviceInfo{}, false
}

// vendorRank returns the position of the first vendor keyword contained in
// name, or -1.
func vendorRank(name string, vendors []string) int {
	lower := strings.ToLower(name)
	for i, v := range vendors {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" && strings.Contains(lower, v) {
			return i
		}
	}
	return -1
}
