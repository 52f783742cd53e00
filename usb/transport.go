// Package usb implements the USB session lifecycle: device discovery
// by (VID, PID), handle open, interface claim/release, bulk
// read/write, and descriptor-string reads with explicit language
// negotiation.
//
// The OS USB stack itself is out of scope; this package only depends
// on it through the Context/Device/Config/Interface/Endpoint
// interfaces below. The production implementation (gousb.go) backs
// them with github.com/google/gousb for VID/PID-addressed bulk
// devices. Tests back them with an in-package mock (see
// session_test.go), never a real device.
package usb

// Descriptor is the subset of a USB device's descriptor this package
// needs: identity, addressing, and link speed.
type Descriptor struct {
	Bus, Address int
	Vendor, Product uint16
	Speed Speed
}

// Speed classifies the negotiated USB link speed.
type Speed int

const (
	SpeedUnknown Speed = iota
	SpeedLow
	SpeedFull
	SpeedHigh
	SpeedSuper
)

// MBps returns the nominal throughput of the speed class in
// megabytes per second, or 0 for SpeedUnknown.
func (s Speed) MBps() float64 {
	switch s {
	case SpeedLow:
		return 1.5
	case SpeedFull:
		return 12
	case SpeedHigh:
		return 480
	case SpeedSuper:
		return 5000
	default:
		return 0
	}
}

func (s Speed) String() string {
	switch s {
	case SpeedLow:
		return "Low"
	case SpeedFull:
		return "Full"
	case SpeedHigh:
		return "High"
	case SpeedSuper:
		return "Super"
	default:
		return "Unknown"
	}
}

// Context enumerates and opens devices. It is the root of the
// transport abstraction; gousbContext backs it with a real
// gousb.Context.
type Context interface {
	// OpenDevices opens every device for which opener returns true and
	// returns them. Devices the opener rejects are left untouched.
	OpenDevices(opener func(Descriptor) bool) ([]Device, error)
	Close() error
}

// Device is a single opened USB device.
type Device interface {
	Descriptor() Descriptor

	// Config opens configuration descriptor cfgNum.
	Config(cfgNum int) (Config, error)

	// Control issues a control transfer, used here only for standard
	// GET_DESCRIPTOR requests (string descriptors and the language-ID
	// list at string index 0).
	Control(reqType, request uint8, val, idx uint16, data []byte) (int, error)

	Close() error
}

// Config is an opened configuration descriptor.
type Config interface {
	// NumInterfaces returns how many interfaces this configuration
	// declares, in descriptor order.
	NumInterfaces() int

	// Interface claims interface number num, alternate setting 0.
	Interface(num int) (Interface, error)

	Close() error
}

// Interface is a claimed USB interface.
type Interface interface {
	InEndpoint(addr int) (InEndpoint, error)
	OutEndpoint(addr int) (OutEndpoint, error)

	// Close releases the interface. A non-nil error here is rare (the
	// kernel driver typically reclaims the interface regardless) but
	// is propagated by Session.Release rather than swallowed.
	Close() error
}

// InEndpoint is a bulk IN endpoint.
type InEndpoint interface {
	Read(buf []byte) (int, error)
}

// OutEndpoint is a bulk OUT endpoint.
type OutEndpoint interface {
	Write(buf []byte) (int, error)
}
