package usb

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Vendor and product string descriptor indices for this device
// family. Like every other numeric constant in this driver, these are
// taken from the reverse-engineered descriptor table, not derived:
// the firmware places iManufacturer at string index 1 and iProduct at
// string index 2.
const (
	manufacturerStringIndex = 1
	productStringIndex      = 2

	// languageListStringIndex is the standard USB convention: string
	// descriptor index 0 holds the device's supported LANGID list
	// instead of a string.
	languageListStringIndex = 0

	// descriptorTypeString is bDescriptorType for a USB string descriptor.
	descriptorTypeString = 0x03

	// getDescriptorRequest is the standard GET_DESCRIPTOR control request.
	getDescriptorRequest = 0x06

	// controlIn | controlStandard | controlDevice, the bmRequestType
	// for a standard, device-to-host, device-recipient control read.
	controlInStandardDevice = 0x80
)

// state is the session's position in the Closed -> Opened -> Claimed
// -> Opened -> Closed state machine.
type state int

const (
	stateClosed state = iota
	stateOpened
	stateClaimed
)

// Session is a single USB session against one device, matched by
// (vid, pid) at Open time.
type Session struct {
	dev Device
	cfg Config

	vid, pid uint16
	timeout  time.Duration

	st state

	iface     Interface
	ifaceNum  int

	languages []uint16
}

// Open enumerates every device on ctx, filters to an exact (vid, pid)
// match, and opens the single survivor's configuration descriptor 0.
// Zero matches is NoDeviceFound; two or more is TooManyDevicesFound.
func Open(ctx Context, timeout time.Duration, vid, pid uint16) (*Session, error) {
	devs, err := ctx.OpenDevices(func(d Descriptor) bool {
		return d.Vendor == vid && d.Product == pid
	})
	if err != nil {
		return nil, getUsbDevicesErr(err)
	}
	if len(devs) == 0 {
		return nil, &NoDeviceFound{Vid: vid, Pid: pid}
	}
	if len(devs) > 1 {
		for _, d := range devs {
			d.Close()
		}
		return nil, &TooManyDevicesFound{Vid: vid, Pid: pid, Count: len(devs)}
	}
	dev := devs[0]

	languages, langErr := readLanguages(dev)
	if langErr != nil {
		// Not fatal: a device with no readable language table can still
		// be used for everything except descriptor-string reads.
		languages = nil
	}

	cfg, err := dev.Config(0)
	if err != nil {
		dev.Close()
		return nil, getConfigErr(err)
	}

	return &Session{
		dev:       dev,
		cfg:       cfg,
		vid:       vid,
		pid:       pid,
		timeout:   timeout,
		st:        stateOpened,
		languages: languages,
	}, nil
}

// readLanguages issues the standard GET_DESCRIPTOR(String, index=0)
// control transfer and parses the returned LANGID list, the language
// negotiation step required before any string descriptor read.
func readLanguages(dev Device) ([]uint16, error) {
	buf := make([]byte, 255)
	val := uint16(descriptorTypeString)<<8 | uint16(languageListStringIndex)
	n, err := dev.Control(controlInStandardDevice, getDescriptorRequest, val, 0, buf)
	if err != nil {
		return nil, readLanguagesErr(err)
	}
	if n < 2 {
		return nil, readLanguagesErr(errors.New("short language descriptor"))
	}
	buf = buf[:n]
	bLength := int(buf[0])
	if bLength > n {
		bLength = n
	}
	var langs []uint16
	for off := 2; off+1 < bLength; off += 2 {
		langs = append(langs, binary.LittleEndian.Uint16(buf[off:off+2]))
	}
	return langs, nil
}

// Languages returns the descriptor languages negotiated at Open, in
// device-reported order. Empty if the device offered none or the read
// failed.
func (s *Session) Languages() []uint16 {
	return s.languages
}

func (s *Session) firstLanguage() (uint16, bool) {
	if len(s.languages) == 0 {
		return 0, false
	}
	return s.languages[0], true
}

func readStringDescriptor(dev Device, index int, langID uint16) (string, error) {
	buf := make([]byte, 255)
	val := uint16(descriptorTypeString)<<8 | uint16(index)
	n, err := dev.Control(controlInStandardDevice, getDescriptorRequest, val, langID, buf)
	if err != nil {
		return "", err
	}
	if n < 2 {
		return "", errors.New("short string descriptor")
	}
	buf = buf[:n]
	bLength := int(buf[0])
	if bLength > n {
		bLength = n
	}
	utf16le := buf[2:bLength]
	runes := make([]uint16, len(utf16le)/2)
	for i := range runes {
		runes[i] = binary.LittleEndian.Uint16(utf16le[i*2 : i*2+2])
	}
	return decodeUTF16(runes), nil
}

func decodeUTF16(in []uint16) string {
	out := make([]rune, 0, len(in))
	for i := 0; i < len(in); i++ {
		r := in[i]
		if r >= 0xD800 && r <= 0xDBFF && i+1 < len(in) {
			r2 := in[i+1]
			if r2 >= 0xDC00 && r2 <= 0xDFFF {
				out = append(out, ((rune(r)-0xD800)<<10|(rune(r2)-0xDC00))+0x10000)
				i++
				continue
			}
		}
		out = append(out, rune(r))
	}
	return string(out)
}

// GetManufacturer reads the manufacturer string against the
// negotiated language.
func (s *Session) GetManufacturer() (string, error) {
	lang, ok := s.firstLanguage()
	if !ok {
		return "", &ManufacturerReadNoLanguageAvailable{}
	}
	str, err := readStringDescriptor(s.dev, manufacturerStringIndex, lang)
	if err != nil {
		return "", manufacturerUsbErr(err)
	}
	return str, nil
}

// GetProduct reads the product string against the negotiated language.
func (s *Session) GetProduct() (string, error) {
	lang, ok := s.firstLanguage()
	if !ok {
		return "", &ProductReadNoLanguageAvailable{}
	}
	str, err := readStringDescriptor(s.dev, productStringIndex, lang)
	if err != nil {
		return "", productUsbErr(err)
	}
	return str, nil
}

// Claim iterates the configuration's interfaces in descriptor order
// and claims the first one that succeeds. Claiming twice without an
// intervening Release is InterfaceAlreadyClaimed.
func (s *Session) Claim() error {
	if s.st == stateClaimed {
		return &InterfaceAlreadyClaimed{Interface: s.ifaceNum}
	}
	var attempts []error
	for num := 0; num < s.cfg.NumInterfaces(); num++ {
		iface, err := s.cfg.Interface(num)
		if err != nil {
			attempts = append(attempts, err)
			continue
		}
		s.iface = iface
		s.ifaceNum = num
		s.st = stateClaimed
		return nil
	}
	return &UsbInterfaceClaimError{Attempts: attempts}
}

// Release releases the claimed interface, if any, and returns to the
// Opened state; a no-op if nothing was claimed. A failure to release
// is reported but still moves the session back to Opened, since the
// interface is unusable either way.
func (s *Session) Release() error {
	if s.st != stateClaimed {
		return nil
	}
	err := s.iface.Close()
	s.iface = nil
	s.st = stateOpened
	if err != nil {
		return releaseErr(err)
	}
	return nil
}

// Write bulk-writes data to the given OUT endpoint. Legal only in the
// Claimed state.
func (s *Session) Write(endpoint int, data []byte) (int, error) {
	if s.st != stateClaimed {
		return 0, &NoInterfaceClaimed{}
	}
	ep, err := s.iface.OutEndpoint(endpoint)
	if err != nil {
		return 0, writeErr(err)
	}
	n, err := ep.Write(data)
	if err != nil {
		return n, writeErr(err)
	}
	return n, nil
}

// Read bulk-reads up to len(buf) bytes from the given IN endpoint.
// Legal only in the Claimed state.
func (s *Session) Read(endpoint int, buf []byte) (int, error) {
	if s.st != stateClaimed {
		return 0, &NoInterfaceClaimed{}
	}
	ep, err := s.iface.InEndpoint(endpoint)
	if err != nil {
		return 0, readErr(err)
	}
	n, err := ep.Read(buf)
	if err != nil {
		return n, readErr(err)
	}
	return n, nil
}

// Close releases the interface (if claimed) and closes the device's
// configuration and handle. The transport Context passed to Open is
// the caller's and is never closed here.
func (s *Session) Close() error {
	var err error
	if s.st == stateClaimed {
		err = s.Release()
	}
	s.st = stateClosed
	if cfgErr := s.cfg.Close(); cfgErr != nil && err == nil {
		err = cfgErr
	}
	if devErr := s.dev.Close(); devErr != nil && err == nil {
		err = devErr
	}
	return err
}

// PrettyPrintedDeviceInfo returns a three-line human report: bus,
// address, VID, PID and speed; manufacturer; product.
func (s *Session) PrettyPrintedDeviceInfo() string {
	desc := s.dev.Descriptor()
	manufacturer, mErr := s.GetManufacturer()
	if mErr != nil {
		manufacturer = "(unavailable)"
	}
	product, pErr := s.GetProduct()
	if pErr != nil {
		product = "(unavailable)"
	}
	return fmt.Sprintf(
		"bus %d addr %d vid=0x%04x pid=0x%04x speed=%s (%g MBps)\nmanufacturer: %s\nproduct: %s",
		desc.Bus, desc.Address, desc.Vendor, desc.Product, desc.Speed, desc.Speed.MBps(),
		manufacturer, product,
	)
}
