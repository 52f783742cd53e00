package usb

import (
	"errors"
	"testing"
	"time"
)

// mockContext/mockDevice/mockConfig/mockInterface/mockEndpoint implement
// the Context/Device/Config/Interface/In|OutEndpoint interfaces without
// touching real hardware.

type mockEndpoint struct {
	writeErr error
	readErr  error
	written  [][]byte
	toRead   []byte
}

func (e *mockEndpoint) Write(buf []byte) (int, error) {
	if e.writeErr != nil {
		return 0, e.writeErr
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	e.written = append(e.written, cp)
	return len(buf), nil
}

func (e *mockEndpoint) Read(buf []byte) (int, error) {
	if e.readErr != nil {
		return 0, e.readErr
	}
	n := copy(buf, e.toRead)
	return n, nil
}

type mockInterface struct {
	out      *mockEndpoint
	in       *mockEndpoint
	closeErr error
}

func (i *mockInterface) InEndpoint(addr int) (InEndpoint, error)  { return i.in, nil }
func (i *mockInterface) OutEndpoint(addr int) (OutEndpoint, error) { return i.out, nil }
func (i *mockInterface) Close() error                              { return i.closeErr }

type mockConfig struct {
	numInterfaces  int
	failInterfaces map[int]error
	ifaces         map[int]*mockInterface
}

func (c *mockConfig) NumInterfaces() int { return c.numInterfaces }

func (c *mockConfig) Interface(num int) (Interface, error) {
	if err, ok := c.failInterfaces[num]; ok {
		return nil, err
	}
	if iface, ok := c.ifaces[num]; ok {
		return iface, nil
	}
	return &mockInterface{out: &mockEndpoint{}, in: &mockEndpoint{}}, nil
}

func (c *mockConfig) Close() error { return nil }

type mockDevice struct {
	desc      Descriptor
	cfg       *mockConfig
	controlFn func(reqType, request uint8, val, idx uint16, data []byte) (int, error)
	closed    bool
}

func (d *mockDevice) Descriptor() Descriptor { return d.desc }

func (d *mockDevice) Config(cfgNum int) (Config, error) { return d.cfg, nil }

func (d *mockDevice) Control(reqType, request uint8, val, idx uint16, data []byte) (int, error) {
	if d.controlFn != nil {
		return d.controlFn(reqType, request, val, idx, data)
	}
	return 0, errors.New("no languages in mock")
}

func (d *mockDevice) Close() error { d.closed = true; return nil }

type mockContext struct {
	devices []*mockDevice
}

func (c *mockContext) OpenDevices(opener func(Descriptor) bool) ([]Device, error) {
	var out []Device
	for _, d := range c.devices {
		if opener(d.desc) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (c *mockContext) Close() error { return nil }

func newMockDevice(vid, pid uint16) *mockDevice {
	return &mockDevice{
		desc: Descriptor{Vendor: vid, Product: pid},
		cfg:  &mockConfig{numInterfaces: 1, failInterfaces: map[int]error{}, ifaces: map[int]*mockInterface{}},
	}
}

func TestOpenNoDeviceFound(t *testing.T) {
	ctx := &mockContext{}
	_, err := Open(ctx, time.Second, 0x0483, 0x2D42)
	var want *NoDeviceFound
	if !errors.As(err, &want) {
		t.Fatalf("expected *NoDeviceFound, got %v", err)
	}
}

func TestOpenTooManyDevicesFound(t *testing.T) {
	ctx := &mockContext{devices: []*mockDevice{
		newMockDevice(0x0483, 0x2D42),
		newMockDevice(0x0483, 0x2D42),
	}}
	_, err := Open(ctx, time.Second, 0x0483, 0x2D42)
	var want *TooManyDevicesFound
	if !errors.As(err, &want) {
		t.Fatalf("expected *TooManyDevicesFound, got %v", err)
	}
	if want.Count != 2 {
		t.Errorf("Count = %d, want 2", want.Count)
	}
}

func TestClaimTwiceFailsAlreadyClaimed(t *testing.T) {
	ctx := &mockContext{devices: []*mockDevice{newMockDevice(0x0483, 0x2D42)}}
	s, err := Open(ctx, time.Second, 0x0483, 0x2D42)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Claim(); err != nil {
		t.Fatal(err)
	}
	err = s.Claim()
	var want *InterfaceAlreadyClaimed
	if !errors.As(err, &want) {
		t.Fatalf("expected *InterfaceAlreadyClaimed, got %v", err)
	}
}

func TestWriteAfterReleaseFailsNoInterfaceClaimed(t *testing.T) {
	ctx := &mockContext{devices: []*mockDevice{newMockDevice(0x0483, 0x2D42)}}
	s, err := Open(ctx, time.Second, 0x0483, 0x2D42)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Claim(); err != nil {
		t.Fatal(err)
	}
	if err := s.Release(); err != nil {
		t.Fatal(err)
	}
	_, err = s.Write(0x02, []byte{0x00})
	var want *NoInterfaceClaimed
	if !errors.As(err, &want) {
		t.Fatalf("expected *NoInterfaceClaimed, got %v", err)
	}
}

func TestUsbInterfaceClaimErrorCollectsAllAttempts(t *testing.T) {
	dev := newMockDevice(0x0483, 0x2D42)
	dev.cfg.numInterfaces = 3
	dev.cfg.failInterfaces = map[int]error{
		0: errors.New("busy"),
		1: errors.New("denied"),
		2: errors.New("gone"),
	}
	ctx := &mockContext{devices: []*mockDevice{dev}}
	s, err := Open(ctx, time.Second, 0x0483, 0x2D42)
	if err != nil {
		t.Fatal(err)
	}
	err = s.Claim()
	var claimErr *UsbInterfaceClaimError
	if !errors.As(err, &claimErr) {
		t.Fatalf("expected *UsbInterfaceClaimError, got %v", err)
	}
	if len(claimErr.Attempts) != 3 {
		t.Fatalf("expected 3 collected attempts, got %d", len(claimErr.Attempts))
	}
	wantMsgs := []string{"busy", "denied", "gone"}
	for i, msg := range wantMsgs {
		if claimErr.Attempts[i].Error() != msg {
			t.Errorf("attempt %d = %q, want %q", i, claimErr.Attempts[i].Error(), msg)
		}
	}
}

func TestWriteRoundTripsThroughClaimedInterface(t *testing.T) {
	dev := newMockDevice(0x0483, 0x2D42)
	iface := &mockInterface{out: &mockEndpoint{}, in: &mockEndpoint{toRead: []byte{1, 2, 3}}}
	dev.cfg.ifaces[0] = iface
	ctx := &mockContext{devices: []*mockDevice{dev}}
	s, err := Open(ctx, time.Second, 0x0483, 0x2D42)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Claim(); err != nil {
		t.Fatal(err)
	}
	n, err := s.Write(0x02, []byte{0xAA, 0xBB})
	if err != nil || n != 2 {
		t.Fatalf("Write: n=%d err=%v", n, err)
	}
	if len(iface.out.written) != 1 {
		t.Fatalf("expected 1 write recorded, got %d", len(iface.out.written))
	}

	buf := make([]byte, 3)
	n, err = s.Read(0x81, buf)
	if err != nil || n != 3 {
		t.Fatalf("Read: n=%d err=%v", n, err)
	}
}

func TestReleasePropagatesInterfaceCloseError(t *testing.T) {
	dev := newMockDevice(0x0483, 0x2D42)
	iface := &mockInterface{out: &mockEndpoint{}, in: &mockEndpoint{}, closeErr: errors.New("usbfs: device gone")}
	dev.cfg.ifaces[0] = iface
	ctx := &mockContext{devices: []*mockDevice{dev}}
	s, err := Open(ctx, time.Second, 0x0483, 0x2D42)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Claim(); err != nil {
		t.Fatal(err)
	}
	err = s.Release()
	if err == nil {
		t.Fatal("expected Release to propagate the interface close error")
	}
	if want := "usb: interface release error: usbfs: device gone"; err.Error() != want {
		t.Errorf("Release err = %q, want %q", err.Error(), want)
	}
}

func TestManufacturerNoLanguageAvailable(t *testing.T) {
	dev := newMockDevice(0x0483, 0x2D42)
	ctx := &mockContext{devices: []*mockDevice{dev}}
	s, err := Open(ctx, time.Second, 0x0483, 0x2D42)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.GetManufacturer()
	var want *ManufacturerReadNoLanguageAvailable
	if !errors.As(err, &want) {
		t.Fatalf("expected *ManufacturerReadNoLanguageAvailable, got %v", err)
	}
}
