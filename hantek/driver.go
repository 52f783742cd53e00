// Package hantek is the public instrument driver: device mode,
// per-channel control, scope acquisition, AWG, and capture. Every
// operation composes the wire frame catalog (package wire) and the
// shadow configuration (package scopecfg) into a command, dispatches
// it through a USB session (package usb), and on success updates the
// shadow.
package hantek

import (
	"time"

	"github.com/tinylaboratory/hantek6022/scopecfg"
	"github.com/tinylaboratory/hantek6022/usb"
	"github.com/tinylaboratory/hantek6022/wire"
)

// VID and PID identify this device family; no other Hantek product is
// supported.
const (
	VID uint16 = 0x0483
	PID uint16 = 0x2D42
)

// Default bulk endpoints used by every operation, overridable with
// WithEndpoints for a clone device wired up differently on the bench.
const (
	defaultWriteEndpoint = 0x02
	defaultReadEndpoint  = 0x81
)

// transport is the subset of *usb.Session the driver needs. Narrowing
// to an interface here (rather than depending on *usb.Session
// directly) is what lets driver-level operation tests run against an
// in-memory fake without a real USB session underneath.
type transport interface {
	Write(endpoint int, data []byte) (int, error)
	Read(endpoint int, buf []byte) (int, error)
}

// Driver is the public entry point: the USB session plus the shadow
// configuration it maintains in lockstep.
type Driver struct {
	session       *usb.Session
	xport         transport
	shadow        *scopecfg.Shadow
	timeout       time.Duration
	log           Logger
	writeEndpoint int
	readEndpoint  int
}

// openOptions accumulates what Option funcs may influence before the
// USB session is opened.
type openOptions struct {
	vid, pid        uint16
	writeEp, readEp int
	log             Logger
}

// Option configures optional Driver behavior at construction.
type Option func(*openOptions)

// WithLogger attaches a Logger; operations call it but the driver
// never configures logging output itself. A nil Logger leaves logging
// as a no-op.
func WithLogger(l Logger) Option {
	return func(o *openOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithVIDPID overrides the compiled-in device identity. This exists
// for testing against a USB-ID-patched clone on a bench, never for
// supporting a different instrument family.
func WithVIDPID(vid, pid uint16) Option {
	return func(o *openOptions) { o.vid, o.pid = vid, pid }
}

// WithEndpoints overrides the default bulk write/read endpoint
// numbers. This exists for the same bench-clone scenario WithVIDPID
// serves; the device family this driver targets always uses 0x02/0x81.
func WithEndpoints(writeEp, readEp int) Option {
	return func(o *openOptions) { o.writeEp, o.readEp = writeEp, readEp }
}

// Open constructs a USB session for this device's (VID, PID) — the
// compiled-in default unless overridden with WithVIDPID — and a
// fresh 2-channel shadow. Open does not claim the interface; callers
// must Claim before any non-shell operation and Release afterward.
func Open(ctx usb.Context, timeout time.Duration, opts ...Option) (*Driver, error) {
	o := openOptions{
		vid: VID, pid: PID,
		writeEp: defaultWriteEndpoint, readEp: defaultReadEndpoint,
		log: noopLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	sess, err := usb.Open(ctx, timeout, o.vid, o.pid)
	if err != nil {
		return nil, wrapUsbErr("open", err)
	}
	d := &Driver{
		session:       sess,
		xport:         sess,
		shadow:        scopecfg.NewShadow(),
		timeout:       timeout,
		log:           o.log,
		writeEndpoint: o.writeEp,
		readEndpoint:  o.readEp,
	}
	return d, nil
}

// Claim claims the device's USB interface. Must be called before any
// operation other than Release.
func (d *Driver) Claim() error {
	d.log.Tracef("claim")
	if err := d.session.Claim(); err != nil {
		d.log.Warnf("claim failed: %s", err)
		return wrapUsbErr("claim interface", err)
	}
	d.log.Debugf("claimed")
	return nil
}

// Release releases the claimed interface. The public API exposes it
// explicitly so a host can release even after a failed command
// sequence and report both errors.
func (d *Driver) Release() error {
	d.log.Tracef("release")
	if err := d.session.Release(); err != nil {
		d.log.Warnf("release failed: %s", err)
		return wrapUsbErr("release interface", err)
	}
	d.log.Debugf("released")
	return nil
}

// Close tears down the underlying USB session entirely (device handle
// and configuration descriptor), releasing the interface first if it
// is still claimed.
func (d *Driver) Close() error {
	return d.session.Close()
}

// PrettyPrintedDeviceInfo delegates to the underlying session.
func (d *Driver) PrettyPrintedDeviceInfo() string {
	return d.session.PrettyPrintedDeviceInfo()
}

// Shadow returns the driver's shadow configuration for introspection.
// Callers must never mutate the returned value directly; all mutation
// goes through driver operations.
func (d *Driver) Shadow() *scopecfg.Shadow {
	return d.shadow
}

// send builds a frame from the given fields, writes it to the command
// endpoint, and logs entry, success, and failure. On write failure it
// returns a wrapped HantekUsbError and performs no shadow mutation;
// on success it returns nil and leaves shadow mutation to the caller.
func (d *Driver) send(action string, fn wire.Func, cmd wire.Cmd, build func(*wire.Builder) *wire.Builder) error {
	d.log.Tracef("%s: sending command", action)
	b := wire.NewBuilder().Func(fn).Cmd(cmd)
	frame := build(b).Build()
	n, err := d.xport.Write(d.writeEndpoint, frame[:])
	if err != nil || n != wire.FrameLen {
		if err == nil {
			err = shortWriteError{wrote: n, want: wire.FrameLen}
		}
		d.log.Warnf("%s: write failed: %s", action, err)
		return wrapUsbErr(action, err)
	}
	d.log.Debugf("%s: ok", action)
	return nil
}

type shortWriteError struct {
	wrote, want int
}

func (e shortWriteError) Error() string {
	return "short write"
}
