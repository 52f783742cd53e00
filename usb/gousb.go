package usb

import "github.com/google/gousb"

// gousbSpeed maps gousb's speed enum to ours; gousb's own constants
// are not stable across driver versions so we translate explicitly
// rather than re-export them.
func gousbSpeed(s gousb.Speed) Speed {
	switch s {
	case gousb.SpeedLow:
		return SpeedLow
	case gousb.SpeedFull:
		return SpeedFull
	case gousb.SpeedHigh:
		return SpeedHigh
	case gousb.SpeedSuper:
		return SpeedSuper
	default:
		return SpeedUnknown
	}
}

// NewGousbContext returns a Context backed by a real
// github.com/google/gousb context, talking to the same class of
// bulk-endpoint USB device as any other gousb-based instrument driver.
func NewGousbContext() Context {
	return &gousbContext{ctx: gousb.NewContext()}
}

type gousbContext struct {
	ctx *gousb.Context
}

func (c *gousbContext) OpenDevices(opener func(Descriptor) bool) ([]Device, error) {
	devs, err := c.ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return opener(Descriptor{
			Bus:     desc.Bus,
			Address: desc.Address,
			Vendor:  uint16(desc.Vendor),
			Product: uint16(desc.Product),
			Speed:   gousbSpeed(desc.Speed),
		})
	})
	if err != nil {
		return nil, err
	}
	out := make([]Device, len(devs))
	for i, d := range devs {
		out[i] = &gousbDevice{dev: d}
	}
	return out, nil
}

func (c *gousbContext) Close() error { return c.ctx.Close() }

type gousbDevice struct {
	dev *gousb.Device
}

func (d *gousbDevice) Descriptor() Descriptor {
	desc := d.dev.Desc
	return Descriptor{
		Bus:     desc.Bus,
		Address: desc.Address,
		Vendor:  uint16(desc.Vendor),
		Product: uint16(desc.Product),
		Speed:   gousbSpeed(desc.Speed),
	}
}

func (d *gousbDevice) Config(cfgNum int) (Config, error) {
	cfg, err := d.dev.Config(cfgNum)
	if err != nil {
		return nil, err
	}
	return &gousbConfig{cfg: cfg}, nil
}

func (d *gousbDevice) Control(reqType, request uint8, val, idx uint16, data []byte) (int, error) {
	return d.dev.Control(reqType, request, val, idx, data)
}

func (d *gousbDevice) Close() error { return d.dev.Close() }

type gousbConfig struct {
	cfg *gousb.Config
}

func (c *gousbConfig) NumInterfaces() int {
	return len(c.cfg.Desc.Interfaces)
}

func (c *gousbConfig) Interface(num int) (Interface, error) {
	iface, err := c.cfg.Interface(num, 0)
	if err != nil {
		return nil, err
	}
	return &gousbInterface{iface: iface}, nil
}

func (c *gousbConfig) Close() error { return c.cfg.Close() }

type gousbInterface struct {
	iface *gousb.Interface
}

func (i *gousbInterface) InEndpoint(addr int) (InEndpoint, error) {
	return i.iface.InEndpoint(addr)
}

func (i *gousbInterface) OutEndpoint(addr int) (OutEndpoint, error) {
	return i.iface.OutEndpoint(addr)
}

func (i *gousbInterface) Close() error { i.iface.Close(); return nil }
