package hantek

import (
	"fmt"

	"github.com/tinylaboratory/hantek6022/scopecfg"
	"github.com/tinylaboratory/hantek6022/wire"
)

// EnableChannel turns on channel ch's acquisition. ch must be 1 or 2.
func (d *Driver) EnableChannel(ch int) error {
	validateChannel(ch)
	return d.setChannelEnabled(ch, true)
}

// DisableChannel turns off channel ch's acquisition.
func (d *Driver) DisableChannel(ch int) error {
	validateChannel(ch)
	return d.setChannelEnabled(ch, false)
}

func (d *Driver) setChannelEnabled(ch int, enabled bool) error {
	cmd := wire.ChannelCmd(wire.CmdEnableCh1, ch)
	val := byte(0)
	if enabled {
		val = 1
	}
	err := d.send(channelAction("enable", ch), wire.FuncScopeSetting, cmd, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(val)
	})
	if err != nil {
		return err
	}
	e := enabled
	d.shadow.Channel(ch).Enabled = &e
	return nil
}

// SetChannelCoupling sets channel ch's input coupling.
func (d *Driver) SetChannelCoupling(ch int, c scopecfg.Coupling) error {
	validateChannel(ch)
	cmd := wire.ChannelCmd(wire.CmdCouplingCh1, ch)
	err := d.send(channelAction("set coupling", ch), wire.FuncScopeSetting, cmd, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(c.Raw())
	})
	if err != nil {
		return err
	}
	cc := c
	d.shadow.Channel(ch).Coupling = &cc
	return nil
}

// SetChannelProbe sets channel ch's probe attenuation.
func (d *Driver) SetChannelProbe(ch int, p scopecfg.Probe) error {
	validateChannel(ch)
	cmd := wire.ChannelCmd(wire.CmdProbeCh1, ch)
	err := d.send(channelAction("set probe", ch), wire.FuncScopeSetting, cmd, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(p.Raw())
	})
	if err != nil {
		return err
	}
	pp := p
	d.shadow.Channel(ch).Probe = &pp
	return nil
}

// SetChannelScale sets channel ch's volts-per-division and, as a side
// effect, installs that channel's offset adjustment window.
func (d *Driver) SetChannelScale(ch int, s scopecfg.Scale) error {
	validateChannel(ch)
	cmd := wire.ChannelCmd(wire.CmdScaleCh1, ch)
	err := d.send(channelAction("set scale", ch), wire.FuncScopeSetting, cmd, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(s.Raw())
	})
	if err != nil {
		return err
	}
	cs := d.shadow.Channel(ch)
	ss := s
	cs.Scale = &ss
	w := scopecfg.ChannelOffsetWindow(s)
	cs.OffsetWindow = &w
	return nil
}

// SetChannelOffset sets channel ch's offset from an already-computed
// raw 0..200 count.
func (d *Driver) SetChannelOffset(ch int, raw byte) error {
	validateChannel(ch)
	cmd := wire.ChannelCmd(wire.CmdOffsetCh1, ch)
	err := d.send(channelAction("set offset", ch), wire.FuncScopeSetting, cmd, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(raw)
	})
	if err != nil {
		return err
	}
	r := raw
	d.shadow.Channel(ch).Offset = &r
	return nil
}

// SetChannelOffsetWithAutoAdjustment translates a physical offset x
// through channel ch's current offset window and forwards to
// SetChannelOffset. Fails with ChannelAdjustmentError if the window
// is absent or not usable.
func (d *Driver) SetChannelOffsetWithAutoAdjustment(ch int, x float32) error {
	validateChannel(ch)
	validateFinite("channel offset", x)
	w := d.shadow.Channel(ch).OffsetWindow
	if w == nil || !w.Usable() {
		return &ChannelAdjustmentError{Channel: ch}
	}
	return d.SetChannelOffset(ch, w.AutoScale8(x))
}

// ChannelEnableBandwidthLimit turns on channel ch's bandwidth limit
// filter.
func (d *Driver) ChannelEnableBandwidthLimit(ch int) error {
	validateChannel(ch)
	return d.setChannelBandwidthLimit(ch, true)
}

// ChannelDisableBandwidthLimit turns off channel ch's bandwidth limit
// filter.
func (d *Driver) ChannelDisableBandwidthLimit(ch int) error {
	validateChannel(ch)
	return d.setChannelBandwidthLimit(ch, false)
}

func (d *Driver) setChannelBandwidthLimit(ch int, on bool) error {
	cmd := wire.ChannelCmd(wire.CmdBWLimitCh1, ch)
	val := byte(0)
	if on {
		val = 1
	}
	err := d.send(channelAction("set bandwidth limit", ch), wire.FuncScopeSetting, cmd, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(val)
	})
	if err != nil {
		return err
	}
	o := on
	d.shadow.Channel(ch).BandwidthLimit = &o
	return nil
}

func channelAction(verb string, ch int) string {
	return fmt.Sprintf("%s channel %d", verb, ch)
}
