package hantek

import (
	"github.com/tinylaboratory/hantek6022/scopecfg"
	"github.com/tinylaboratory/hantek6022/wire"
)

// SetTimeScale sets the horizontal timebase and, as a side effect,
// installs the time-offset adjustment window.
func (d *Driver) SetTimeScale(t scopecfg.TimeScale) error {
	err := d.send("set time scale", wire.FuncScopeSetting, wire.CmdScaleTime, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(t.Raw())
	})
	if err != nil {
		return err
	}
	tt := t
	d.shadow.TimeScale = &tt
	w := scopecfg.TimeOffsetWindow(t)
	d.shadow.TimeOffsetWindow = &w
	return nil
}

// SetTimeOffset sets the horizontal offset from an already-computed
// raw 32-bit count.
func (d *Driver) SetTimeOffset(raw uint32) error {
	err := d.send("set time offset", wire.FuncScopeSetting, wire.CmdOffsetTime, func(b *wire.Builder) *wire.Builder {
		return b.SetU32(raw)
	})
	if err != nil {
		return err
	}
	r := raw
	d.shadow.TimeOffset = &r
	return nil
}

// SetTimeOffsetWithAutoAdjustment translates a physical time offset x
// through the current time-offset window and forwards to
// SetTimeOffset. Fails with TimeOffsetAdjustmentError if the window
// is absent or not usable.
func (d *Driver) SetTimeOffsetWithAutoAdjustment(x float32) error {
	validateFinite("time offset", x)
	w := d.shadow.TimeOffsetWindow
	if w == nil || !w.Usable() {
		return &TimeOffsetAdjustmentError{}
	}
	return d.SetTimeOffset(w.AutoScaleTime32(x))
}

// SetTriggerSource selects which channel the trigger watches and, as
// a side effect, installs the trigger-level adjustment window derived
// from that channel's current scale. Fails with
// TriggerLevelAdjustmentError if the channel's scale is not yet known.
func (d *Driver) SetTriggerSource(ch int) error {
	validateChannel(ch)
	scale := d.shadow.Channel(ch).Scale
	if scale == nil {
		return &TriggerLevelAdjustmentError{Channel: ch}
	}
	err := d.send("set trigger source", wire.FuncScopeSetting, wire.CmdTriggerSource, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(byte(ch - 1))
	})
	if err != nil {
		return err
	}
	c := ch
	d.shadow.TriggerSourceChannel = &c
	w := scopecfg.TriggerLevelWindow(*scale)
	d.shadow.TriggerLevelWindow = &w
	return nil
}

// SetTriggerSlope sets which edge direction(s) arm the trigger.
func (d *Driver) SetTriggerSlope(s scopecfg.TriggerSlope) error {
	err := d.send("set trigger slope", wire.FuncScopeSetting, wire.CmdTriggerSlope, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(s.Raw())
	})
	if err != nil {
		return err
	}
	ss := s
	d.shadow.TriggerSlope = &ss
	return nil
}

// SetTriggerMode sets how the scope decides a trigger occurred.
func (d *Driver) SetTriggerMode(m scopecfg.TriggerMode) error {
	err := d.send("set trigger mode", wire.FuncScopeSetting, wire.CmdTriggerMode, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(m.Raw())
	})
	if err != nil {
		return err
	}
	mm := m
	d.shadow.TriggerMode = &mm
	return nil
}

// SetTriggerLevel sets the trigger level from an already-computed raw
// 0..200 count.
func (d *Driver) SetTriggerLevel(raw byte) error {
	err := d.send("set trigger level", wire.FuncScopeSetting, wire.CmdTriggerLevel, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(raw)
	})
	if err != nil {
		return err
	}
	r := raw
	d.shadow.TriggerLevel = &r
	return nil
}

// SetTriggerLevelWithAutoAdjustment translates a physical trigger
// level x through the current trigger-level window and forwards to
// SetTriggerLevel. Fails with TriggerLevelAdjustmentError if the
// window is absent or not usable.
func (d *Driver) SetTriggerLevelWithAutoAdjustment(x float32) error {
	validateFinite("trigger level", x)
	w := d.shadow.TriggerLevelWindow
	if w == nil || !w.Usable() {
		ch := 0
		if d.shadow.TriggerSourceChannel != nil {
			ch = *d.shadow.TriggerSourceChannel
		}
		return &TriggerLevelAdjustmentError{Channel: ch}
	}
	return d.SetTriggerLevel(w.AutoScale8(x))
}
