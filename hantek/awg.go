package hantek

import (
	"math"

	"github.com/tinylaboratory/hantek6022/scopecfg"
	"github.com/tinylaboratory/hantek6022/wire"
)

// SetAwgType selects the waveform shape the generator produces.
func (d *Driver) SetAwgType(t scopecfg.AwgType) error {
	err := d.send("set awg type", wire.FuncAWGSetting, wire.CmdAwgType, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(t.Raw())
	})
	if err != nil {
		return err
	}
	tt := t
	d.shadow.Awg.Type = &tt
	return nil
}

// SetAwgFrequency sets the generator frequency in hertz. Payload is
// a single little-endian 32-bit word holding f converted to a whole
// number of hertz, with any fractional part truncated.
func (d *Driver) SetAwgFrequency(f float32) error {
	validateFinite("awg frequency", f)
	raw := uint32(f)
	err := d.send("set awg frequency", wire.FuncAWGSetting, wire.CmdAwgFreq, func(b *wire.Builder) *wire.Builder {
		return b.SetU32(raw)
	})
	if err != nil {
		return err
	}
	d.shadow.Awg.FrequencyHz = &raw
	return nil
}

// SetAwgAmplitude sets the generator's peak amplitude in volts.
// Payload is u16(|v|*1000), u16(sign) with sign=1 iff v is
// sign-negative: SetAwgAmplitude(-1.25) sends payload u16(1250),
// u16(1).
func (d *Driver) SetAwgAmplitude(v float32) error {
	validateFinite("awg amplitude", v)
	mag, sign := magnitudeAndSign(v)
	err := d.send("set awg amplitude", wire.FuncAWGSetting, wire.CmdAwgAmplitude, func(b *wire.Builder) *wire.Builder {
		return b.SetWords(mag, sign)
	})
	if err != nil {
		return err
	}
	vv := v
	d.shadow.Awg.Amplitude = &vv
	return nil
}

// SetAwgOffset sets the generator's DC offset in volts, same payload
// shape as SetAwgAmplitude. Known device quirk: the on-screen offset
// indicator is not refreshed by the firmware after this call even
// though the device state is updated; AwgOffsetAndRunningQuirky
// reports this so a host can choose to warn.
func (d *Driver) SetAwgOffset(v float32) error {
	validateFinite("awg offset", v)
	mag, sign := magnitudeAndSign(v)
	err := d.send("set awg offset", wire.FuncAWGSetting, wire.CmdAwgOffset, func(b *wire.Builder) *wire.Builder {
		return b.SetWords(mag, sign)
	})
	if err != nil {
		return err
	}
	vv := v
	d.shadow.Awg.Offset = &vv
	return nil
}

func magnitudeAndSign(v float32) (uint16, uint16) {
	sign := uint16(0)
	if math.Signbit(float64(v)) {
		sign = 1
	}
	mag := uint16(math.Abs(float64(v)) * 1000)
	return mag, sign
}

// SetAwgDutySquare sets the duty cycle of a Square waveform, 0..1.
// Payload is u16(d*100), u16(0).
func (d *Driver) SetAwgDutySquare(duty float32) error {
	validateFinite("awg square duty", duty)
	err := d.send("set awg duty square", wire.FuncAWGSetting, wire.CmdAwgDutySquare, func(b *wire.Builder) *wire.Builder {
		return b.SetWords(uint16(duty*100), 0)
	})
	if err != nil {
		return err
	}
	dd := duty
	d.shadow.Awg.DutySquare = &dd
	return nil
}

// SetAwgDutyRamp sets the duty cycle (symmetry) of a Ramp waveform,
// same payload shape as SetAwgDutySquare.
func (d *Driver) SetAwgDutyRamp(duty float32) error {
	validateFinite("awg ramp duty", duty)
	err := d.send("set awg duty ramp", wire.FuncAWGSetting, wire.CmdAwgDutyRamp, func(b *wire.Builder) *wire.Builder {
		return b.SetWords(uint16(duty*100), 0)
	})
	if err != nil {
		return err
	}
	dd := duty
	d.shadow.Awg.DutyRamp = &dd
	return nil
}

// SetAwgDutyTrap sets a trapezoidal waveform's high time, low time and
// rise time fractions. Payload is u8[rise*100, high*100, low*100, 0]:
// SetAwgDutyTrap(0.5, 0.2, 0.1) sends payload u8[10, 50, 20, 0].
func (d *Driver) SetAwgDutyTrap(high, low, rise float32) error {
	validateFinite("awg trap high", high)
	validateFinite("awg trap low", low)
	validateFinite("awg trap rise", rise)
	err := d.send("set awg duty trap", wire.FuncAWGSetting, wire.CmdAwgDutyTrap, func(b *wire.Builder) *wire.Builder {
		return b.SetBytes(byte(rise*100), byte(high*100), byte(low*100), 0)
	})
	if err != nil {
		return err
	}
	h, l, r := high, low, rise
	d.shadow.Awg.DutyHigh = &h
	d.shadow.Awg.DutyLow = &l
	d.shadow.Awg.DutyRise = &r
	return nil
}

// AwgStart starts the generator.
func (d *Driver) AwgStart() error {
	return d.setAwgRunning(scopecfg.RunningStatusStart)
}

// AwgStop stops the generator. This updates the shadow's AWG running
// status, not the scope's.
func (d *Driver) AwgStop() error {
	return d.setAwgRunning(scopecfg.RunningStatusStop)
}

func (d *Driver) setAwgRunning(status scopecfg.RunningStatus) error {
	action := "awg " + status.String()
	err := d.send(action, wire.FuncAWGSetting, wire.CmdAwgStartStop, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(status.Raw())
	})
	if err != nil {
		return err
	}
	s := status
	d.shadow.Awg.Running = &s
	return nil
}

// AwgOffsetAndRunningQuirky reports a known device quirk: after
// SetAwgOffset, AwgStart or AwgStop, the on-screen "running" or
// "offset" indicator is not refreshed by the firmware, even though
// the shadow (and the device's real internal state) is updated. The
// driver never prints a warning itself; it exposes this predicate so
// a host can decide whether to.
func AwgOffsetAndRunningQuirky() bool { return true }
