package scopecfg

import "math"

// Window is a derived numeric interval [Lower, Upper] over float32
// that gates an auto-scaled user value. The zero Window is sane but
// not usable.
type Window struct {
	Lower, Upper float32
}

// NewWindow builds a Window, normalizing a signed-zero bound to +0.
func NewWindow(lower, upper float32) Window {
	return Window{Lower: dezero(lower), Upper: dezero(upper)}
}

func dezero(v float32) float32 {
	if v == 0 {
		return 0
	}
	return v
}

// Sane reports whether both bounds are finite (non-NaN, non-infinite).
func (w Window) Sane() bool {
	return !math.IsNaN(float64(w.Lower)) && !math.IsInf(float64(w.Lower), 0) &&
		!math.IsNaN(float64(w.Upper)) && !math.IsInf(float64(w.Upper), 0)
}

// Usable reports whether the window is Sane and not the zero window
// (both endpoints exactly 0).
func (w Window) Usable() bool {
	if !w.Sane() {
		return false
	}
	return !(w.Lower == 0 && w.Upper == 0)
}

// ChannelOffsetWindow derives the channel-offset adjustment window
// from a channel's voltage scale: [-4*scale, +4*scale].
func ChannelOffsetWindow(s Scale) Window {
	v := s.RawValue()
	return NewWindow(-4*v, 4*v)
}

// TriggerLevelWindow derives the trigger-level adjustment window from
// the trigger source channel's current scale. The formula is
// identical to ChannelOffsetWindow.
func TriggerLevelWindow(s Scale) Window {
	return ChannelOffsetWindow(s)
}

// TimeOffsetWindow derives the time-offset adjustment window from a
// time scale's raw ordinal: [-15*ord, +15*ord].
func TimeOffsetWindow(t TimeScale) Window {
	ord := float32(t.Ordinal())
	return NewWindow(-15*ord, 15*ord)
}

// roundToUnit rounds x to the nearest multiple of unit,
// round-half-away-from-zero.
func roundToUnit(x, unit float64) float64 {
	q := x / unit
	if q < 0 {
		return float64(int64(q-0.5)) * unit
	}
	return float64(int64(q+0.5)) * unit
}

// AutoScale8 maps a user-supplied physical value x through w into the
// device's 0..200 raw count, shared by channel offset and trigger
// level:
//
//	r = round((x - lower) * 200 / (upper - lower))
//
// It takes the low byte of the rounded count. Callers must check
// w.Usable() first; AutoScale8 does not.
func (w Window) AutoScale8(x float32) byte {
	span := float64(w.Upper) - float64(w.Lower)
	r := roundToUnit(float64(x-w.Lower)*200/span, 1)
	return byte(int64(r))
}

// AutoScaleTime32 maps a user-supplied physical time offset x through
// w into the device's 32-bit raw count:
//
//	r = round((x - lower/15*6) * 15*2*25 / (upper - lower))
//
// preserved exactly as the reverse-engineered wire contract specifies;
// its derivation is undocumented upstream. Callers must check
// w.Usable() first; AutoScaleTime32 does not.
func (w Window) AutoScaleTime32(x float32) uint32 {
	lower := float64(w.Lower)
	upper := float64(w.Upper)
	span := upper - lower
	r := roundToUnit((float64(x)-lower/15*6)*15*2*25/span, 1)
	return uint32(int64(r))
}
