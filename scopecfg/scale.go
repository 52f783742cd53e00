package scopecfg

// Scale is one of the 10 volts-per-division steps the vertical front
// end supports. The zero value is the 10 mV step (ordinal 0).
type Scale uint8

// Voltage scale steps, 10 mV through 10 V, ordinals 0..9.
const (
	Scale10mV Scale = iota
	Scale20mV
	Scale50mV
	Scale100mV
	Scale200mV
	Scale500mV
	Scale1V
	Scale2V
	Scale5V
	Scale10V
)

// scaleRawValues holds each step's volts-per-division value, indexed
// by ordinal.
var scaleRawValues = [10]float32{
	0.010, 0.020, 0.050, 0.100, 0.200, 0.500,
	1, 2, 5, 10,
}

// Raw returns the wire-level ordinal byte for this scale.
func (s Scale) Raw() byte { return byte(s) }

// RawValue returns the volts-per-division this scale represents,
// used to derive offset and trigger-level adjustment windows.
func (s Scale) RawValue() float32 {
	if int(s) >= len(scaleRawValues) {
		panic("scopecfg: Scale ordinal out of range")
	}
	return scaleRawValues[s]
}

func (s Scale) String() string {
	names := [10]string{
		"10mV", "20mV", "50mV", "100mV", "200mV", "500mV",
		"1V", "2V", "5V", "10V",
	}
	if int(s) >= len(names) {
		return "Unknown"
	}
	return names[s]
}

// TimeScale is one of the 34 time-per-division steps the horizontal
// timebase supports, 5 ns through 500 s. The zero value is the 5 ns
// step (ordinal 0).
type TimeScale uint8

const (
	TimeScale5ns TimeScale = iota
	TimeScale10ns
	TimeScale20ns
	TimeScale50ns
	TimeScale100ns
	TimeScale200ns
	TimeScale500ns
	TimeScale1us
	TimeScale2us
	TimeScale5us
	TimeScale10us
	TimeScale20us
	TimeScale50us
	TimeScale100us
	TimeScale200us
	TimeScale500us
	TimeScale1ms
	TimeScale2ms
	TimeScale5ms
	TimeScale10ms
	TimeScale20ms
	TimeScale50ms
	TimeScale100ms
	TimeScale200ms
	TimeScale500ms
	TimeScale1s
	TimeScale2s
	TimeScale5s
	TimeScale10s
	TimeScale20s
	TimeScale50s
	TimeScale100s
	TimeScale200s
	TimeScale500s
)

// NumTimeScales is the count of defined TimeScale steps.
const NumTimeScales = 34

// Raw returns the wire-level ordinal byte for this time scale.
func (t TimeScale) Raw() byte { return byte(t) }

// Ordinal returns t's position 0..33 in the step sequence, used by
// the time-offset window formula.
func (t TimeScale) Ordinal() int { return int(t) }

var timeScaleNames = [NumTimeScales]string{
	"5ns", "10ns", "20ns", "50ns", "100ns", "200ns", "500ns",
	"1us", "2us", "5us", "10us", "20us", "50us", "100us", "200us", "500us",
	"1ms", "2ms", "5ms", "10ms", "20ms", "50ms", "100ms", "200ms", "500ms",
	"1s", "2s", "5s", "10s", "20s", "50s", "100s", "200s", "500s",
}

func (t TimeScale) String() string {
	if int(t) >= len(timeScaleNames) {
		return "Unknown"
	}
	return timeScaleNames[t]
}
