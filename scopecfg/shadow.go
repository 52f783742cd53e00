package scopecfg

import (
	"fmt"
	"time"
)

// NumChannels is the fixed channel count of this device family.
const NumChannels = 2

// ChannelState is the last-known configuration of one channel. Every
// field is a pointer so "unset since session open" is representable
// without a separate boolean per field.
type ChannelState struct {
	Enabled           *bool
	Coupling          *Coupling
	Probe             *Probe
	Scale             *Scale
	Offset            *byte
	BandwidthLimit    *bool
	OffsetWindow      *Window
}

// AwgState is the last-known AWG parameter set.
type AwgState struct {
	Type        *AwgType
	FrequencyHz *uint32
	Amplitude   *float32
	Offset      *float32
	DutySquare  *float32
	DutyRamp    *float32
	DutyHigh    *float32
	DutyLow     *float32
	DutyRise    *float32
	Running     *RunningStatus
}

// Shadow is the mutable record of the last value successfully sent
// for each property. It is created at session open, owned exclusively
// by the driver, and never mutated directly by callers: every field
// changes only as a side effect of a successful driver operation.
type Shadow struct {
	channels map[int]*ChannelState

	Timeout time.Duration

	DeviceFunction *DeviceFunction

	TimeScale        *TimeScale
	TimeOffset       *uint32
	TimeOffsetWindow *Window

	Running *RunningStatus

	TriggerSourceChannel *int
	TriggerSlope         *TriggerSlope
	TriggerMode          *TriggerMode
	TriggerLevel         *byte
	TriggerLevelWindow   *Window

	Awg AwgState
}

// NewShadow returns a Shadow with NumChannels channel slots, all
// fields unset.
func NewShadow() *Shadow {
	s := &Shadow{channels: make(map[int]*ChannelState, NumChannels)}
	for ch := 1; ch <= NumChannels; ch++ {
		s.channels[ch] = &ChannelState{}
	}
	return s
}

// Channel returns the mutable state for channel ch. ch must be in
// 1..NumChannels; any other key is a programming error, surfaced as a
// panic since every caller of Channel is internal driver code that
// has already validated ch against the public {1,2} precondition.
func (s *Shadow) Channel(ch int) *ChannelState {
	cs, ok := s.channels[ch]
	if !ok {
		panic(fmt.Sprintf("scopecfg: channel %d not in 1..%d", ch, NumChannels))
	}
	return cs
}
