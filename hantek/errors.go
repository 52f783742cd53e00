package hantek

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// HantekUsbError wraps a transport failure with a short human tag
// naming the operation that failed. FailedAction is intentionally
// brief ("set scale channel 1", "capture") rather than a full
// sentence.
type HantekUsbError struct {
	Inner        error
	FailedAction string
}

func (e *HantekUsbError) Error() string {
	return fmt.Sprintf("hantek: %s: %s", e.FailedAction, e.Inner)
}

func (e *HantekUsbError) Unwrap() error { return e.Inner }

func wrapUsbErr(action string, err error) error {
	if err == nil {
		return nil
	}
	return &HantekUsbError{Inner: errors.WithStack(err), FailedAction: action}
}

// ChannelAdjustmentError is returned when an auto-adjusted channel
// offset setter is called but the channel's offset window is absent
// or not usable.
type ChannelAdjustmentError struct {
	Channel int
}

func (e *ChannelAdjustmentError) Error() string {
	return fmt.Sprintf("hantek: channel %d offset adjustment window is unavailable", e.Channel)
}

// TimeOffsetAdjustmentError is returned when the auto-adjusted time
// offset setter is called but the time-offset window is absent or not
// usable.
type TimeOffsetAdjustmentError struct{}

func (e *TimeOffsetAdjustmentError) Error() string {
	return "hantek: time offset adjustment window is unavailable"
}

// TriggerLevelAdjustmentError is returned when the auto-adjusted
// trigger level setter is called but the trigger-level window is
// absent or not usable, or when SetTriggerSource can't derive one
// because the source channel's scale isn't known yet.
type TriggerLevelAdjustmentError struct {
	Channel int
}

func (e *TriggerLevelAdjustmentError) Error() string {
	return fmt.Sprintf("hantek: trigger level adjustment window unavailable for channel %d", e.Channel)
}

// validateChannel aborts noisily if ch is not 1 or 2: a channel
// number outside {1,2} is a programmer error, never a runtime
// condition a caller should have to catch.
func validateChannel(ch int) {
	if ch != 1 && ch != 2 {
		panic(fmt.Sprintf("hantek: channel must be 1 or 2, got %d", ch))
	}
}

// validateFinite aborts noisily if x is NaN or +-Inf, for the same
// reason as validateChannel.
func validateFinite(name string, x float32) {
	if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
		panic(fmt.Sprintf("hantek: %s must be finite, got %v", name, x))
	}
}
