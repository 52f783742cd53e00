package scopecfg

import "testing"

func TestNewShadowHasAllChannelsUnset(t *testing.T) {
	s := NewShadow()
	for ch := 1; ch <= NumChannels; ch++ {
		cs := s.Channel(ch)
		if cs.Enabled != nil || cs.Scale != nil || cs.OffsetWindow != nil {
			t.Errorf("channel %d expected to be entirely unset at construction", ch)
		}
	}
}

func TestShadowChannelPanicsOnBadIndex(t *testing.T) {
	s := NewShadow()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for channel index 3")
		}
	}()
	s.Channel(3)
}
