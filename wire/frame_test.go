package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuilderBytesPayload(t *testing.T) {
	got := NewBuilder().
		Func(FuncScopeSetting).
		Cmd(CmdStartStop).
		SetBytes(0x01, 0x02, 0x03, 0x04).
		Build()
	want := [FrameLen]byte{0x00, 0x0A, 0x00, 0x00, 0x0C, 0x01, 0x02, 0x03, 0x04, 0x00}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderWordsPayload(t *testing.T) {
	got := NewBuilder().
		Func(FuncAWGSetting).
		Cmd(CmdAwgAmplitude).
		SetWords(1250, 1).
		Build()
	want := [FrameLen]byte{0x00, 0x0A, 0x02, 0x00, 0x02, 0xE2, 0x04, 0x01, 0x00, 0x00}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderU32Payload(t *testing.T) {
	got := NewBuilder().
		Func(FuncScopeCapture).
		Cmd(CmdStartRecv).
		SetU32(0x01020304).
		Build()
	want := [FrameLen]byte{0x00, 0x0A, 0x00, 0x01, 0x16, 0x04, 0x03, 0x02, 0x01, 0x00}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWithUnsetFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Build to panic when Func was never set")
		}
	}()
	NewBuilder().Cmd(CmdStartStop).SetVal0(1).Build()
}

func TestScenarioStartStop(t *testing.T) {
	start := NewBuilder().Func(FuncScopeSetting).Cmd(CmdStartStop).SetVal0(1).Build()
	wantStart := [FrameLen]byte{0x00, 0x0A, 0x00, 0x00, 0x0C, 0x01, 0x00, 0x00, 0x00, 0x00}
	if diff := cmp.Diff(wantStart, start); diff != "" {
		t.Errorf("start frame mismatch (-want +got):\n%s", diff)
	}

	stop := NewBuilder().Func(FuncScopeSetting).Cmd(CmdStartStop).SetVal0(0).Build()
	wantStop := [FrameLen]byte{0x00, 0x0A, 0x00, 0x00, 0x0C, 0x00, 0x00, 0x00, 0x00, 0x00}
	if diff := cmp.Diff(wantStop, stop); diff != "" {
		t.Errorf("stop frame mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioSetDeviceFunctionAWG(t *testing.T) {
	got := NewBuilder().Func(FuncScreenSetting).Cmd(0).SetVal0(ScreenAWG).Build()
	want := [FrameLen]byte{0x00, 0x0A, 0x03, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("set-device-function frame mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioEnableChannel2(t *testing.T) {
	got := NewBuilder().Func(FuncScopeSetting).Cmd(ChannelCmd(CmdEnableCh1, 2)).SetVal0(1).Build()
	want := [FrameLen]byte{0x00, 0x0A, 0x00, 0x00, 0x06, 0x01, 0x00, 0x00, 0x00, 0x00}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("enable-channel-2 frame mismatch (-want +got):\n%s", diff)
	}
}

func TestChannelCmdPanicsOnBadChannel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected ChannelCmd to panic for channel 3")
		}
	}()
	ChannelCmd(CmdEnableCh1, 3)
}
