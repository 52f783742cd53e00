package hantekhttp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tinylaboratory/hantek6022/scopecfg"
)

// fakeDriver is a minimal, in-package stand-in for *hantek.Driver,
// recording the last call made to each method.
type fakeDriver struct {
	shadow *scopecfg.Shadow

	startCalled bool
	lastErr     error

	lastChannel int
	lastScale   scopecfg.Scale

	capturedChannels []int
	capturedSamples  int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{shadow: scopecfg.NewShadow()}
}

func (f *fakeDriver) Start() error { f.startCalled = true; return f.lastErr }
func (f *fakeDriver) Stop() error  { return f.lastErr }
func (f *fakeDriver) SetDeviceFunction(scopecfg.DeviceFunction) error { return f.lastErr }
func (f *fakeDriver) EnableChannel(ch int) error  { f.lastChannel = ch; return f.lastErr }
func (f *fakeDriver) DisableChannel(ch int) error { f.lastChannel = ch; return f.lastErr }
func (f *fakeDriver) SetChannelCoupling(ch int, c scopecfg.Coupling) error { return f.lastErr }
func (f *fakeDriver) SetChannelProbe(ch int, p scopecfg.Probe) error       { return f.lastErr }
func (f *fakeDriver) SetChannelScale(ch int, s scopecfg.Scale) error {
	f.lastChannel = ch
	f.lastScale = s
	return f.lastErr
}
func (f *fakeDriver) SetChannelOffsetWithAutoAdjustment(ch int, v float32) error { return f.lastErr }
func (f *fakeDriver) SetTimeScale(t scopecfg.TimeScale) error                    { return f.lastErr }
func (f *fakeDriver) SetTimeOffsetWithAutoAdjustment(s float32) error            { return f.lastErr }
func (f *fakeDriver) SetTriggerSource(ch int) error                              { return f.lastErr }
func (f *fakeDriver) SetTriggerSlope(s scopecfg.TriggerSlope) error              { return f.lastErr }
func (f *fakeDriver) SetTriggerMode(m scopecfg.TriggerMode) error                { return f.lastErr }
func (f *fakeDriver) SetTriggerLevelWithAutoAdjustment(v float32) error          { return f.lastErr }
func (f *fakeDriver) Capture(channels []int, numSamples int) ([]byte, error) {
	f.capturedChannels = channels
	f.capturedSamples = numSamples
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	return bytes.Repeat([]byte{0x2A}, numSamples*len(channels)), nil
}
func (f *fakeDriver) Shadow() *scopecfg.Shadow { return f.shadow }

func TestPostStartCallsDriver(t *testing.T) {
	fd := newFakeDriver()
	r := NewRouter(fd)
	req := httptest.NewRequest(http.MethodPost, "/start", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !fd.startCalled {
		t.Fatal("expected Start to be called")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestPostChannelScaleDecodesBody(t *testing.T) {
	fd := newFakeDriver()
	r := NewRouter(fd)
	body := bytes.NewBufferString(`{"channel":2,"scale":6}`)
	req := httptest.NewRequest(http.MethodPost, "/channel/scale", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	if fd.lastChannel != 2 || fd.lastScale != scopecfg.Scale1V {
		t.Fatalf("got channel=%d scale=%v, want channel=2 scale=Scale1V", fd.lastChannel, fd.lastScale)
	}
}

func TestPostChannelScaleBadBodyIsBadRequest(t *testing.T) {
	fd := newFakeDriver()
	r := NewRouter(fd)
	req := httptest.NewRequest(http.MethodPost, "/channel/scale", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPostCaptureReturnsData(t *testing.T) {
	fd := newFakeDriver()
	r := NewRouter(fd)
	body := bytes.NewBufferString(`{"channels":[1,2],"numSamples":4}`)
	req := httptest.NewRequest(http.MethodPost, "/capture", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	var resp captureResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Data) != 8 {
		t.Fatalf("len(resp.Data) = %d, want 8", len(resp.Data))
	}
	if fd.capturedSamples != 4 || len(fd.capturedChannels) != 2 {
		t.Fatalf("driver.Capture got channels=%v samples=%d", fd.capturedChannels, fd.capturedSamples)
	}
}

func TestGetStatusReportsChannels(t *testing.T) {
	fd := newFakeDriver()
	r := NewRouter(fd)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if _, ok := resp["channels"]; !ok {
		t.Fatal("expected \"channels\" key in status response")
	}
}
