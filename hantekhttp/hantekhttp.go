// Package hantekhttp wraps a hantek.Driver in an HTTP interface:
// decode a small JSON body, call the driver, respond with the
// driver's error or a short JSON result. This is a convenience
// transport, not a replacement for the library; nothing here owns
// process lifecycle or argument parsing.
package hantekhttp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/tinylaboratory/hantek6022/scopecfg"
)

// Driver is the subset of *hantek.Driver this package depends on,
// narrowed to an interface so handlers are testable without a real
// USB session.
type Driver interface {
	Start() error
	Stop() error
	SetDeviceFunction(scopecfg.DeviceFunction) error

	EnableChannel(ch int) error
	DisableChannel(ch int) error
	SetChannelCoupling(ch int, c scopecfg.Coupling) error
	SetChannelProbe(ch int, p scopecfg.Probe) error
	SetChannelScale(ch int, s scopecfg.Scale) error
	SetChannelOffsetWithAutoAdjustment(ch int, volts float32) error

	SetTimeScale(t scopecfg.TimeScale) error
	SetTimeOffsetWithAutoAdjustment(seconds float32) error
	SetTriggerSource(ch int) error
	SetTriggerSlope(s scopecfg.TriggerSlope) error
	SetTriggerMode(m scopecfg.TriggerMode) error
	SetTriggerLevelWithAutoAdjustment(volts float32) error

	Capture(channels []int, numSamples int) ([]byte, error)

	Shadow() *scopecfg.Shadow
}

// NewRouter builds a chi.Router exposing d's operations, one small
// handler per route, each decoding its own request body.
func NewRouter(d Driver) chi.Router {
	r := chi.NewRouter()
	r.Get("/status", getStatus(d))
	r.Post("/start", postStart(d))
	r.Post("/stop", postStop(d))
	r.Post("/device-function", postDeviceFunction(d))
	r.Post("/channel/enabled", postChannelEnabled(d))
	r.Post("/channel/coupling", postChannelCoupling(d))
	r.Post("/channel/probe", postChannelProbe(d))
	r.Post("/channel/scale", postChannelScale(d))
	r.Post("/channel/offset", postChannelOffset(d))
	r.Post("/time/scale", postTimeScale(d))
	r.Post("/time/offset", postTimeOffset(d))
	r.Post("/trigger/source", postTriggerSource(d))
	r.Post("/trigger/slope", postTriggerSlope(d))
	r.Post("/trigger/mode", postTriggerMode(d))
	r.Post("/trigger/level", postTriggerLevel(d))
	r.Post("/capture", postCapture(d))
	return r
}

func decodeOrBadRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func okOrInternalError(w http.ResponseWriter, err error) {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// statusResponse mirrors the exported fields of scopecfg.Shadow plus
// its per-channel state, built explicitly because Shadow keeps its
// channel map unexported: all mutation goes through the driver,
// including how it is read back out over HTTP.
type statusResponse struct {
	*scopecfg.Shadow
	Channels map[int]*scopecfg.ChannelState `json:"channels"`
}

// getStatus reports the driver's shadow configuration as JSON, the
// read-only introspection supplementing this device's otherwise
// write-only operation set.
func getStatus(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shadow := d.Shadow()
		resp := statusResponse{
			Shadow: shadow,
			Channels: map[int]*scopecfg.ChannelState{
				1: shadow.Channel(1),
				2: shadow.Channel(2),
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func postStart(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		okOrInternalError(w, d.Start())
	}
}

func postStop(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		okOrInternalError(w, d.Stop())
	}
}

type deviceFunctionPayload struct {
	Function scopecfg.DeviceFunction `json:"function"`
}

func postDeviceFunction(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p deviceFunctionPayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetDeviceFunction(p.Function))
	}
}

type channelEnabledPayload struct {
	Channel int  `json:"channel"`
	Enabled bool `json:"enabled"`
}

func postChannelEnabled(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p channelEnabledPayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		if p.Enabled {
			okOrInternalError(w, d.EnableChannel(p.Channel))
			return
		}
		okOrInternalError(w, d.DisableChannel(p.Channel))
	}
}

type channelCouplingPayload struct {
	Channel  int              `json:"channel"`
	Coupling scopecfg.Coupling `json:"coupling"`
}

func postChannelCoupling(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p channelCouplingPayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetChannelCoupling(p.Channel, p.Coupling))
	}
}

type channelProbePayload struct {
	Channel int           `json:"channel"`
	Probe   scopecfg.Probe `json:"probe"`
}

func postChannelProbe(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p channelProbePayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetChannelProbe(p.Channel, p.Probe))
	}
}

type channelScalePayload struct {
	Channel int           `json:"channel"`
	Scale   scopecfg.Scale `json:"scale"`
}

func postChannelScale(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p channelScalePayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetChannelScale(p.Channel, p.Scale))
	}
}

type channelOffsetPayload struct {
	Channel int     `json:"channel"`
	Volts   float32 `json:"volts"`
}

func postChannelOffset(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p channelOffsetPayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetChannelOffsetWithAutoAdjustment(p.Channel, p.Volts))
	}
}

type timeScalePayload struct {
	Scale scopecfg.TimeScale `json:"scale"`
}

func postTimeScale(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p timeScalePayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetTimeScale(p.Scale))
	}
}

type timeOffsetPayload struct {
	Seconds float32 `json:"seconds"`
}

func postTimeOffset(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p timeOffsetPayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetTimeOffsetWithAutoAdjustment(p.Seconds))
	}
}

type triggerSourcePayload struct {
	Channel int `json:"channel"`
}

func postTriggerSource(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p triggerSourcePayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetTriggerSource(p.Channel))
	}
}

type triggerSlopePayload struct {
	Slope scopecfg.TriggerSlope `json:"slope"`
}

func postTriggerSlope(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p triggerSlopePayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetTriggerSlope(p.Slope))
	}
}

type triggerModePayload struct {
	Mode scopecfg.TriggerMode `json:"mode"`
}

func postTriggerMode(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p triggerModePayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetTriggerMode(p.Mode))
	}
}

type triggerLevelPayload struct {
	Volts float32 `json:"volts"`
}

func postTriggerLevel(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p triggerLevelPayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		okOrInternalError(w, d.SetTriggerLevelWithAutoAdjustment(p.Volts))
	}
}

type capturePayload struct {
	Channels   []int `json:"channels"`
	NumSamples int   `json:"numSamples"`
}

type captureResponse struct {
	Data []byte `json:"data"`
}

// postCapture runs a single capture and returns the raw bytes
// base64-encoded inside a JSON envelope (encoding/json's default for
// []byte), matching the "no voltage decoding" non-goal: the client
// gets exactly the bytes the device produced.
func postCapture(d Driver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p capturePayload
		if !decodeOrBadRequest(w, r, &p) {
			return
		}
		data, err := d.Capture(p.Channels, p.NumSamples)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(captureResponse{Data: data}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
