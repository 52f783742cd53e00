// Package sessioncfg holds the YAML-loadable defaults a host process
// feeds into hantek.Open: the discovery timeout, an optional VID/PID
// override for bench testing against a clone device, and the bulk
// endpoint numbers.
package sessioncfg

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the set of knobs a deployment may want to change without
// recompiling: everything the driver otherwise hardcodes for the
// single supported device family.
type Config struct {
	// OpenTimeout is the timeout handed to hantek.Open, which stores it
	// on the driver and the USB session. No USB control or bulk
	// transfer is bounded by it.
	OpenTimeout time.Duration `yaml:"open_timeout"`

	// VID and PID override the compiled-in device identity; this exists
	// for testing against a USB-ID-patched clone, not for supporting
	// other hardware. Zero is not treated specially: it is matched as
	// the ID it names.
	VID uint16 `yaml:"vid"`
	PID uint16 `yaml:"pid"`

	// WriteEndpoint and ReadEndpoint override the compiled-in bulk
	// endpoint addresses used for every command and capture read, for
	// the same bench-clone scenario VID/PID serve.
	WriteEndpoint int `yaml:"write_endpoint"`
	ReadEndpoint  int `yaml:"read_endpoint"`
}

// Default returns the compiled-in configuration matching the device's
// known factory addressing.
func Default() Config {
	return Config{
		OpenTimeout:   2 * time.Second,
		VID:           0x0483,
		PID:           0x2D42,
		WriteEndpoint: 0x02,
		ReadEndpoint:  0x81,
	}
}

// LoadYaml reads a Config from a YAML file at path, starting from
// Default() so a partial file only overrides the fields it sets.
func LoadYaml(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&cfg)
	return cfg, err
}
