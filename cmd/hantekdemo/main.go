// Command hantekdemo opens a Hantek 6022-family scope, claims it, runs
// a handful of representative operations, and prints what happened.
// It is a smoke test, not an argument-parsing front end: argument
// parsing and log-level setup are explicitly out of scope for the
// driver, so this binary carries just enough configuration loading to
// pick a timeout and VID/PID override, layering koanf over a plain
// config struct.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	"github.com/tinylaboratory/hantek6022/hantek"
	"github.com/tinylaboratory/hantek6022/scopecfg"
	"github.com/tinylaboratory/hantek6022/sessioncfg"
	"github.com/tinylaboratory/hantek6022/usb"
)

// ConfigFileName is the optional override file; its absence is not an
// error.
const ConfigFileName = "hantek-demo.yml"

var k = koanf.New(".")

func loadConfig() sessioncfg.Config {
	defaults := sessioncfg.Default()
	if err := k.Load(structs.Provider(defaults, "yaml"), nil); err != nil {
		log.Fatalf("loading compiled-in defaults: %v", err)
	}
	if err := k.Load(file.Provider(ConfigFileName), yaml.Parser()); err != nil {
		if !strings.Contains(err.Error(), "no such") {
			log.Fatalf("loading %s: %v", ConfigFileName, err)
		}
	}
	var cfg sessioncfg.Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		log.Fatalf("unmarshaling config: %v", err)
	}
	return cfg
}

func main() {
	cfg := loadConfig()

	ctx := usb.NewGousbContext()
	defer ctx.Close()

	d, err := hantek.Open(ctx, cfg.OpenTimeout,
		hantek.WithVIDPID(cfg.VID, cfg.PID),
		hantek.WithEndpoints(cfg.WriteEndpoint, cfg.ReadEndpoint),
	)
	if err != nil {
		color.Red("open failed: %s", err)
		os.Exit(1)
	}
	defer d.Close()

	if err := d.Claim(); err != nil {
		color.Red("claim failed: %s", err)
		os.Exit(1)
	}
	defer d.Release()

	color.Green("claimed device")
	fmt.Println(d.PrettyPrintedDeviceInfo())

	if err := d.EnableChannel(1); err != nil {
		color.Red("enable channel 1 failed: %s", err)
		os.Exit(1)
	}
	if err := d.SetChannelScale(1, scopecfg.Scale1V); err != nil {
		color.Red("set channel 1 scale failed: %s", err)
		os.Exit(1)
	}
	if err := d.SetChannelOffsetWithAutoAdjustment(1, 0); err != nil {
		color.Red("set channel 1 offset failed: %s", err)
		os.Exit(1)
	}
	if err := d.Start(); err != nil {
		color.Red("start failed: %s", err)
		os.Exit(1)
	}
	color.Green("acquisition started")

	data, err := d.Capture([]int{1}, 1024)
	if err != nil {
		color.Red("capture failed: %s", err)
		os.Exit(1)
	}
	color.Green("captured %d bytes", len(data))

	if err := d.Stop(); err != nil {
		color.Red("stop failed: %s", err)
		os.Exit(1)
	}
	color.Green("acquisition stopped")
}
