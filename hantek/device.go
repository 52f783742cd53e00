package hantek

import (
	"github.com/tinylaboratory/hantek6022/scopecfg"
	"github.com/tinylaboratory/hantek6022/wire"
)

// Start begins scope acquisition.
func (d *Driver) Start() error {
	return d.setRunning(scopecfg.RunningStatusStart)
}

// Stop halts scope acquisition.
func (d *Driver) Stop() error {
	return d.setRunning(scopecfg.RunningStatusStop)
}

func (d *Driver) setRunning(status scopecfg.RunningStatus) error {
	action := "scope " + status.String()
	err := d.send(action, wire.FuncScopeSetting, wire.CmdStartStop, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(status.Raw())
	})
	if err != nil {
		return err
	}
	s := status
	d.shadow.Running = &s
	return nil
}

// SetDeviceFunction selects which subsystem (Scope/AWG/DMM) is active
// on-screen.
func (d *Driver) SetDeviceFunction(f scopecfg.DeviceFunction) error {
	err := d.send("set device function", wire.FuncScreenSetting, 0, func(b *wire.Builder) *wire.Builder {
		return b.SetVal0(f.Raw())
	})
	if err != nil {
		return err
	}
	fn := f
	d.shadow.DeviceFunction = &fn
	return nil
}
