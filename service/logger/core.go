package logger

import (
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

type waterfallCore []zapcore.Core

// NewWaterfall creates a new core that distributes logs to the underlying cores
// in a waterfall pattern; for each log entry the core will iterate through each
// core, in order, stopping when it finds a core that will accept the log entry.
func NewWaterfall(cores ...zapcore.Core) zapcore.Core {
	switch len(cores) {
	case 0:
		return zapcore.NewNopCore()
	case 1:
		return cores[0]
	default:
		return waterfallCore(cores)
	}
}

func (wc waterfallCore) With(fields []zapcore.Field) zapcore.Core {
	clone := make(waterfallCore, len(wc))
	for i := range wc {
		clone[i] = wc[i].With(fields)
	}
	return clone
}

func (wc waterfallCore) Enabled(lvl zapcore.Level) bool {
	for i := range wc {
		if wc[i].Enabled(lvl) {
			return true
		}
	}
	return false
}

func (wc waterfallCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	for i := range wc {
		if out := wc[i].Check(ent, nil); out != nil {
			return ce.AddCore(ent, wc[i])
		}
	}
	return ce
}

func (wc waterfallCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	var err error
	for i := range wc {
		err = multierr.Append(err, wc[i].Write(ent, fields))
	}
	return err
}

func (wc waterfallCore) Sync() error {
	var err error
	for i := range wc {
		err = multierr.Append(err, wc[i].Sync())
	}
	return err
}

// nameFilterCore accepts only entries logged under a specific logger
// name.
type nameFilterCore struct {
	zapcore.Core
	name string
}

func newNameFilterCore(core zapcore.Core, name string) zapcore.Core {
	return &nameFilterCore{core, name}
}

func (c *nameFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &nameFilterCore{c.Core.With(fields), c.name}
}

func (c *nameFilterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.LoggerName != c.name {
		return ce
	}
	return c.Core.Check(ent, ce)
}
