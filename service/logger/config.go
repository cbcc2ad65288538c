// Package logger builds zap cores from a declarative config so a
// service can fan its log streams out to different files at different
// levels, e.g. access logs to a rotated file and everything else to
// stderr.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Type string

const (
	// TypeWaterfall sends each entry to the first child that accepts
	// it, in order.
	TypeWaterfall Type = "waterfall"
	// TypeTee sends each entry to every child that accepts it.
	TypeTee Type = "tee"
	// TypeFile writes entries to a single file.  This is the default
	// for a config with no children.
	TypeFile Type = "file"
)

type Config struct {
	Type Type   `yaml:"type,omitempty"`
	Name string `yaml:"name,omitempty"`
	Path string `yaml:"path,omitempty"`
	// Level defaults to info.
	Level zapcore.Level `yaml:"level,omitempty"`
	Mode  FileMode      `yaml:"mode,omitempty"`
	// DevMode panics the process on DPanic-level entries, which is
	// how a development build surfaces caught handler panics.
	DevMode bool `yaml:"devmode,omitempty"`
	// Children configure the cores a waterfall or tee distributes to.
	Children []Config `yaml:"children,omitempty"`
}

// NewCore creates a zapcore.Core from conf.  A Name restricts a file
// core to entries logged through a logger of exactly that name, which
// is how a waterfall child claims a stream like "http.access" before
// the catch-all child sees it.
func NewCore(conf Config) (zapcore.Core, error) {
	switch conf.Type {
	case TypeWaterfall:
		cores, err := newChildCores(conf.Children)
		if err != nil {
			return nil, err
		}
		return NewWaterfall(cores...), nil
	case TypeTee:
		cores, err := newChildCores(conf.Children)
		if err != nil {
			return nil, err
		}
		return zapcore.NewTee(cores...), nil
	}
	w, err := OpenFile(conf.Path, conf.Mode)
	if err != nil {
		return nil, err
	}
	encoderConf := zap.NewProductionEncoderConfig()
	encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConf), w, conf.Level)
	if conf.Name != "" {
		core = newNameFilterCore(core, conf.Name)
	}
	return core, nil
}

func newChildCores(children []Config) ([]zapcore.Core, error) {
	var cores []zapcore.Core
	for _, child := range children {
		core, err := NewCore(child)
		if err != nil {
			return nil, err
		}
		cores = append(cores, core)
	}
	return cores, nil
}
