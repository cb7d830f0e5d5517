package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/cpumon/internal/errors"
)

// FileConfig mirrors AppConfig for the YAML config file. Nil fields were
// not present in the file.
//
//	interval: 2s
//	duration: 1m
//	threshold: 85
//	listen: ":9100"
//	log_level: debug
type FileConfig struct {
	Interval       *time.Duration `yaml:"interval"`
	Duration       *time.Duration `yaml:"duration"`
	Threshold      *float64       `yaml:"threshold"`
	Output         *string        `yaml:"output"`
	JSON           *bool          `yaml:"json"`
	Quiet          *bool          `yaml:"quiet"`
	NoColor        *bool          `yaml:"no_color"`
	TUI            *bool          `yaml:"tui"`
	Listen         *string        `yaml:"listen"`
	FailOnOverload *bool          `yaml:"fail_on_overload"`
	LogLevel       *string        `yaml:"log_level"`
}

// LoadFile reads and strictly decodes a YAML config file. Unknown keys are
// rejected so typos do not go unnoticed.
func LoadFile(path string) (FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("open config file: %v", err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, apperrors.NewConfigError("parse config file %s: %v", path, err)
	}
	return fc, nil
}

// apply copies file values into c for every field whose flag was not set
// explicitly.
func (fc FileConfig) apply(c *AppConfig, fs *flag.FlagSet) {
	setUnlessFlagged(&c.Interval, fc.Interval, fs, "interval")
	setUnlessFlagged(&c.Duration, fc.Duration, fs, "duration")
	setUnlessFlagged(&c.Threshold, fc.Threshold, fs, "threshold")
	setUnlessFlagged(&c.OutputFile, fc.Output, fs, "output", "o")
	setUnlessFlagged(&c.Listen, fc.Listen, fs, "listen")
	setUnlessFlagged(&c.LogLevel, fc.LogLevel, fs, "log-level")
	setUnlessFlagged(&c.JSON, fc.JSON, fs, "json")
	setUnlessFlagged(&c.Quiet, fc.Quiet, fs, "quiet", "q")
	setUnlessFlagged(&c.NoColor, fc.NoColor, fs, "no-color")
	setUnlessFlagged(&c.TUI, fc.TUI, fs, "tui")
	setUnlessFlagged(&c.FailOnOverload, fc.FailOnOverload, fs, "fail-on-overload")
}

func setUnlessFlagged[T any](dst, v *T, fs *flag.FlagSet, flags ...string) {
	if v != nil && !isFlagSetAny(fs, flags...) {
		*dst = *v
	}
}
