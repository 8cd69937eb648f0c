// Package flagutil provides flag.Value implementations for command-line
// flags that need more than string/int/bool parsing.
package flagutil

import "github.com/coreos/gzdyn/capnslog"

// LogLevelFlag parses a capnslog.LogLevel from any of the spellings
// capnslog.ParseLevel accepts ("INFO", "3", "I", ...). This type implements
// the flag.Value interface.
type LogLevelFlag struct {
	val capnslog.LogLevel
	set bool
}

func (f *LogLevelFlag) Level() capnslog.LogLevel {
	if !f.set {
		return capnslog.INFO
	}
	return f.val
}

func (f *LogLevelFlag) Set(v string) error {
	l, err := capnslog.ParseLevel(v)
	if err != nil {
		return err
	}
	f.val = l
	f.set = true
	return nil
}

func (f *LogLevelFlag) String() string {
	if !f.set {
		return "INFO"
	}
	return f.val.Char()
}
