// Package flagutil provides small flag.Value implementations for
// cmd/gzinflate, in the shape coreos/pkg/flagutil's IPv4Flag uses: a
// private field, a Set/String pair, and an accessor.
package flagutil

import (
	"errors"
	"strings"

	"github.com/coreospkg/gzinflate/internal/corelog"
)

// LevelFlag parses a --log-level value into a corelog.LogLevel.
type LevelFlag struct {
	val corelog.LogLevel
	set bool
}

func (f *LevelFlag) Level() corelog.LogLevel {
	if !f.set {
		return corelog.CRITICAL
	}
	return f.val
}

func (f *LevelFlag) Set(v string) error {
	if v == "" {
		return errors.New("flagutil: empty log level")
	}
	f.val = corelog.ParseLevel(strings.ToUpper(v))
	f.set = true
	return nil
}

func (f *LevelFlag) String() string {
	if !f.set {
		return ""
	}
	return f.val.Char()
}

// CaseSet parses a comma-separated --only list into a membership set.
type CaseSet struct {
	names map[string]bool
}

func (f *CaseSet) Set(v string) error {
	if f.names == nil {
		f.names = make(map[string]bool)
	}
	for _, name := range strings.Split(v, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			f.names[name] = true
		}
	}
	return nil
}

func (f *CaseSet) String() string {
	names := make([]string, 0, len(f.names))
	for n := range f.names {
		names = append(names, n)
	}
	return strings.Join(names, ",")
}

// Empty reports whether no names were ever set, meaning "no restriction".
func (f *CaseSet) Empty() bool {
	return len(f.names) == 0
}

// Allows reports whether name passes the --only filter.
func (f *CaseSet) Allows(name string) bool {
	if f.Empty() {
		return true
	}
	return f.names[name]
}
