package testutil

import (
	"strings"

	"github.com/macrat/foxroute/config"
)

func MustParsePattern(pattern string) config.Pattern {
	var p config.Pattern
	if err := (&p).UnmarshalText([]byte(pattern)); err != nil {
		panic(err.Error())
	}
	return p
}

func MustParseRegexp(pattern string) config.Regexp {
	var r config.Regexp
	if err := (&r).UnmarshalText([]byte(pattern)); err != nil {
		panic(err.Error())
	}
	return r
}

// MustLoadConfig reads a JSON configuration or panics.
func MustLoadConfig(raw string) *config.Config {
	var c config.Config
	if err := c.ReadReader(strings.NewReader(raw)); err != nil {
		panic(err.Error())
	}
	return &c
}
