package buildnumber

import (
	"fmt"
	"math"
	"strings"

	"github.com/macreleaser/buildtrain/pkg/testflight"
	"github.com/sirupsen/logrus"
)

// ParseBuildVersion converts a build version using leading-numeric-prefix
// semantics: leading whitespace and an optional sign are accepted, digits
// (with single underscores between them) are consumed, and parsing stops at
// the first other character. "42" and "42.1" give 42, "abc" and "" give 0.
// ok reports whether at least one digit was read. Values saturate at the
// bounds of int.
func ParseBuildVersion(s string) (n int, ok bool) {
	s = strings.TrimLeft(s, " \t\n\v\f\r")

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	limit := math.MaxInt
	digits := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' && digits > 0 && i+1 < len(s) && isDigit(s[i+1]) {
			continue
		}
		if !isDigit(c) {
			break
		}
		d := int(c - '0')
		if n > (limit-d)/10 {
			n = limit
		} else {
			n = n*10 + d
		}
		digits++
	}

	if negative {
		n = -n
	}
	return n, digits > 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Lookup returns the train for version or an error wrapping ErrTrainNotFound.
func Lookup(trains *testflight.Trains, version string) (*testflight.Train, error) {
	train, ok := trains.Get(version)
	if !ok || train == nil {
		return nil, fmt.Errorf("%w for version %q", ErrTrainNotFound, version)
	}
	return train, nil
}

// Extractor reduces a build train to its highest build number.
//
// Build versions without a leading number count as 0 and only produce a
// warning, so they lose precedence instead of aborting. Strict turns them
// into an ErrMalformedBuildVersion error.
type Extractor struct {
	Strict bool
	Logger logrus.FieldLogger
}

// Latest returns the maximum numeric build version in train. The result does
// not depend on the order of the builds. An empty train is an error wrapping
// ErrNoBuilds.
func (e Extractor) Latest(train *testflight.Train) (int, error) {
	if train == nil {
		return 0, fmt.Errorf("%w: nil train", ErrTrainNotFound)
	}
	if len(train.Builds) == 0 {
		return 0, fmt.Errorf("%w for version %q", ErrNoBuilds, train.Version)
	}

	latest := math.MinInt
	for _, b := range train.Builds {
		n, ok := ParseBuildVersion(b.BuildVersion)
		if !ok {
			if e.Strict {
				return 0, fmt.Errorf("%w %q in version %q", ErrMalformedBuildVersion, b.BuildVersion, train.Version)
			}
			if e.Logger != nil {
				e.Logger.Warnf("Build version %q in version %s is not numeric, counting it as 0", b.BuildVersion, train.Version)
			}
		}
		if n > latest {
			latest = n
		}
	}

	if e.Logger != nil {
		e.Logger.Infof("Latest upload is build number: %d", latest)
	}
	return latest, nil
}
