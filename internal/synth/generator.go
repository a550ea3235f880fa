// Package synth produces the synthetic equipment and vehicle metrics behind the dashboard charts.
//
// Every keyed operation looks its key up in Profiles and reports ErrUnknownKey instead of
// returning a partially built result. Randomised operations draw from the Generator's Source,
// so a seeded Generator yields reproducible output.
package synth

import (
	"time"
)

const (
	MaxDays        = 365
	MaxModelPoints = 365

	DefaultScanDelay = 2500 * time.Millisecond
)

type Generator struct {
	src       Source
	profiles  *Profiles
	now       func() time.Time
	scanDelay time.Duration
}

type Option func(*Generator)

// WithClock overrides the clock used to date predictive samples.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithScanDelay(d time.Duration) Option {
	return func(g *Generator) { g.scanDelay = d }
}

// New builds a Generator. A nil profiles argument selects DefaultProfiles.
func New(src Source, profiles *Profiles, opts ...Option) *Generator {
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	g := &Generator{
		src:       &lockedSource{src: src},
		profiles:  profiles,
		now:       time.Now,
		scanDelay: DefaultScanDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Profiles() *Profiles { return g.profiles }
