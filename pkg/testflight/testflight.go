// Package testflight models the read-only view of an App Store Connect
// application as seen through TestFlight: the app record and its build trains.
package testflight

import "time"

// App is an application record fetched from the console.
type App struct {
	ID       string
	BundleID string
	Name     string
	Trains   *Trains
}

// Build is a single uploaded build within a train.
type Build struct {
	// BuildVersion is the CFBundleVersion as uploaded, e.g. "42" or "42.1".
	BuildVersion string
	UploadedDate time.Time
}

// Train holds all builds uploaded for one release version.
type Train struct {
	Version string
	Builds  []Build
}

// Trains maps release versions to trains while remembering the order in
// which versions were added. The console lists releases oldest first, so the
// last version added is the most recent release.
type Trains struct {
	versions []string
	byVer    map[string]*Train
}

// NewTrains builds an ordered mapping from trains in service order.
// A version that appears twice keeps its first position and the later train.
func NewTrains(trains ...*Train) *Trains {
	t := &Trains{byVer: make(map[string]*Train, len(trains))}
	for _, train := range trains {
		t.Add(train)
	}
	return t
}

// Add appends a train. Nil trains are ignored.
func (t *Trains) Add(train *Train) {
	if train == nil {
		return
	}
	if t.byVer == nil {
		t.byVer = make(map[string]*Train)
	}
	if _, exists := t.byVer[train.Version]; !exists {
		t.versions = append(t.versions, train.Version)
	}
	t.byVer[train.Version] = train
}

// Get returns the train for version, if any.
func (t *Trains) Get(version string) (*Train, bool) {
	if t == nil {
		return nil, false
	}
	train, ok := t.byVer[version]
	return train, ok
}

// Versions returns the versions in insertion order.
func (t *Trains) Versions() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.versions))
	copy(out, t.versions)
	return out
}

// Last returns the most recently added version.
func (t *Trains) Last() (string, bool) {
	if t.Len() == 0 {
		return "", false
	}
	return t.versions[len(t.versions)-1], true
}

// Len reports the number of trains.
func (t *Trains) Len() int {
	if t == nil {
		return 0
	}
	return len(t.versions)
}
