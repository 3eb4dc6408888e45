// Package shared holds values that one step of an automation run publishes
// for later steps of the same run.
package shared

import "sort"

// LatestTestflightBuildNumber is the key under which the latest TestFlight
// build number is published.
const LatestTestflightBuildNumber = "LATEST_TESTFLIGHT_BUILD_NUMBER"

// Values is a last-writer-wins key/value store scoped to one run.
// It is not safe for concurrent writers.
type Values struct {
	m map[string]interface{}
}

// NewValues creates an empty store.
func NewValues() *Values {
	return &Values{m: make(map[string]interface{})}
}

// Set stores value under key, replacing any previous value.
func (v *Values) Set(key string, value interface{}) {
	if v.m == nil {
		v.m = make(map[string]interface{})
	}
	v.m[key] = value
}

// Get returns the value stored under key.
func (v *Values) Get(key string) (interface{}, bool) {
	value, ok := v.m[key]
	return value, ok
}

// Int returns the value under key if it is an int.
func (v *Values) Int(key string) (int, bool) {
	value, ok := v.m[key]
	if !ok {
		return 0, false
	}
	n, ok := value.(int)
	return n, ok
}

// Keys returns the stored keys in sorted order.
func (v *Values) Keys() []string {
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
