package validate

import (
	"fmt"
	"net/url"
	"time"
)

// RequiredString validates that a string field is not empty
func RequiredString(value, field string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// RequiredTogether validates that either all or none of the fields are set.
// fields maps field names to values.
func RequiredTogether(fields map[string]string, order ...string) error {
	var set, missing []string
	for _, name := range order {
		if fields[name] == "" {
			missing = append(missing, name)
		} else {
			set = append(set, name)
		}
	}
	if len(set) > 0 && len(missing) > 0 {
		return fmt.Errorf("%s is required when %s is set", missing[0], set[0])
	}
	return nil
}

// HTTPURL validates that an optional field is an absolute http(s) URL
func HTTPURL(value, field string) error {
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid value for %s: %s (scheme must be http or https)", field, value)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid value for %s: %s (missing host)", field, value)
	}
	return nil
}

// NonNegativeDuration validates that a duration field is not negative
func NonNegativeDuration(value time.Duration, field string) error {
	if value < 0 {
		return fmt.Errorf("%s must not be negative, got %s", field, value)
	}
	return nil
}
