// Package env resolves env(VAR) references in YAML configuration values.
//
// A reference is written env(NAME) or env(NAME:-fallback). Unset variables
// without a fallback are left in place so that validation can report them by
// field name with CheckResolved.
package env

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml/ast"
)

var refPattern = regexp.MustCompile(`env\(([A-Za-z_][A-Za-z0-9_]*)(?::-([^)]*))?\)`)

// Newlines and tabs are fine for multiline secrets, other control characters
// are not.
var badControlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(string) (string, bool)

// SubstituteNode resolves references in every scalar value below node using
// the process environment. Mapping keys are left untouched.
func SubstituteNode(node ast.Node) error {
	return SubstituteNodeWith(node, os.LookupEnv)
}

// SubstituteNodeWith is SubstituteNode with a custom lookup.
func SubstituteNodeWith(node ast.Node, lookup LookupFunc) error {
	for _, s := range collectValues(node, true, nil) {
		resolved, err := Expand(s.Value, lookup)
		if err != nil {
			return err
		}
		s.Value = resolved
	}
	return nil
}

// collectValues returns the string scalars that sit in value position.
func collectValues(node ast.Node, isValue bool, acc []*ast.StringNode) []*ast.StringNode {
	switch n := node.(type) {
	case nil:
		return acc
	case *ast.DocumentNode:
		return collectValues(n.Body, true, acc)
	case *ast.MappingNode:
		for _, v := range n.Values {
			acc = collectValues(v, isValue, acc)
		}
	case *ast.MappingValueNode:
		// n.Key is deliberately skipped
		acc = collectValues(n.Value, true, acc)
	case *ast.SequenceNode:
		for _, v := range n.Values {
			acc = collectValues(v, true, acc)
		}
	case *ast.TagNode:
		acc = collectValues(n.Value, isValue, acc)
	case *ast.AnchorNode:
		acc = collectValues(n.Value, isValue, acc)
	case *ast.LiteralNode:
		if isValue && n.Value != nil {
			acc = append(acc, n.Value)
		}
	case *ast.StringNode:
		if isValue {
			acc = append(acc, n)
		}
	}
	return acc
}

// Expand resolves the references in s.
func Expand(s string, lookup LookupFunc) (string, error) {
	var firstErr error
	out := refPattern.ReplaceAllStringFunc(s, func(ref string) string {
		m := refPattern.FindStringSubmatch(ref)
		name := m[1]
		value, ok := lookup(name)
		if !ok {
			if strings.Contains(ref, ":-") {
				return m[2]
			}
			return ref
		}
		if badControlChars.MatchString(value) && firstErr == nil {
			firstErr = fmt.Errorf("environment variable %s contains disallowed control characters", name)
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// Unresolved returns the names of variables still referenced in value.
func Unresolved(value string) []string {
	var names []string
	for _, m := range refPattern.FindAllStringSubmatch(value, -1) {
		names = append(names, m[1])
	}
	return names
}

// CheckResolved reports the first unresolved reference in value, e.g.
// "account.username: environment variable ITUNESCONNECT_USER is not set".
func CheckResolved(value, field string) error {
	if names := Unresolved(value); len(names) > 0 {
		return fmt.Errorf("%s: environment variable %s is not set", field, names[0])
	}
	return nil
}
