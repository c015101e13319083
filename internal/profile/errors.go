package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports that a profile id does not resolve to a file. Wrapped
// errors carry the id; match with errors.Is.
var ErrNotFound = errors.New("profile not found")

// ParseError reports a document that is not valid JSON at all.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Issue is a single validation finding inside a document.
type Issue struct {
	Field  string
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Reason)
}

// SchemaError reports a document that parsed but does not have the required
// shape. It aggregates every issue found rather than stopping at the first.
type SchemaError struct {
	Path   string
	Issues []Issue
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	if e.Path == "" {
		return fmt.Sprintf("invalid profile: %s", strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("invalid profile %s: %s", e.Path, strings.Join(msgs, "; "))
}
