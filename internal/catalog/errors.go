package catalog

import "fmt"

// DataError reports a malformed or missing catalog entry. It is raised
// only at load time; resolution never produces it. A single DataError
// aborts the whole catalog load so a half-loaded catalog can never skew
// method resolution.
type DataError struct {
	Entity string // e.g. `Method 'claude.npm'`
	Field  string // offending field, empty for entity-level problems
	Issue  string
}

func (e *DataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s %s", e.Entity, e.Issue)
	}
	return fmt.Sprintf("%s field '%s' %s", e.Entity, e.Field, e.Issue)
}

func fieldErr(entity, field, issue string) error {
	return &DataError{Entity: entity, Field: field, Issue: issue}
}

func entityErr(entity, issue string) error {
	return &DataError{Entity: entity, Issue: issue}
}
