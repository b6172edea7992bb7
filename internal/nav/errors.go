package nav

import "fmt"

// DuplicateIDError reports an AddTab whose id is already registered.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("tab %q already registered", e.ID)
}

// UnknownTabError reports an operation against an id that was never added.
// Suggestion, when non-empty, is the closest registered id.
type UnknownTabError struct {
	ID         string
	Suggestion string
}

func (e *UnknownTabError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown tab %q (closest match: %q)", e.ID, e.Suggestion)
	}
	return fmt.Sprintf("unknown tab %q", e.ID)
}

// InvalidStateError reports an operation the manager cannot perform in its
// current lifecycle state, e.g. activating when no tabs exist or mutating
// after Close.
type InvalidStateError struct {
	Op     string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
