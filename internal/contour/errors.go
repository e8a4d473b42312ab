package contour

import "fmt"

// InvalidLevelListError is returned when the requested level list is empty,
// holds non-finite values or is not strictly increasing.
type InvalidLevelListError struct {
	Reason string
}

func (e *InvalidLevelListError) Error() string {
	return fmt.Sprintf("invalid level list: %s", e.Reason)
}

// TopologyError reports an internal invariant violation during interval
// assembly. It indicates inconsistent bounding curves, not a user error.
type TopologyError struct {
	Reason string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology error: %s", e.Reason)
}
