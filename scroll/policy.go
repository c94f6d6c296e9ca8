package scroll

import "fmt"

// Policy selects how the scroll offset is derived on each render pass.
// Exactly one policy is active per component; the follow policies
// (AutoScroll, ScrollToEnd, Sticky) are mutually exclusive by
// construction, since a component stores a single Policy value.
type Policy int

const (
	// PolicyNone leaves the offset alone; it only changes through
	// explicit scroll operations.
	PolicyNone Policy = iota

	// PolicyAutoScroll keeps the selected item inside the viewport.
	PolicyAutoScroll

	// PolicyScrollToEnd pins the viewport to the end of the content on
	// every render, overriding manual scrolling.
	PolicyScrollToEnd

	// PolicySticky follows the end of the content like ScrollToEnd, but
	// pauses when the user scrolls away from the bottom and resumes when
	// they return to it.
	PolicySticky
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicyAutoScroll:
		return "autoscroll"
	case PolicyScrollToEnd:
		return "scrolltoend"
	case PolicySticky:
		return "sticky"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ConfigError reports an attempt to enable a follow policy while a
// different one is already active. It is returned synchronously from the
// offending configuration call; it is a programmer error and is never
// retried or deferred to render time.
type ConfigError struct {
	Active    Policy
	Requested Policy
}

// Error implements error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("scroll: policy %s requested while %s is active", e.Requested, e.Active)
}

// CheckPolicy validates a policy change from active to requested.
// Re-enabling the active policy or switching to PolicyNone is always
// allowed; enabling a second follow policy while one is active is not.
func CheckPolicy(active, requested Policy) error {
	if requested == PolicyNone || requested == active || active == PolicyNone {
		return nil
	}
	return &ConfigError{Active: active, Requested: requested}
}
