package network

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidNetworkError reports a malformed comparator or an invalid
// argument to a network generator.
type InvalidNetworkError struct {
	// Index of the offending comparator, or -1 when the error is about
	// generator arguments rather than a particular comparator.
	Index      int
	Comparator Comparator
	Reason     string
}

func (e *InvalidNetworkError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid network: %s", e.Reason)
	}
	return fmt.Sprintf("invalid network: comparator %d %s: %s", e.Index, e.Comparator, e.Reason)
}

// InvalidArgument returns an *InvalidNetworkError not tied to any
// comparator.
func InvalidArgument(format string, args ...interface{}) error {
	return &InvalidNetworkError{Index: -1, Reason: fmt.Sprintf(format, args...)}
}

// ChannelGapError is returned when a network leaves some channel below
// its largest index unused.
type ChannelGapError struct {
	Channels int
	Missing  []int
}

func (e *ChannelGapError) Error() string {
	s := make([]string, len(e.Missing))
	for i, ch := range e.Missing {
		s[i] = fmt.Sprintf("%d", ch)
	}
	return fmt.Sprintf("network spans %d channels but never uses channel(s) %s", e.Channels, strings.Join(s, ", "))
}

// IsInvalidNetwork reports whether err is, or wraps, an
// *InvalidNetworkError.
func IsInvalidNetwork(err error) bool {
	var target *InvalidNetworkError
	return errors.As(err, &target)
}

// IsChannelGap reports whether err is, or wraps, a *ChannelGapError.
func IsChannelGap(err error) bool {
	var target *ChannelGapError
	return errors.As(err, &target)
}
