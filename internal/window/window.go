// Package window slices numeric series and character text into fixed-width
// input windows paired with the value that immediately follows each window.
//
// All functions are pure: they never retain or mutate the caller's data.
package window

import "errors"

// ErrInvalidConfig is returned when a window does not fit the sequence it is
// applied to, or a stride/fraction parameter is out of range.
var ErrInvalidConfig = errors.New("window: invalid configuration")
