// Package origin captures borrow call sites for conflict diagnostics.
package origin

import (
	"runtime"
	"strconv"
)

// Capture returns "file:line" for the frame skip levels above the
// caller: Capture(0) is the caller itself, Capture(1) its caller, and
// so on. Returns "unknown" when the stack is not that deep.
func Capture(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return file + ":" + strconv.Itoa(line)
}
