package glob

import (
	"fmt"
)

// InvalidGlobError reports a glob that can not be compiled because it lacks the protocol separator.
type InvalidGlobError struct {
	Glob string
}

func (e *InvalidGlobError) Error() string {
	return fmt.Sprintf("invalid glob '%s', missing protocol separator '%s'", e.Glob, Separator)
}
