package browser

import (
	"os/exec"
)

// Locate returns the path of the browser executable named processName.
// It asks the system registry first where there is one, then PATH, and falls back to the bare name.
func Locate(processName string) string {
	if p, ok := registeredPath(processName); ok {
		return p
	}
	if p, err := exec.LookPath(processName); err == nil {
		return p
	}
	return processName
}
