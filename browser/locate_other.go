//go:build !windows

package browser

func registeredPath(string) (string, bool) {
	return "", false
}
