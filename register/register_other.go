//go:build !windows

package register

func Register(exePath string) error {
	return ErrUnsupported
}

func Unregister() error {
	return ErrUnsupported
}
