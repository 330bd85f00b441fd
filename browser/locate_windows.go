//go:build windows

package browser

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

func registeredPath(processName string) (string, bool) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows\CurrentVersion\App Paths\`+processName, registry.QUERY_VALUE)
	if err != nil {
		log.Debug().Err(err).Str("process", processName).Msg("browser is not registered in App Paths")
		return "", false
	}
	defer k.Close()

	p, _, err := k.GetStringValue("")
	if err != nil || p == "" {
		return "", false
	}
	return p, true
}
