//go:build windows

package register

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

// Register writes the URL and HTML handlers for exePath. Stale entries are removed first.
func Register(exePath string) error {
	if err := Unregister(); err != nil {
		return err
	}

	log.Info().Str("path", exePath).Msg("register executable")

	for _, v := range Values(exePath) {
		k, _, err := registry.CreateKey(registry.CURRENT_USER, v.Key, registry.ALL_ACCESS)
		if err != nil {
			return err
		}
		err = k.SetStringValue(v.Name, v.Value)
		k.Close()
		if err != nil {
			return err
		}
	}

	log.Info().Msg(Name + " registered as a browser. Open Settings > Default Apps to set it as default")
	return nil
}

// Unregister removes everything Register wrote. Missing keys are ignored.
func Unregister() error {
	for _, key := range []string{
		classesKey + URLProgID,
		classesKey + HTMLProgID,
		clientKey,
	} {
		deleteTree(registry.CURRENT_USER, key)
	}

	if k, err := registry.OpenKey(registry.CURRENT_USER, registeredKey, registry.ALL_ACCESS); err == nil {
		k.DeleteValue(Name)
		k.Close()
	}

	log.Info().Msg(Name + " unregistered")
	return nil
}

func deleteTree(root registry.Key, path string) {
	k, err := registry.OpenKey(root, path, registry.ALL_ACCESS)
	if err != nil {
		return
	}
	names, _ := k.ReadSubKeyNames(-1)
	k.Close()

	for _, name := range names {
		deleteTree(root, path+`\`+name)
	}
	registry.DeleteKey(root, path)
}
