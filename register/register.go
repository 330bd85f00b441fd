// Package register installs foxroute as a browser the operating system can offer as default.
package register

import (
	"errors"
)

const (
	Name        = "FoxRoute"
	DisplayName = "Fox Route"
	Description = "Routes URLs to Firefox using the active profile"

	URLProgID  = Name + "URL"
	HTMLProgID = Name + "HTML"

	classesKey      = `SOFTWARE\Classes\`
	clientKey       = `SOFTWARE\Clients\StartMenuInternet\` + Name
	capabilitiesKey = clientKey + `\Capabilities`
	registeredKey   = `SOFTWARE\RegisteredApplications`
)

var ErrUnsupported = errors.New("browser registration is only supported on Windows")

// Value is one registry value below HKEY_CURRENT_USER.
type Value struct {
	Key   string
	Name  string
	Value string
}

// Values returns every registry value written by Register for the executable at exePath.
func Values(exePath string) []Value {
	open := `"` + exePath + `" "%1"`

	return []Value{
		{classesKey + URLProgID, "", DisplayName + " URL"},
		{classesKey + URLProgID, "URL Protocol", ""},
		{classesKey + URLProgID + `\DefaultIcon`, "", exePath + ",0"},
		{classesKey + URLProgID + `\shell\open\command`, "", open},

		{classesKey + HTMLProgID, "", DisplayName + " HTML Document"},
		{classesKey + HTMLProgID + `\DefaultIcon`, "", exePath + ",1"},
		{classesKey + HTMLProgID + `\shell\open\command`, "", open},

		{clientKey, "", DisplayName},
		{capabilitiesKey, "ApplicationName", DisplayName},
		{capabilitiesKey, "ApplicationDescription", Description},
		{capabilitiesKey + `\FileAssociations`, ".htm", HTMLProgID},
		{capabilitiesKey + `\FileAssociations`, ".html", HTMLProgID},
		{capabilitiesKey + `\StartMenu`, "StartMenuInternet", Name},
		{capabilitiesKey + `\URLAssociations`, "http", URLProgID},
		{capabilitiesKey + `\URLAssociations`, "https", URLProgID},
		{clientKey + `\DefaultIcon`, "", exePath + ",0"},
		{clientKey + `\shell\open\command`, "", `"` + exePath + `"`},

		{registeredKey, Name, capabilitiesKey},
	}
}
