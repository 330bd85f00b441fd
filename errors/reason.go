package errors

var (
	InvalidConfig      Reason = "invalid_config"
	InvalidArguments   Reason = "invalid_arguments"
	BrowserNotFound    Reason = "browser_not_found"
	LaunchFailed       Reason = "launch_failed"
	RegistrationFailed Reason = "registration_failed"
)

type Reason string

func (e Reason) String() string {
	return string(e)
}
