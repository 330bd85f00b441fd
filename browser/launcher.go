package browser

import (
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Args builds the browser arguments for opening urls in inst.
func Args(inst Instance, urls []string) []string {
	args := make([]string, 0, len(urls)*2+2)
	if inst.HasProfile() {
		args = append(args, "-P", inst.Profile)
	}
	for _, u := range urls {
		args = append(args, "-url", u)
	}
	return args
}

type Launcher struct {
	// DryRun logs the command instead of starting it.
	DryRun bool

	// Start starts cmd. It defaults to (*exec.Cmd).Start.
	Start func(cmd *exec.Cmd) error
}

func (l Launcher) Open(inst Instance, urls []string) error {
	cmd := exec.Command(inst.Path, Args(inst, urls)...)

	ev := log.Debug().Str("path", inst.Path).Str("profile", inst.Profile).Strs("args", cmd.Args[1:])
	if l.DryRun {
		ev.Msg("link opening disabled, not starting browser")
		return nil
	}
	ev.Msg("start browser")

	start := l.Start
	if start == nil {
		start = func(cmd *exec.Cmd) error {
			if err := cmd.Start(); err != nil {
				return err
			}
			return cmd.Process.Release()
		}
	}
	return start(cmd)
}
