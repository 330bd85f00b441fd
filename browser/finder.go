package browser

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessLister returns the command lines of running processes.
type ProcessLister interface {
	Cmdlines(ctx context.Context) ([][]string, error)
}

// SystemProcesses lists processes of the running system.
type SystemProcesses struct{}

func (SystemProcesses) Cmdlines(ctx context.Context) ([][]string, error) {
	ps, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	result := make([][]string, 0, len(ps))
	for _, p := range ps {
		cmdline, err := p.CmdlineSliceWithContext(ctx)
		if err != nil || len(cmdline) == 0 {
			// Processes of other users or already exited ones are not readable.
			continue
		}
		result = append(result, cmdline)
	}
	return result, nil
}

type Finder struct {
	Process   ProcessMatcher
	Processes ProcessLister
}

func NewFinder(processName string) (Finder, error) {
	m, err := NewProcessMatcher(processName)
	if err != nil {
		return Finder{}, err
	}

	return Finder{
		Process:   m,
		Processes: SystemProcesses{},
	}, nil
}

// Find returns the running browser instances in preference order.
func (f Finder) Find(ctx context.Context) ([]Instance, error) {
	cmdlines, err := f.Processes.Cmdlines(ctx)
	if err != nil {
		return nil, err
	}

	var is []Instance
	for _, cmdline := range cmdlines {
		if !f.Process.Match(cmdline) {
			continue
		}
		if inst, ok := ParseInstance(cmdline); ok {
			is = append(is, inst)
		}
	}
	Sort(is)

	log.Debug().Int("instances", len(is)).Stringer("process", f.Process).Msg("found browser processes")

	return is, nil
}
