package main

import (
	"context"
	goerrors "errors"
	"io/fs"
	"os/exec"

	"github.com/macrat/foxroute/browser"
	"github.com/macrat/foxroute/config"
	"github.com/macrat/foxroute/errors"
	"github.com/macrat/foxroute/filter"
	"github.com/macrat/foxroute/metrics"
)

type InstanceFinder interface {
	Find(ctx context.Context) ([]browser.Instance, error)
}

type Opener interface {
	Open(inst browser.Instance, urls []string) error
}

type App struct {
	Config   *config.Config
	Filter   *filter.Filter
	Finder   InstanceFinder
	Launcher Opener
	Locate   func(processName string) string
	Metrics  *metrics.RunMetrics
}

// Route drops ignored URLs and opens the rest in the preferred browser instance.
func (a *App) Route(ctx context.Context, urls []string) error {
	lc := metrics.StartLogging(len(urls))
	defer lc.Close()

	mc := a.Metrics.Start()
	defer mc.Close()

	logger := &lc.Logger

	logger.Debug().Strs("args", urls).Msg("start routing")

	kept, dropped := a.Filter.Apply(urls)
	for _, d := range dropped {
		mc.Dropped(string(d.Rule.Kind))
	}
	mc.Kept(len(kept))
	lc.Kept = len(kept)
	lc.Dropped = len(dropped)

	if len(kept) == 0 {
		logger.Debug().Msg("all URLs got filtered out, nothing to do")
		return nil
	}

	running, err := a.Finder.Find(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list running browsers, opening in the default profile")
		running = nil
	}
	mc.Instances(len(running))

	fallback := a.Config.Browser.Path
	if fallback == "" {
		fallback = a.Locate(a.Config.Browser.ProcessName)
	}

	inst := browser.Choose(running, fallback, a.Config.Browser.Profile)
	lc.Browser = inst.Path
	lc.Profile = inst.Profile

	switch {
	case len(running) == 0:
		logger.Debug().Msg("no browser process found, opening in the default profile")
	case running[0].HasProfile():
		logger.Debug().Msg("found a running browser with an active profile")
	default:
		logger.Debug().Msg("no running browser has a profile in use, opening in the default profile")
	}

	if err := a.Launcher.Open(inst, kept); err != nil {
		reason := errors.LaunchFailed
		if goerrors.Is(err, exec.ErrNotFound) || goerrors.Is(err, fs.ErrNotExist) {
			reason = errors.BrowserNotFound
		}
		e := errors.New(reason, inst.Path, err)
		lc.SetError(e)
		return e
	}

	return nil
}
