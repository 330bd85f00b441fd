package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macrat/foxroute/filter"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check URL...",
		Short: "Show which rule drops each URL.",
		Args:  invalidArguments(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, closeLog, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			f := filter.New(conf)
			out := cmd.OutOrStdout()

			for _, u := range args {
				if rule, ok := f.Match(u); ok {
					fmt.Fprintf(out, "drop %s (%s)\n", u, rule)
				} else {
					fmt.Fprintf(out, "keep %s\n", u)
				}
			}
			return nil
		},
	}
}

func newPatternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "Print the regular expressions compiled from the configured globs.",
		Args:  invalidArguments(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, closeLog, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			out := cmd.OutOrStdout()

			for _, p := range conf.IgnoredURLs {
				with, without := p.Glob().Expressions()
				fmt.Fprintf(out, "glob %s\n  with protocol:    %s\n  without protocol: %s\n", p, with, without)
			}
			for _, r := range conf.IgnoredURLsRegex {
				fmt.Fprintf(out, "regexp %s\n", r)
			}
			return nil
		},
	}
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration after merging file, environment and flags.",
		Args:  invalidArguments(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, closeLog, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			s, err := conf.AsJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}
