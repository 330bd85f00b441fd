package browser_test

import (
	"context"
	"fmt"
	"os/exec"
	"reflect"
	"testing"

	"github.com/macrat/foxroute/browser"
)

type staticProcesses [][]string

func (s staticProcesses) Cmdlines(ctx context.Context) ([][]string, error) {
	return s, nil
}

type brokenProcesses struct{}

func (brokenProcesses) Cmdlines(ctx context.Context) ([][]string, error) {
	return nil, fmt.Errorf("permission denied")
}

func mustProcessMatcher(t *testing.T, pattern string) browser.ProcessMatcher {
	t.Helper()

	m, err := browser.NewProcessMatcher(pattern)
	if err != nil {
		t.Fatalf("failed to compile %#v: %s", pattern, err)
	}
	return m
}

func TestProcessMatcher(t *testing.T) {
	tests := []struct {
		Cmdline []string
		Name    string
		Expect  bool
	}{
		{[]string{`C:\Program Files\Mozilla Firefox\firefox.exe`, "-contentproc"}, "firefox.exe", true},
		{[]string{`C:\Program Files\Mozilla Firefox\FIREFOX.EXE`}, "firefox.exe", true},
		{[]string{"/usr/lib/firefox/firefox", "-P", "work"}, "firefox", true},
		{[]string{"/usr/bin/firefox-esr"}, "firefox", false},
		{[]string{"/usr/bin/firefox-esr"}, "firefox*", true},
		{[]string{"/usr/bin/Firefox-Developer-Edition"}, "firefox*", true},
		{[]string{"/usr/bin/chromium"}, "firefox*", false},
		{[]string{}, "firefox", false},
	}

	for _, tt := range tests {
		m := mustProcessMatcher(t, tt.Name)
		if got := m.Match(tt.Cmdline); got != tt.Expect {
			t.Errorf("%s %v: expected %v but got %v", tt.Name, tt.Cmdline, tt.Expect, got)
		}
	}
}

func TestNewProcessMatcher_Invalid(t *testing.T) {
	for _, pattern := range []string{"", "firefox["} {
		if _, err := browser.NewProcessMatcher(pattern); err == nil {
			t.Errorf("%#v: expected error but got nil", pattern)
		}
	}

	var zero browser.ProcessMatcher
	if zero.Match([]string{"firefox"}) {
		t.Errorf("zero matcher must not match")
	}
}

func TestParseInstance(t *testing.T) {
	tests := []struct {
		Cmdline []string
		Expect  browser.Instance
		OK      bool
	}{
		{
			[]string{"firefox", "-P", "work", "-url", "x"},
			browser.Instance{Path: "firefox", Profile: "work"},
			true,
		},
		{
			[]string{"firefox", "-profile", "/home/me/.mozilla/p"},
			browser.Instance{Path: "firefox", Profile: "/home/me/.mozilla/p"},
			true,
		},
		{
			[]string{"firefox", "-P"},
			browser.Instance{Path: "firefox"},
			true,
		},
		{
			[]string{"firefox", "-contentproc"},
			browser.Instance{Path: "firefox"},
			true,
		},
		{
			nil,
			browser.Instance{},
			false,
		},
	}

	for _, tt := range tests {
		got, ok := browser.ParseInstance(tt.Cmdline)
		if ok != tt.OK || got != tt.Expect {
			t.Errorf("%v: expected %#v, %v but got %#v, %v", tt.Cmdline, tt.Expect, tt.OK, got, ok)
		}
	}
}

func TestSort(t *testing.T) {
	is := []browser.Instance{
		{Path: "/b/firefox"},
		{Path: "/a/firefox", Profile: "work"},
		{Path: "/a/firefox"},
		{Path: "/a/firefox", Profile: "default"},
		{Path: "/0/firefox", Profile: "work"},
	}

	browser.Sort(is)

	expect := []browser.Instance{
		{Path: "/a/firefox", Profile: "default"},
		{Path: "/0/firefox", Profile: "work"},
		{Path: "/a/firefox", Profile: "work"},
		{Path: "/a/firefox"},
		{Path: "/b/firefox"},
	}
	if !reflect.DeepEqual(is, expect) {
		t.Errorf("unexpected order:\nexpected: %v\nbut got:  %v", expect, is)
	}
}

func TestFinder_Find(t *testing.T) {
	f := browser.Finder{
		Process:   mustProcessMatcher(t, "firefox"),
		Processes: staticProcesses{
			{"/usr/bin/bash"},
			{"/usr/lib/firefox/firefox", "-contentproc", "-childID", "1"},
			{"/usr/lib/firefox/firefox", "-P", "personal"},
			{"/usr/bin/chromium", "-P", "aaa"},
		},
	}

	is, err := f.Find(context.Background())
	if err != nil {
		t.Fatalf("failed to find: %s", err)
	}

	expect := []browser.Instance{
		{Path: "/usr/lib/firefox/firefox", Profile: "personal"},
		{Path: "/usr/lib/firefox/firefox"},
	}
	if !reflect.DeepEqual(is, expect) {
		t.Errorf("unexpected instances: %v", is)
	}
}

func TestFinder_Find_Error(t *testing.T) {
	f := browser.Finder{Process: mustProcessMatcher(t, "firefox"), Processes: brokenProcesses{}}

	if _, err := f.Find(context.Background()); err == nil {
		t.Errorf("expected error but got nil")
	}
}

func TestChoose(t *testing.T) {
	tests := []struct {
		Running  []browser.Instance
		Fallback string
		Profile  string
		Expect   browser.Instance
	}{
		{
			Running:  nil,
			Fallback: "/opt/firefox",
			Expect:   browser.Instance{Path: "/opt/firefox"},
		},
		{
			Running:  nil,
			Fallback: "/opt/firefox",
			Profile:  "work",
			Expect:   browser.Instance{Path: "/opt/firefox", Profile: "work"},
		},
		{
			Running:  []browser.Instance{{Path: "/x/firefox"}, {Path: "/y/firefox", Profile: "p"}},
			Fallback: "/opt/firefox",
			Expect:   browser.Instance{Path: "/y/firefox", Profile: "p"},
		},
		{
			Running:  []browser.Instance{{Path: "/x/firefox"}},
			Fallback: "/opt/firefox",
			Profile:  "forced",
			Expect:   browser.Instance{Path: "/x/firefox", Profile: "forced"},
		},
	}

	for i, tt := range tests {
		if got := browser.Choose(tt.Running, tt.Fallback, tt.Profile); got != tt.Expect {
			t.Errorf("%d: expected %#v but got %#v", i, tt.Expect, got)
		}
	}
}

func TestArgs(t *testing.T) {
	tests := []struct {
		Instance browser.Instance
		URLs     []string
		Expect   []string
	}{
		{
			browser.Instance{Path: "firefox"},
			[]string{"https://a.example.com"},
			[]string{"-url", "https://a.example.com"},
		},
		{
			browser.Instance{Path: "firefox", Profile: "work"},
			[]string{"https://a.example.com", "https://b.example.com"},
			[]string{"-P", "work", "-url", "https://a.example.com", "-url", "https://b.example.com"},
		},
	}

	for _, tt := range tests {
		if got := browser.Args(tt.Instance, tt.URLs); !reflect.DeepEqual(got, tt.Expect) {
			t.Errorf("expected %v but got %v", tt.Expect, got)
		}
	}
}

func TestLauncher_Open(t *testing.T) {
	var started *exec.Cmd
	l := browser.Launcher{
		Start: func(cmd *exec.Cmd) error {
			started = cmd
			return nil
		},
	}

	err := l.Open(browser.Instance{Path: "/opt/firefox/firefox", Profile: "work"}, []string{"https://example.com"})
	if err != nil {
		t.Fatalf("failed to open: %s", err)
	}

	if started == nil {
		t.Fatalf("browser was not started")
	}
	if started.Path != "/opt/firefox/firefox" {
		t.Errorf("unexpected path: %s", started.Path)
	}
	if !reflect.DeepEqual(started.Args[1:], []string{"-P", "work", "-url", "https://example.com"}) {
		t.Errorf("unexpected args: %v", started.Args)
	}
}

func TestLauncher_Open_DryRun(t *testing.T) {
	l := browser.Launcher{
		DryRun: true,
		Start: func(cmd *exec.Cmd) error {
			t.Errorf("browser must not be started in dry run")
			return nil
		},
	}

	if err := l.Open(browser.Instance{Path: "firefox"}, []string{"https://example.com"}); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestNewFinder(t *testing.T) {
	f, err := browser.NewFinder("firefox*")
	if err != nil {
		t.Fatalf("failed to create finder: %s", err)
	}
	if f.Process.String() != "firefox*" {
		t.Errorf("unexpected process pattern: %s", f.Process)
	}

	if _, err := browser.NewFinder(""); err == nil {
		t.Errorf("expected error for empty process name")
	}
}

func TestLocate_Fallback(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if got := browser.Locate("no-such-browser-for-test"); got != "no-such-browser-for-test" {
		t.Errorf("expected bare name but got %s", got)
	}
}
