package github

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gl2gh/gl2gh/pkg/utils"
)

type fakeRunner struct {
	lastOpts utils.RunOptions
	out      string
	err      error
}

func (f *fakeRunner) Run(_ context.Context, opts utils.RunOptions) (string, error) {
	f.lastOpts = opts
	return f.out, f.err
}

func TestCLIViewRepository(t *testing.T) {
	runner := &fakeRunner{}
	cli := NewCLI(runner, "ghp-123")

	if err := cli.ViewRepository(context.Background(), "acme", "widget"); err != nil {
		t.Fatalf("ViewRepository() error = %v", err)
	}
	got := runner.lastOpts.Name + " " + strings.Join(runner.lastOpts.Args, " ")
	if got != "gh repo view acme/widget" {
		t.Errorf("unexpected command %q", got)
	}
	if runner.lastOpts.Env["GH_TOKEN"] != "ghp-123" {
		t.Errorf("GH_TOKEN not injected: %v", runner.lastOpts.Env)
	}

	runner.err = errors.New("could not resolve repository")
	if err := cli.ViewRepository(context.Background(), "acme", "widget"); err == nil {
		t.Error("probe failure should be returned")
	}
}

func TestCLICreateRepository(t *testing.T) {
	tests := []struct {
		name    string
		private bool
		want    string
	}{
		{"private", true, "gh repo create acme/widget --description imported --clone=false --private"},
		{"public", false, "gh repo create acme/widget --description imported --clone=false --public"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{out: "https://github.com/acme/widget"}
			cli := NewCLI(runner, "ghp-123")

			out, err := cli.CreateRepository(context.Background(), "acme", "widget", "imported", tt.private)
			if err != nil {
				t.Fatalf("CreateRepository() error = %v", err)
			}
			if out != "https://github.com/acme/widget" {
				t.Errorf("output not passed through, got %q", out)
			}
			got := runner.lastOpts.Name + " " + strings.Join(runner.lastOpts.Args, " ")
			if got != tt.want {
				t.Errorf("command = %q, want %q", got, tt.want)
			}
			if runner.lastOpts.Env["GH_TOKEN"] != "ghp-123" {
				t.Errorf("GH_TOKEN not injected: %v", runner.lastOpts.Env)
			}
		})
	}
}
