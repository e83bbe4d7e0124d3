package cmd

import "testing"

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "gl2gh" {
		t.Errorf("Use = %q, want gl2gh", cmd.Use)
	}

	for _, name := range []string{"list", "migrate"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	flags := []string{
		"gitlab-token", "gitlab-url", "gitlab-owner",
		"github-api-token", "github-git-token", "github-owner",
		"github-app-id", "github-app-installation-id", "github-app-private-key",
		"use-import", "working-dir", "log-level",
	}
	for _, flag := range flags {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag %q not registered", flag)
		}
	}
}

func TestNewMigrateCommandFlags(t *testing.T) {
	cmd := NewMigrateCommand(nil)

	for _, flag := range []string{"select", "yes"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("flag %q not registered", flag)
		}
	}
}
