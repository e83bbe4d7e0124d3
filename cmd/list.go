package cmd

import (
	"fmt"

	"github.com/gl2gh/gl2gh/pkg/config"
	"github.com/gl2gh/gl2gh/pkg/github"
	"github.com/gl2gh/gl2gh/pkg/migration"
	"github.com/gl2gh/gl2gh/pkg/prompt"
	"github.com/gl2gh/gl2gh/pkg/utils"
	"github.com/spf13/cobra"
	gitlablib "github.com/xanzy/go-gitlab"
)

func NewListCommand(cfg *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List GitLab repositories and whether they already exist on GitHub",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, *cfg)
		},
	}
}

func runList(cmd *cobra.Command, cfg config.GlobalConfig) error {
	if err := cfg.ValidateSource(); err != nil {
		return err
	}

	gitlabClient, err := gitlablib.NewClient(cfg.GitLabToken, gitlablib.WithBaseURL(cfg.GitLabURL))
	if err != nil {
		return fmt.Errorf("failed to create GitLab client: %w", err)
	}
	githubClient, err := newGitHubClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	owner, err := resolveOwner(ctx, cfg, githubClient)
	if err != nil {
		return err
	}

	runner := utils.NewExecRunner(utils.NewRedactor(cfg.Secrets()...))
	provisioner := migration.NewProvisioner(github.NewCLI(runner, cfg.GitHubApiToken), githubClient, owner)

	rows, err := buildInventory(ctx, cfg, gitlabClient, provisioner)
	if err != nil {
		return err
	}

	prompt.PrintRepositories(cmd.OutOrStdout(), rows)
	return nil
}
