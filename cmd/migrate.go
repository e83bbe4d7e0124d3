package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gl2gh/gl2gh/pkg/config"
	"github.com/gl2gh/gl2gh/pkg/github"
	"github.com/gl2gh/gl2gh/pkg/gitlab"
	"github.com/gl2gh/gl2gh/pkg/logger"
	"github.com/gl2gh/gl2gh/pkg/migration"
	"github.com/gl2gh/gl2gh/pkg/prompt"
	"github.com/gl2gh/gl2gh/pkg/repo"
	"github.com/gl2gh/gl2gh/pkg/utils"
	"github.com/spf13/cobra"
	gitlablib "github.com/xanzy/go-gitlab"
)

func NewMigrateCommand(cfg *config.GlobalConfig) *cobra.Command {
	var migrateConfig config.MigrateConfig
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate GitLab repositories to GitHub",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd, *cfg, migrateConfig)
		},
	}

	// Migrate command specific flags
	cmd.Flags().StringVar(&migrateConfig.Select, "select", "", "Select repositories without prompting (e.g. 2, 1-3, 1,3,5 or all)")
	cmd.Flags().BoolVar(&migrateConfig.Yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func runMigration(cmd *cobra.Command, cfg config.GlobalConfig, migrateConfig config.MigrateConfig) error {
	if err := cfg.Validate(); err != nil {
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// On interrupt the context is cancelled so the repository in flight
	// finishes or aborts cleanly and the summary is still printed.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChan)
	go func() {
		<-signalChan
		logger.Info("Received interrupt signal, shutting down...")
		cancel()
	}()

	owner, err := resolveOwner(ctx, cfg, githubClient)
	if err != nil {
		return err
	}
	cfg.GitHubOwner = owner

	runner := utils.NewExecRunner(utils.NewRedactor(cfg.Secrets()...))
	provisioner := migration.NewProvisioner(github.NewCLI(runner, cfg.GitHubApiToken), githubClient, owner)

	rows, err := buildInventory(ctx, cfg, gitlabClient, provisioner)
	if err != nil {
		return err
	}

	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	var selected []repo.Repository
	if migrateConfig.Select != "" {
		indices, all, err := prompt.ParseSelection(migrateConfig.Select, len(rows))
		if errors.Is(err, prompt.ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		selected = prompt.ApplySelection(cmd.OutOrStdout(), rows, indices, all)
	} else {
		selected, err = p.SelectRepositories(rows)
		if errors.Is(err, prompt.ErrQuit) {
			logger.Info("Nothing selected, exiting")
			return nil
		}
		if err != nil {
			return err
		}
	}
	if len(selected) == 0 {
		return errors.New("no repositories were selected")
	}

	if !migrateConfig.Yes && !p.Confirm(fmt.Sprintf("Migrate %d repositories to github.com/%s", len(selected), owner)) {
		logger.Info("Migration cancelled")
		return nil
	}

	strategy := migration.SelectStrategy(cfg, runner, githubClient)
	logger.Info("Migration started...", "repositories", len(selected), "mode", strategy.Name())

	res := migration.NewOrchestrator(provisioner, strategy).Run(ctx, selected)
	printSummary(owner, res)

	if res.ExitCode() != 0 {
		return fmt.Errorf("migrated %d of %d repositories", res.Succeeded, res.Total)
	}
	logger.Info("Migration completed successfully!")
	return nil
}

func newGitHubClient(cfg config.GlobalConfig) (*github.Client, error) {
	if cfg.GitHubApiToken != "" {
		return github.NewClientByPAT(cfg.GitHubApiToken), nil
	}
	if cfg.HasGitHubApp() {
		return github.NewClientByApp(cfg.GitHubAppID, cfg.GitHubAppInstallationID, cfg.GitHubAppPrivateKey), nil
	}
	return nil, errors.New("GitHub token or GitHub App settings are required")
}

func resolveOwner(ctx context.Context, cfg config.GlobalConfig, githubClient *github.Client) (string, error) {
	if cfg.GitHubOwner != "" {
		return cfg.GitHubOwner, nil
	}
	owner, err := githubClient.ViewerLogin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve GitHub owner: %w", err)
	}
	logger.Info("Using authenticated GitHub user as destination owner", "owner", owner)
	return owner, nil
}

// buildInventory lists the owner's GitLab repositories and annotates each one
// with its CI status and whether the destination name is already taken.
func buildInventory(ctx context.Context, cfg config.GlobalConfig, gitlabClient *gitlablib.Client, provisioner *migration.Provisioner) ([]prompt.Row, error) {
	logger.Info("Listing GitLab repositories...", "owner", cfg.GitLabOwner, "url", cfg.GitLabURL)
	repos, err := gitlab.ListOwnedProjects(gitlabClient, cfg.GitLabOwner)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, fmt.Errorf("no repositories found for GitLab owner %s", cfg.GitLabOwner)
	}

	rows := make([]prompt.Row, len(repos))
	for i := range repos {
		repos[i].HasCI = gitlab.HasCIConfig(gitlabClient, repos[i].ID)
		rows[i] = prompt.Row{
			Repo:   repos[i],
			Exists: provisioner.Exists(ctx, repos[i].SafeName()),
		}
	}
	return rows, nil
}

func printSummary(owner string, res migration.Result) {
	logger.Info("Migration finished", "total", res.Total, "succeeded", res.Succeeded, "failed", len(res.Failed))
	for _, name := range res.Failed {
		logger.Warn("Migration failed", "repository", name)
	}
	for _, name := range res.Provisioned {
		logger.Info("Repository available", "url", fmt.Sprintf("https://github.com/%s/%s", owner, name))
	}
}
