package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gl2gh/gl2gh/pkg/config"
	"github.com/gl2gh/gl2gh/pkg/logger"
	"github.com/gl2gh/gl2gh/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
)

func NewRootCommand() *cobra.Command {
	// Load .env before the environment fallbacks below read anything.
	// Existing environment variables win over .env entries.
	_ = gotenv.Load()

	var cfg config.GlobalConfig

	rootCmd := &cobra.Command{
		Use:   "gl2gh",
		Short: "Migrate GitLab repositories to GitHub",
		Long: `Migrate GitLab repositories to GitHub.
This tool performs:
- Listing of the GitLab repositories owned by an account
- Repository creation on GitHub with matching visibility
- Code transfer by git mirror or by the GitHub import API`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.GitHubAppPrivateKeyAsFile {
				privateKey, err := os.ReadFile(cfg.GitHubAppPrivateKey)
				if err != nil {
					logger.Fatal(fmt.Sprintf("could not read private key: %s", cfg.GitHubAppPrivateKey), "err", err)
				}
				cfg.GitHubAppPrivateKey = string(privateKey)
			}
			if cfg.GitHubGitToken == "" {
				cfg.GitHubGitToken = cfg.GitHubApiToken
			}
			logger.SetLevel(cfg.LogLevel)
			logger.SetRedactor(utils.NewRedactor(cfg.Secrets()...))
		},
	}

	gitlabURL := os.Getenv("GITLAB_URL")
	if gitlabURL == "" {
		gitlabURL = "https://gitlab.com"
	}
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.GitLabToken, "gitlab-token", "", "GitLab API token (or set GITLAB_TOKEN env)")
	rootCmd.PersistentFlags().StringVar(&cfg.GitLabURL, "gitlab-url", gitlabURL, "GitLab base URL (or set GITLAB_URL env)")
	rootCmd.PersistentFlags().StringVar(&cfg.GitLabOwner, "gitlab-owner", "", "GitLab namespace whose repositories are migrated (or set GITLAB_OWNER env)")
	rootCmd.PersistentFlags().StringVar(&cfg.GitHubGitToken, "github-git-token", "", "GitHub Git token, defaults to the API token (or set GITHUB_GIT_TOKEN env)")
	rootCmd.PersistentFlags().StringVar(&cfg.GitHubApiToken, "github-api-token", "", "GitHub API token (or set GITHUB_API_TOKEN env)")
	rootCmd.PersistentFlags().IntVar(&cfg.GitHubAppID, "github-app-id", 0, "GitHub APP ID (or set GITHUB_APP_ID env)")
	rootCmd.PersistentFlags().IntVar(&cfg.GitHubAppInstallationID, "github-app-installation-id", 0, "GitHub APP Installation ID (or set GITHUB_APP_INSTALLATION_ID env)")
	rootCmd.PersistentFlags().StringVar(&cfg.GitHubAppPrivateKey, "github-app-private-key", "", "GitHub APP private key (or set GITHUB_APP_PRIVATE_KEY env)")
	rootCmd.PersistentFlags().BoolVar(&cfg.GitHubAppPrivateKeyAsFile, "github-app-private-key-as-file", false, "GitHub APP private key as file")
	rootCmd.PersistentFlags().StringVar(&cfg.GitHubOwner, "github-owner", "", "GitHub owner, defaults to the authenticated user (or set GITHUB_OWNER env)")
	rootCmd.PersistentFlags().BoolVar(&cfg.UseImport, "use-import", false, "Transfer code with the GitHub import API instead of git mirror (or set USE_GITHUB_IMPORT env)")
	rootCmd.PersistentFlags().StringVar(&cfg.WorkingDir, "working-dir", "", "Working directory for git operations, defaults to the system temp directory (or set WORKING_DIR env)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", logLevel, "Log level (debug, info, warn, error, fatal)")

	// Use environment variables if flags are not provided
	if cfg.GitLabToken == "" {
		cfg.GitLabToken = os.Getenv("GITLAB_TOKEN")
	}
	if cfg.GitLabOwner == "" {
		cfg.GitLabOwner = os.Getenv("GITLAB_OWNER")
	}
	if cfg.GitHubGitToken == "" {
		cfg.GitHubGitToken = os.Getenv("GITHUB_GIT_TOKEN")
	}
	if cfg.GitHubApiToken == "" {
		cfg.GitHubApiToken = os.Getenv("GITHUB_API_TOKEN")
	}
	if cfg.GitHubAppID == 0 {
		cfg.GitHubAppID, _ = strconv.Atoi(os.Getenv("GITHUB_APP_ID"))
	}
	if cfg.GitHubAppInstallationID == 0 {
		cfg.GitHubAppInstallationID, _ = strconv.Atoi(os.Getenv("GITHUB_APP_INSTALLATION_ID"))
	}
	if cfg.GitHubAppPrivateKey == "" {
		cfg.GitHubAppPrivateKey = os.Getenv("GITHUB_APP_PRIVATE_KEY")
	}
	if cfg.GitHubOwner == "" {
		cfg.GitHubOwner = os.Getenv("GITHUB_OWNER")
	}
	if !cfg.UseImport {
		cfg.UseImport, _ = strconv.ParseBool(os.Getenv("USE_GITHUB_IMPORT"))
	}
	if cfg.WorkingDir == "" {
		cfg.WorkingDir = os.Getenv("WORKING_DIR")
	}

	// Add subcommands
	rootCmd.AddCommand(NewListCommand(&cfg))
	rootCmd.AddCommand(NewMigrateCommand(&cfg))

	return rootCmd
}
