package config

import "errors"

// GlobalConfig is loaded once at startup and passed read-only to every
// component, never re-read from the environment mid-run.
type GlobalConfig struct {
	GitLabToken               string
	GitLabURL                 string
	GitLabOwner               string
	GitHubGitToken            string
	GitHubApiToken            string
	GitHubAppID               int
	GitHubAppInstallationID   int
	GitHubAppPrivateKey       string
	GitHubAppPrivateKeyAsFile bool
	GitHubOwner               string
	UseImport                 bool
	WorkingDir                string
	LogLevel                  string
}

type MigrateConfig struct {
	// Select runs non-interactively with the given picker expression,
	// e.g. "1", "1-3", "1,3,5" or "all".
	Select string
	// Yes skips the confirmation prompt.
	Yes bool
}

// HasGitHubApp reports whether GitHub App credentials are fully configured.
func (c GlobalConfig) HasGitHubApp() bool {
	return c.GitHubAppID > 0 && c.GitHubAppInstallationID > 0 && c.GitHubAppPrivateKey != ""
}

// Secrets returns every configured credential, for redaction.
func (c GlobalConfig) Secrets() []string {
	return []string{c.GitLabToken, c.GitHubApiToken, c.GitHubGitToken, c.GitHubAppPrivateKey}
}

// ValidateSource checks the GitLab side of the configuration.
func (c GlobalConfig) ValidateSource() error {
	if c.GitLabToken == "" {
		return errors.New("GitLab token is required (--gitlab-token or GITLAB_TOKEN)")
	}
	if c.GitLabOwner == "" {
		return errors.New("GitLab owner is required (--gitlab-owner or GITLAB_OWNER)")
	}
	return nil
}

// Validate checks everything a migration run needs up front. Missing
// credentials terminate the run before any work starts.
func (c GlobalConfig) Validate() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if c.GitHubApiToken == "" && !c.HasGitHubApp() {
		return errors.New("GitHub API token or GitHub App settings are required")
	}
	if !c.UseImport && c.GitHubGitToken == "" {
		return errors.New("GitHub git token is required for mirror transfers (--github-git-token or GITHUB_GIT_TOKEN)")
	}
	return nil
}
