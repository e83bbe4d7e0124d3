package migration

import (
	"context"

	"github.com/gl2gh/gl2gh/pkg/config"
	"github.com/gl2gh/gl2gh/pkg/github"
	"github.com/gl2gh/gl2gh/pkg/repo"
	"github.com/gl2gh/gl2gh/pkg/utils"
)

// Strategy transfers one repository's full git history to the destination.
// destName is the slug derived once per repository by the orchestrator, so a
// run can never address the same repository under two different names.
type Strategy interface {
	Name() string
	Transfer(ctx context.Context, r repo.Repository, destName string) error
}

// SelectStrategy picks the transfer implementation for the whole run.
// Strategy choice is a run-level configuration switch, never per repository.
func SelectStrategy(cfg config.GlobalConfig, runner utils.Runner, api *github.Client) Strategy {
	if cfg.UseImport {
		return NewImportStrategy(api, cfg.GitHubOwner, cfg.GitLabToken)
	}
	return NewMirrorStrategy(runner, cfg)
}
