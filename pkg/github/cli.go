package github

import (
	"context"

	"github.com/gl2gh/gl2gh/pkg/utils"
)

// CLI shells out to the gh command with the API token injected through the
// environment, so it works without a prior `gh auth login`.
type CLI struct {
	runner utils.Runner
	token  string
}

// NewCLI wraps the given runner for gh invocations.
func NewCLI(runner utils.Runner, token string) *CLI {
	return &CLI{runner: runner, token: token}
}

func (c *CLI) env() map[string]string {
	return map[string]string{"GH_TOKEN": c.token}
}

// ViewRepository probes owner/repo with `gh repo view`. A nil error means the
// repository is visible to the token.
func (c *CLI) ViewRepository(ctx context.Context, owner, repo string) error {
	_, err := c.runner.Run(ctx, utils.RunOptions{
		Name: "gh",
		Args: []string{"repo", "view", owner + "/" + repo},
		Env:  c.env(),
	})
	return err
}

// CreateRepository creates owner/repo with `gh repo create` without cloning
// it locally. The combined output is returned so callers can distinguish the
// "name already exists" condition.
func (c *CLI) CreateRepository(ctx context.Context, owner, repo, description string, private bool) (string, error) {
	args := []string{"repo", "create", owner + "/" + repo, "--description", description, "--clone=false"}
	if private {
		args = append(args, "--private")
	} else {
		args = append(args, "--public")
	}

	return c.runner.Run(ctx, utils.RunOptions{
		Name: "gh",
		Args: args,
		Env:  c.env(),
	})
}
