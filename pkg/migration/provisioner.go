package migration

import (
	"context"
	"strings"

	"github.com/gl2gh/gl2gh/pkg/logger"
)

// alreadyExistsMessage is how the create call reports a taken name.
const alreadyExistsMessage = "name already exists on this account"

// defaultDescription is used when the source project has no description.
const defaultDescription = "Repository migrated from GitLab"

// RepoCLI is the native command-line surface used for the fast existence
// probe and for repository creation.
type RepoCLI interface {
	ViewRepository(ctx context.Context, owner, repo string) error
	CreateRepository(ctx context.Context, owner, repo, description string, private bool) (string, error)
}

// RepoAPI is the REST fallback used when the command-line probe errors.
type RepoAPI interface {
	RepositoryExists(ctx context.Context, owner, repo string) (bool, error)
}

// Provisioner idempotently ensures destination repositories exist.
type Provisioner struct {
	cli   RepoCLI
	api   RepoAPI
	owner string
}

func NewProvisioner(cli RepoCLI, api RepoAPI, owner string) *Provisioner {
	return &Provisioner{cli: cli, api: api, owner: owner}
}

// Exists reports whether owner/name is already taken on the destination. The
// command-line probe answers when it exits cleanly; on any probe error (tool
// missing, auth failure, network) the REST lookup decides, and a failure
// there counts as not existing. Exists never returns an error because
// selection and creation are unconditional on its answer.
func (p *Provisioner) Exists(ctx context.Context, name string) bool {
	if err := p.cli.ViewRepository(ctx, p.owner, name); err == nil {
		return true
	}

	exists, err := p.api.RepositoryExists(ctx, p.owner, name)
	if err != nil {
		logger.Debug("GitHub repository lookup failed, treating as absent", "owner", p.owner, "repo", name, "error", err)
		return false
	}
	return exists
}

// EnsureCreated makes owner/name usable as a push target: an existing
// repository is success without a create call, and a create call losing a
// race to another creator is absorbed as success. Any other creation failure
// marks this repository failed without aborting the batch.
func (p *Provisioner) EnsureCreated(ctx context.Context, name, description string, private bool) bool {
	if p.Exists(ctx, name) {
		logger.Info("GitHub repository already exists, skipping creation", "owner", p.owner, "repo", name)
		return true
	}

	if description == "" {
		description = defaultDescription
	}

	out, err := p.cli.CreateRepository(ctx, p.owner, name, description, private)
	if err != nil {
		if containsAlreadyExists(out) || containsAlreadyExists(err.Error()) {
			logger.Info("GitHub repository name already taken, continuing", "owner", p.owner, "repo", name)
			return true
		}
		logger.Error("Failed to create GitHub repository", "owner", p.owner, "repo", name, "error", err)
		return false
	}

	logger.Info("Created GitHub repository", "owner", p.owner, "repo", name, "private", private)
	return true
}

func containsAlreadyExists(message string) bool {
	return strings.Contains(strings.ToLower(message), alreadyExistsMessage)
}
