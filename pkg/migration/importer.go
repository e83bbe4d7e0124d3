package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/gl2gh/gl2gh/pkg/git"
	"github.com/gl2gh/gl2gh/pkg/logger"
	"github.com/gl2gh/gl2gh/pkg/repo"
)

const (
	importPollInterval = time.Second
	importMaxPolls     = 120
)

// ImportAPI is the destination-side import service.
type ImportAPI interface {
	StartImport(ctx context.Context, owner, repo, vcsURL string) error
	GetImportStatus(ctx context.Context, owner, repo string) (string, error)
}

// ImportStrategy transfers a repository server-side: the destination platform
// pulls from the source URL directly, so nothing touches local disk.
type ImportStrategy struct {
	api          ImportAPI
	owner        string
	gitlabToken  string
	pollInterval time.Duration
	maxPolls     int
}

func NewImportStrategy(api ImportAPI, owner, gitlabToken string) *ImportStrategy {
	return &ImportStrategy{
		api:          api,
		owner:        owner,
		gitlabToken:  gitlabToken,
		pollInterval: importPollInterval,
		maxPolls:     importMaxPolls,
	}
}

func (s *ImportStrategy) Name() string {
	return "import"
}

// Transfer submits the import job and polls until a terminal status:
// "complete" succeeds, "error" and "failed" fail immediately, anything else
// keeps polling until the attempt budget runs out.
func (s *ImportStrategy) Transfer(ctx context.Context, r repo.Repository, destName string) error {
	// The import service authenticates to the private source itself, so the
	// source token rides inside the URL.
	vcsURL, err := git.WithTokenAuth(r.CloneURL, "oauth2", s.gitlabToken)
	if err != nil {
		return fmt.Errorf("failed to build source URL: %w", err)
	}

	if err := s.api.StartImport(ctx, s.owner, destName, vcsURL); err != nil {
		return err
	}
	logger.Info("Import accepted, waiting for completion", "name", r.Name, "dest", destName)

	for attempt := 1; attempt <= s.maxPolls; attempt++ {
		status, err := s.api.GetImportStatus(ctx, s.owner, destName)
		if err != nil {
			return err
		}

		switch status {
		case "complete":
			logger.Info("Import completed", "dest", destName, "polls", attempt)
			return nil
		case "error", "failed":
			return fmt.Errorf("import of %s finished with status %q", destName, status)
		}
		logger.Debug("Import still running", "dest", destName, "status", status, "attempt", attempt)

		select {
		case <-time.After(s.pollInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("import of %s timed out after %d polls", destName, s.maxPolls)
}
