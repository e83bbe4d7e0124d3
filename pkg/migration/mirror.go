package migration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gl2gh/gl2gh/pkg/config"
	"github.com/gl2gh/gl2gh/pkg/git"
	"github.com/gl2gh/gl2gh/pkg/logger"
	"github.com/gl2gh/gl2gh/pkg/repo"
	"github.com/gl2gh/gl2gh/pkg/utils"
)

// MirrorStrategy transfers a repository by mirror-cloning it locally and
// mirror-pushing the full ref set to the destination.
type MirrorStrategy struct {
	git         *git.Git
	baseDir     string
	gitlabToken string
	githubUser  string
	githubToken string
}

func NewMirrorStrategy(runner utils.Runner, cfg config.GlobalConfig) *MirrorStrategy {
	return &MirrorStrategy{
		git:         git.NewGit(runner),
		baseDir:     cfg.WorkingDir,
		gitlabToken: cfg.GitLabToken,
		githubUser:  cfg.GitHubOwner,
		githubToken: cfg.GitHubGitToken,
	}
}

func (s *MirrorStrategy) Name() string {
	return "mirror"
}

// Transfer clones the source as a bare mirror into a scoped temporary
// directory, repoints origin at the destination, and pushes all refs. The
// directory is removed on every exit path, bounding disk usage to one
// repository at a time.
func (s *MirrorStrategy) Transfer(ctx context.Context, r repo.Repository, destName string) error {
	if s.baseDir != "" {
		if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
			return fmt.Errorf("failed to create working directory: %w", err)
		}
	}
	tempDir, err := os.MkdirTemp(s.baseDir, destName+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer func() {
		if err := utils.CleanupDirectory(tempDir); err != nil {
			logger.Warn("Failed to remove temporary directory", "dir", tempDir, "error", err)
		}
	}()

	srcURL, err := git.WithTokenAuth(r.CloneURL, "oauth2", s.gitlabToken)
	if err != nil {
		return fmt.Errorf("failed to build source URL: %w", err)
	}

	clonePath := filepath.Join(tempDir, destName+".git")
	logger.Info("Mirror cloning repository", "name", r.Name)
	if err := s.git.CloneMirror(ctx, srcURL, clonePath); err != nil {
		return err
	}

	destURL, err := git.WithTokenAuth(
		fmt.Sprintf("https://github.com/%s/%s.git", s.githubUser, destName),
		s.githubUser, s.githubToken,
	)
	if err != nil {
		return fmt.Errorf("failed to build destination URL: %w", err)
	}
	if err := s.git.ReplaceOrigin(ctx, clonePath, destURL); err != nil {
		return err
	}

	logger.Info("Pushing all branches and tags", "name", r.Name, "dest", destName)
	return s.git.PushMirror(ctx, clonePath)
}
