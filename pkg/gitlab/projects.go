package gitlab

import (
	"fmt"
	"net/http"

	"github.com/gl2gh/gl2gh/pkg/logger"
	"github.com/gl2gh/gl2gh/pkg/repo"
	"github.com/xanzy/go-gitlab"
)

// ListOwnedProjects retrieves every project owned by the configured account,
// filtered to the given namespace path. Pages are fetched until an empty page
// is returned; a failure on any page is returned as-is because an incomplete
// inventory is unsafe to migrate from.
func ListOwnedProjects(client *gitlab.Client, owner string) ([]repo.Repository, error) {
	var repos []repo.Repository
	page := 1
	for {
		opts := &gitlab.ListProjectsOptions{
			Owned:      gitlab.Bool(true),
			Membership: gitlab.Bool(true),
			ListOptions: gitlab.ListOptions{
				PerPage: 100,
				Page:    page,
			},
		}

		projects, _, err := client.Projects.ListProjects(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list GitLab projects (page %d): %w", page, err)
		}
		if len(projects) == 0 {
			break
		}

		for _, project := range projects {
			if project.Namespace == nil || project.Namespace.Path != owner {
				logger.Debug("Skipping project outside the configured namespace", "project", project.Name)
				continue
			}
			repos = append(repos, fromProject(project))
		}
		page++
	}

	return repos, nil
}

// HasCIConfig reports whether the project carries a .gitlab-ci.yml on one of
// its main branches. Used only to annotate listings.
func HasCIConfig(client *gitlab.Client, projectID int) bool {
	for _, ref := range []string{"master", "main"} {
		opts := &gitlab.GetFileOptions{Ref: gitlab.String(ref)}
		_, resp, err := client.RepositoryFiles.GetFile(projectID, ".gitlab-ci.yml", opts)
		if err == nil {
			return true
		}
		if resp != nil && resp.StatusCode != http.StatusNotFound {
			logger.Debug("CI config probe failed", "project_id", projectID, "ref", ref, "error", err)
		}
	}
	return false
}

func fromProject(project *gitlab.Project) repo.Repository {
	r := repo.Repository{
		ID:             project.ID,
		Name:           project.Name,
		Path:           project.Path,
		Visibility:     string(project.Visibility),
		Description:    project.Description,
		CloneURL:       project.HTTPURLToRepo,
		WebURL:         project.WebURL,
		LastActivityAt: project.LastActivityAt,
	}
	if project.Namespace != nil {
		r.Namespace = project.Namespace.Path
	}
	return r
}
