package github

import (
	"context"
	"fmt"
	"net/http"
)

// Import is the request body for the source import endpoint.
type Import struct {
	VCS    string `json:"vcs"`
	VCSURL string `json:"vcs_url"`
}

// ImportStatus is the subset of the import progress response the migration
// cares about.
type ImportStatus struct {
	Status     string `json:"status"`
	StatusText string `json:"status_text,omitempty"`
}

// StartImport submits a source import for owner/repo pulling from vcsURL.
// The endpoint has create-or-replace semantics, so resubmitting for the same
// repository is safe. Anything but 201/202 means the job was not accepted.
func (client *Client) StartImport(ctx context.Context, owner, repo, vcsURL string) error {
	u := fmt.Sprintf("repos/%v/%v/import", owner, repo)
	body := &Import{VCS: "git", VCSURL: vcsURL}

	req, err := client.inner.NewRequest(http.MethodPut, u, body)
	if err != nil {
		return fmt.Errorf("failed to build import request: %w", err)
	}

	resp, err := client.inner.Do(ctx, req, nil)
	if err != nil {
		return fmt.Errorf("failed to start import: %w", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("import was not accepted: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// GetImportStatus polls the import progress for owner/repo and returns the
// reported status value.
func (client *Client) GetImportStatus(ctx context.Context, owner, repo string) (string, error) {
	u := fmt.Sprintf("repos/%v/%v/import", owner, repo)

	req, err := client.inner.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build import status request: %w", err)
	}

	status := new(ImportStatus)
	if _, err := client.inner.Do(ctx, req, status); err != nil {
		return "", fmt.Errorf("failed to fetch import status: %w", err)
	}
	return status.Status, nil
}
