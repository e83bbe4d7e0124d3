package github

import (
	"context"
	"fmt"
	"net/http"
)

// RepositoryExists reports whether owner/repo exists on GitHub. A 404 means
// the name is free and is not an error.
func (client *Client) RepositoryExists(ctx context.Context, owner, repo string) (bool, error) {
	var exists bool
	err := RetryableOperation(ctx, func() error {
		_, resp, err := client.inner.Repositories.Get(ctx, owner, repo)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				exists = false
				return nil
			}
			return err
		}
		exists = true
		return nil
	})

	if err != nil {
		return false, fmt.Errorf("failed to check GitHub repository: %w", err)
	}

	return exists, nil
}
