package repo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		repo Repository
		want string
	}{
		{
			name: "path slug preferred over everything",
			repo: Repository{Name: "My Repo", Path: "my-repo", CloneURL: "https://gitlab.com/acme/unrelated.git"},
			want: "my-repo",
		},
		{
			name: "clone url fallback strips git suffix",
			repo: Repository{Name: "TVC Mall", CloneURL: "https://gitlab.com/group/tvcmall-www.git"},
			want: "tvcmall-www",
		},
		{
			name: "clone url with trailing slash",
			repo: Repository{CloneURL: "https://gitlab.com/group/project.git/"},
			want: "project",
		},
		{
			name: "clone url segment with spaces",
			repo: Repository{CloneURL: "https://gitlab.example.com/ns/strange name.git"},
			want: "strange-name",
		},
		{
			name: "display name fallback replaces spaces",
			repo: Repository{Name: "My Repo"},
			want: "My-Repo",
		},
		{
			name: "plain display name",
			repo: Repository{Name: "widget"},
			want: "widget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.repo.SafeName())
		})
	}
}

func TestPrivate(t *testing.T) {
	tests := []struct {
		visibility string
		want       bool
	}{
		{"public", false},
		{"private", true},
		{"internal", true},
		{"", true},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Repository{Visibility: tt.visibility}.Private(),
			"visibility %q", tt.visibility)
	}
}
