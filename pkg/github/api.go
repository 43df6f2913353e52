package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// APILister lists repositories through the GitHub REST API. It is the
// alternative to CLILister for hosts without the gh binary; it needs a token
// for the authenticated-user listing and for private repositories.
type APILister struct {
	client *github.Client
}

// NewAPILister creates a new REST-backed lister with the provided token.
// An empty token yields an unauthenticated client limited to public data.
func NewAPILister(token string) *APILister {
	client := github.NewClient(nil)
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	}

	return &APILister{client: client}
}

// newAPIListerWithClient is used by tests to point the lister at a fake server.
func newAPIListerWithClient(client *github.Client) *APILister {
	return &APILister{client: client}
}

// List implements Lister.
func (l *APILister) List(ctx context.Context, account Account) ([]Repository, error) {
	var repos []Repository

	page := 1
	for {
		var (
			ghRepos []*github.Repository
			resp    *github.Response
			err     error
		)

		if account.Authenticated {
			opts := &github.RepositoryListByAuthenticatedUserOptions{
				ListOptions: github.ListOptions{PerPage: 100, Page: page},
			}
			ghRepos, resp, err = l.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		} else {
			opts := &github.RepositoryListByUserOptions{
				ListOptions: github.ListOptions{PerPage: 100, Page: page},
			}
			ghRepos, resp, err = l.client.Repositories.ListByUser(ctx, account.Name, opts)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %s: %w", account, convertAPIError(err))
		}

		for _, repo := range ghRepos {
			repos = append(repos, Repository{
				Name:   repo.GetName(),
				SSHURL: repo.GetSSHURL(),
			})
		}

		if resp.NextPage == 0 {
			return repos, nil
		}
		page = resp.NextPage
	}
}

// convertAPIError maps go-github error responses onto APIError so both
// listing backends fail with the same structured error.
func convertAPIError(err error) error {
	if ghErr, ok := err.(*github.ErrorResponse); ok {
		return &APIError{
			Message:          ghErr.Message,
			DocumentationURL: ghErr.DocumentationURL,
		}
	}
	return err
}
