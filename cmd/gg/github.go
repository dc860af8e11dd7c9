package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/ctsrc/goodgit/route"
)

type gitHubClient struct {
	gh *github.Client
}

// newGitHubClient returns a GitHub API client. With a token, requests are
// authenticated through an oauth2 transport layered on hc.
func newGitHubClient(ctx context.Context, baseURL, token string, hc *http.Client) (*gitHubClient, error) {
	if token != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	c := github.NewClient(hc)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, errors.Wrapf(err, "invalid GitHub API url %s", baseURL)
		}
		c.BaseURL = u
	}
	return &gitHubClient{gh: c}, nil
}

func (c *gitHubClient) repo(ctx context.Context, r route.Route) (*repoInfo, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, string(r.Username()), string(r.RepoName()))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get GitHub repository %s", r.FullName())
	}
	return &repoInfo{
		FullName:      repo.GetFullName(),
		Owner:         repo.GetOwner().GetLogin(),
		Description:   repo.GetDescription(),
		WebURL:        repo.GetHTMLURL(),
		CloneURL:      repo.GetCloneURL(),
		DefaultBranch: repo.GetDefaultBranch(),
		Stars:         repo.GetStargazersCount(),
		Fork:          repo.GetFork(),
		Archived:      repo.GetArchived(),
	}, nil
}

func (c *gitHubClient) user(ctx context.Context, u route.User) (*userInfo, error) {
	user, _, err := c.gh.Users.Get(ctx, string(u.Username))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get GitHub user %s", u.Username)
	}
	return &userInfo{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		Kind:        user.GetType(),
		WebURL:      user.GetHTMLURL(),
		PublicRepos: user.GetPublicRepos(),
	}, nil
}
