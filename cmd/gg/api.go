package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"

	"github.com/ctsrc/goodgit/route"
)

// HTTPClient is the subset of *http.Client the API clients need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// platformClient looks up repositories and users on one hosting platform.
type platformClient interface {
	repo(ctx context.Context, r route.Route) (*repoInfo, error)
	user(ctx context.Context, u route.User) (*userInfo, error)
}

type repoInfo struct {
	FullName      string
	Owner         string
	Description   string
	WebURL        string
	CloneURL      string
	DefaultBranch string
	Stars         int
	Fork          bool
	Archived      bool
}

type userInfo struct {
	Login       string
	Name        string
	Kind        string // User, Organization or Group
	WebURL      string
	PublicRepos int
}

func newPlatformClients(ctx context.Context, cfg config, hc *http.Client) (map[route.Platform]platformClient, error) {
	gh, err := newGitHubClient(ctx, cfg.GitHubAPIURL, cfg.GitHubToken, hc)
	if err != nil {
		return nil, err
	}
	return map[route.Platform]platformClient{
		route.GitHub: gh,
		route.GitLab: newGitLabClient(cfg.GitLabAPIURL, cfg.GitLabToken, hc),
	}, nil
}

func printRepoInfo(w io.Writer, r *repoInfo) {
	label := color.New(color.Bold)
	fmt.Fprintf(w, "\t%s %s\n", label.Sprint("Repository:"), r.FullName)
	if r.Description != "" {
		fmt.Fprintf(w, "\t%s %s\n", label.Sprint("Description:"), r.Description)
	}
	if r.DefaultBranch != "" {
		fmt.Fprintf(w, "\t%s %s\n", label.Sprint("Default branch:"), r.DefaultBranch)
	}
	fmt.Fprintf(w, "\t%s %d\n", label.Sprint("Stars:"), r.Stars)
	if r.Fork {
		fmt.Fprintf(w, "\t%s\n", color.YellowString("This repository is a fork."))
	}
	if r.Archived {
		fmt.Fprintf(w, "\t%s\n", color.YellowString("This repository is archived."))
	}
}

func printUserInfo(w io.Writer, u *userInfo) {
	label := color.New(color.Bold)
	name := u.Login
	if u.Name != "" && u.Name != u.Login {
		name = fmt.Sprintf("%s (%s)", u.Name, u.Login)
	}
	fmt.Fprintf(w, "\t%s %s\n", label.Sprintf("%s:", u.Kind), name)
	if u.WebURL != "" {
		fmt.Fprintf(w, "\t%s %s\n", label.Sprint("Profile:"), color.CyanString(u.WebURL))
	}
	if u.PublicRepos > 0 {
		fmt.Fprintf(w, "\t%s %d\n", label.Sprint("Public repositories:"), u.PublicRepos)
	}
}
