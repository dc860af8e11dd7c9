package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/ctsrc/goodgit/route"
)

const defaultGitLabURL = "https://gitlab.com"

// gitLabClient talks to the GitLab REST API v4.
type gitLabClient struct {
	baseURL    string
	token      string
	httpClient HTTPClient
}

func newGitLabClient(baseURL, token string, httpClient HTTPClient) *gitLabClient {
	if baseURL == "" {
		baseURL = defaultGitLabURL
	}
	return &gitLabClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.code, e.body)
}

func (c *gitLabClient) repo(ctx context.Context, r route.Route) (*repoInfo, error) {
	fullName, err := url.PathUnescape(r.FullName())
	if err != nil {
		return nil, errors.Wrapf(err, "invalid project path %s", r.FullName())
	}
	u := fmt.Sprintf("%s/api/v4/projects/%s", c.baseURL, url.PathEscape(fullName))

	var p gitlabProject
	if err := c.doRequest(ctx, u, &p); err != nil {
		return nil, errors.Wrapf(err, "failed to get GitLab project %s", fullName)
	}

	owner := p.Namespace.FullPath
	if strings.Contains(owner, "/") {
		// subgroup; the route can only name the top-level namespace
		owner = ""
	}
	return &repoInfo{
		FullName:      p.PathWithNamespace,
		Owner:         owner,
		Description:   p.Description,
		WebURL:        p.WebURL,
		CloneURL:      p.HTTPURLToRepo,
		DefaultBranch: p.DefaultBranch,
		Stars:         p.StarCount,
		Fork:          p.ForkedFromProject != nil,
		Archived:      p.Archived,
	}, nil
}

// user looks up u as a user first and falls back to a group of that name.
func (c *gitLabClient) user(ctx context.Context, u route.User) (*userInfo, error) {
	name, err := url.PathUnescape(string(u.Username))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid username %s", u.Username)
	}

	var users []gitlabUser
	q := url.Values{"username": []string{name}}
	if err := c.doRequest(ctx, c.baseURL+"/api/v4/users?"+q.Encode(), &users); err != nil {
		return nil, errors.Wrapf(err, "failed to get GitLab user %s", name)
	}
	if len(users) > 0 {
		return &userInfo{
			Login:  users[0].Username,
			Name:   users[0].Name,
			Kind:   "User",
			WebURL: users[0].WebURL,
		}, nil
	}

	var g gitlabGroup
	err = c.doRequest(ctx, c.baseURL+"/api/v4/groups/"+url.PathEscape(name), &g)
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusNotFound {
		return nil, errors.Errorf("no GitLab user or group named %s", name)
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to get GitLab group %s", name)
	}
	return &userInfo{
		Login:  g.FullPath,
		Name:   g.Name,
		Kind:   "Group",
		WebURL: g.WebURL,
	}, nil
}

func (c *gitLabClient) doRequest(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	if c.token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

// GitLab API response types
type gitlabProject struct {
	PathWithNamespace string    `json:"path_with_namespace"`
	Description       string    `json:"description"`
	WebURL            string    `json:"web_url"`
	HTTPURLToRepo     string    `json:"http_url_to_repo"`
	DefaultBranch     string    `json:"default_branch"`
	StarCount         int       `json:"star_count"`
	Archived          bool      `json:"archived"`
	ForkedFromProject *struct{} `json:"forked_from_project"`
	Namespace         struct {
		FullPath string `json:"full_path"`
	} `json:"namespace"`
}

type gitlabUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	WebURL   string `json:"web_url"`
}

type gitlabGroup struct {
	FullPath string `json:"full_path"`
	Name     string `json:"name"`
	WebURL   string `json:"web_url"`
}
