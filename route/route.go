// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package route classifies GitHub and GitLab URLs as user or repository
// references and renders them back in canonical form.
package route

import (
	"net/url"

	"github.com/pkg/errors"
)

// Username identifies a user, organization or group on a platform.
type Username string

// RepoName identifies a repository under a Username, without a ".git" suffix.
type RepoName string

// User is a user (or organization) on a specific platform.
type User struct {
	Platform Platform `json:"platform"`
	Username Username `json:"username"`
}

// String renders the canonical profile URL, e.g. https://github.com/ctsrc.
func (u User) String() string {
	if !u.Platform.valid() || u.Username == "" {
		return ""
	}
	return u.Platform.BaseURL() + string(u.Username)
}

// Kind tells which variant a Route holds.
type Kind int

const (
	KindUser Kind = iota + 1
	KindRepo
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindRepo:
		return "repo"
	}
	return "invalid"
}

// Route is the classified form of a URL: either a user or a repository of a
// user. The zero value is not a valid route.
type Route struct {
	kind     Kind
	user     User
	repoName RepoName
}

// UserRoute returns a route naming only u.
func UserRoute(u User) Route { return Route{kind: KindUser, user: u} }

// RepoRoute returns a route naming repository name owned by u.
func RepoRoute(u User, name RepoName) Route {
	return Route{kind: KindRepo, user: u, repoName: name}
}

// Kind reports whether r names a user or a repository.
func (r Route) Kind() Kind { return r.kind }

// IsRepo is shorthand for r.Kind() == KindRepo.
func (r Route) IsRepo() bool { return r.kind == KindRepo }

// User is the routed user, or the owner of the routed repository.
func (r Route) User() User { return r.user }

// Platform is the platform of r's user.
func (r Route) Platform() Platform { return r.user.Platform }

// Username is the name of r's user.
func (r Route) Username() Username { return r.user.Username }

// RepoName is the repository name, empty for user routes.
func (r Route) RepoName() RepoName { return r.repoName }

func (r Route) valid() bool {
	switch r.kind {
	case KindUser:
		return r.user.String() != ""
	case KindRepo:
		return r.user.String() != "" && r.repoName != ""
	}
	return false
}

// String renders the canonical URL: <base><username>[/<repo>].
func (r Route) String() string {
	if !r.valid() {
		return ""
	}
	if r.kind == KindRepo {
		return r.user.String() + "/" + string(r.repoName)
	}
	return r.user.String()
}

// FullName is "<username>" for user routes and "<username>/<repo>" otherwise.
func (r Route) FullName() string {
	if r.kind == KindRepo {
		return string(r.user.Username) + "/" + string(r.repoName)
	}
	return string(r.user.Username)
}

// CloneURL is the HTTPS git remote of a repo route, empty for user routes.
func (r Route) CloneURL() string {
	if !r.IsRepo() || !r.valid() {
		return ""
	}
	return r.String() + ".git"
}

// URL parses the canonical form back into a URL.
func (r Route) URL() (*url.URL, error) {
	if !r.valid() {
		return nil, errors.New("invalid route")
	}
	u, err := url.Parse(r.String())
	return u, errors.Wrap(err, "canonical route did not parse as URL")
}
