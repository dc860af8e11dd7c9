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

package route

import (
	"net"
	"net/url"
	"strings"
)

const gitSuffix = ".git"

// Parse parses raw as a URL and routes it with FromURL.
func Parse(raw string) (Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Route{}, &Error{Kind: ErrInvalidURL, URL: raw, Err: err}
	}
	return FromURL(u)
}

// FromURL classifies u as a user or repository route.
//
// Only the first two path segments are considered, so web UI sub-pages
// (/wiki/..., /-/network/..., /tree/main), query strings and fragments are
// dropped. Trailing ".git" suffixes are stripped from the repository name
// until none is left, so that the rendered route routes to itself. An empty
// repository segment, as in https://github.com/ctsrc/ or
// https://github.com/ctsrc/.git, yields a user route.
func FromURL(u *url.URL) (Route, error) {
	fail := func(kind error) (Route, error) {
		return Route{}, &Error{Kind: kind, URL: u.String()}
	}

	host := u.Hostname()
	if host == "" || net.ParseIP(host) != nil {
		return fail(ErrNoDomain)
	}
	platform, ok := platformForHost(strings.ToLower(host))
	if !ok {
		return fail(ErrNoRoute)
	}

	path := u.EscapedPath()
	if path == "" {
		return fail(ErrNoPath)
	}
	parts := strings.SplitN(path, "/", 4)
	if len(parts) < 2 || parts[1] == "" {
		return fail(ErrNoUsername)
	}
	user := User{Platform: platform, Username: Username(parts[1])}

	if len(parts) < 3 {
		return UserRoute(user), nil
	}
	name := parts[2]
	for strings.HasSuffix(name, gitSuffix) {
		name = strings.TrimSuffix(name, gitSuffix)
	}
	if name == "" {
		return UserRoute(user), nil
	}
	return RepoRoute(user, RepoName(name)), nil
}
