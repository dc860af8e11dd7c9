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
	"encoding/json"

	"github.com/pkg/errors"
)

type repoJSON struct {
	User     User     `json:"user"`
	RepoName RepoName `json:"repo_name"`
}

type routeJSON struct {
	User *User     `json:"user,omitempty"`
	Repo *repoJSON `json:"repo,omitempty"`
}

// MarshalJSON encodes r as {"user":{...}} or {"repo":{"user":{...},"repo_name":"..."}}.
func (r Route) MarshalJSON() ([]byte, error) {
	if !r.valid() {
		return nil, errors.New("cannot encode invalid route")
	}
	var v routeJSON
	if r.kind == KindRepo {
		v.Repo = &repoJSON{User: r.user, RepoName: r.repoName}
	} else {
		u := r.user
		v.User = &u
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes the form written by MarshalJSON. Exactly one of
// "user" and "repo" must be present and name a complete route.
func (r *Route) UnmarshalJSON(b []byte) error {
	var v routeJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	var out Route
	switch {
	case v.User != nil && v.Repo != nil:
		return errors.New("route has both user and repo")
	case v.User != nil:
		out = UserRoute(*v.User)
	case v.Repo != nil:
		out = RepoRoute(v.Repo.User, v.Repo.RepoName)
	default:
		return errors.New("route has neither user nor repo")
	}
	if !out.valid() {
		return errors.Errorf("incomplete %s route", out.kind)
	}
	*r = out
	return nil
}
