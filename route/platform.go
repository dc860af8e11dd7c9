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
	"github.com/pkg/errors"
)

// Platform is a supported code hosting service.
type Platform int

const (
	GitHub Platform = iota + 1
	GitLab
)

type platformInfo struct {
	name    string
	text    string
	domain  string
	baseURL string
}

var platformTable = map[Platform]platformInfo{
	GitHub: {name: "GitHub", text: "github", domain: "github.com", baseURL: "https://github.com/"},
	GitLab: {name: "GitLab", text: "gitlab", domain: "gitlab.com", baseURL: "https://gitlab.com/"},
}

var (
	// availablePlatforms maps a lowercase host to the platform serving it.
	availablePlatforms = map[string]Platform{
		"github.com": GitHub,
		"gitlab.com": GitLab,
	}
)

// Platforms returns the known platforms in declaration order.
func Platforms() []Platform { return []Platform{GitHub, GitLab} }

func (p Platform) valid() bool {
	_, ok := platformTable[p]
	return ok
}

// String returns the display name, e.g. "GitHub".
func (p Platform) String() string {
	if info, ok := platformTable[p]; ok {
		return info.name
	}
	return "Platform(?)"
}

// Domain is the host name matched against incoming URLs.
func (p Platform) Domain() string { return platformTable[p].domain }

// BaseURL is the canonical URL prefix, always ending in a slash.
func (p Platform) BaseURL() string { return platformTable[p].baseURL }

// MarshalText encodes p as "github" or "gitlab".
func (p Platform) MarshalText() ([]byte, error) {
	info, ok := platformTable[p]
	if !ok {
		return nil, errors.Errorf("unknown platform %d", int(p))
	}
	return []byte(info.text), nil
}

// UnmarshalText is the inverse of MarshalText.
func (p *Platform) UnmarshalText(b []byte) error {
	for k, info := range platformTable {
		if info.text == string(b) {
			*p = k
			return nil
		}
	}
	return errors.Errorf("unknown platform %q", string(b))
}

// platformForHost returns the platform serving host. host must already be
// lowercase.
func platformForHost(host string) (Platform, bool) {
	p, ok := availablePlatforms[host]
	return p, ok
}
