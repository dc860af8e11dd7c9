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

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type config struct {
	GitHubToken  string `yaml:"github_token"`
	GitLabToken  string `yaml:"gitlab_token"`
	GitHubAPIURL string `yaml:"github_api_url"`
	GitLabAPIURL string `yaml:"gitlab_api_url"`
	CloneDir     string `yaml:"clone_dir"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

const configFile = `config.yaml`

func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot locate config directory")
	}
	return filepath.Join(dir, "goodgit", configFile), nil
}

// hasConfigFile checks if path is an existing regular file.
func hasConfigFile(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return fi.Mode().IsRegular(), nil
}

func parseConfigFile(r io.Reader) (*config, error) {
	var v config
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(&v); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return &v, nil
}

// getConfig returns the parsed config file at path if it exists, otherwise
// returns a zero config.
func getConfig(path string) (config, error) {
	var v config
	ok, err := hasConfigFile(path)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return v, errors.Wrap(err, "error opening config file")
	}
	defer f.Close()
	c, err := parseConfigFile(f)
	if err != nil {
		return v, errors.Wrapf(err, "failed to read %s", path)
	}
	if c.CloneDir, err = expandHome(c.CloneDir); err != nil {
		return v, err
	}
	return *c, nil
}

// applyEnv lets GITHUB_TOKEN and GITLAB_TOKEN override the config file.
func (c *config) applyEnv(getenv func(string) string) {
	if v := getenv("GITHUB_TOKEN"); v != "" {
		c.GitHubToken = v
	}
	if v := getenv("GITLAB_TOKEN"); v != "" {
		c.GitLabToken = v
	}
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot expand ~")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
