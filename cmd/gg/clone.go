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
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

var (
	repoPattern = regexp.MustCompile(`^(git@|git://|https://)[a-zA-Z0-9/._:-]*$`)
)

func validRepoURL(repo string) bool { return repoPattern.MatchString(repo) }

// handleRepo clones repo into a new directory under parent named after the
// repository and returns that directory. A non-nil out receives git's output.
func handleRepo(ctx context.Context, repo, parent string, out io.Writer) (string, error) {
	if !validRepoURL(repo) {
		return "", errors.Errorf("invalid git repo url: %s", repo)
	}
	name, err := repoDirName(repo)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(parent, name)
	if exists, err := nonEmptyDir(dir); err != nil {
		return "", err
	} else if exists {
		return "", errors.Errorf("destination %s already exists and is not an empty directory", dir)
	}
	return dir, clone(ctx, repo, dir, out)
}

func repoDirName(repo string) (string, error) {
	repo = strings.TrimSuffix(repo, ".git")
	i := strings.LastIndex(repo, "/")
	if i == -1 {
		return "", errors.Errorf("cannot infer directory name from repo %s", repo)
	}
	dir := repo[i+1:]
	if dir == "" {
		return "", errors.Errorf("cannot parse directory name from repo %s", repo)
	}
	if strings.HasPrefix(dir, ".") {
		return "", errors.Errorf("attempt to clone into hidden directory: %s", dir)
	}
	return dir, nil
}

func nonEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to check clone destination %s", dir)
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err == io.EOF {
		return false, nil
	}
	return true, nil
}

func clone(ctx context.Context, gitRepo, dir string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--", gitRepo, dir)
	if out != nil {
		cmd.Stdout = colorWriter{out, color.FgGreen}
		cmd.Stderr = colorWriter{out, color.FgRed}
		return errors.Wrap(cmd.Run(), "could not clone git repository")
	}
	b, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Errorf("could not clone git repository: %+v, output:\n%s", err, string(b))
	}
	return nil
}

type colorWriter struct {
	out   io.Writer
	color color.Attribute
}

func (w colorWriter) Write(p []byte) (int, error) {
	if _, err := color.New(w.color).Fprint(w.out, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
