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
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidRepoURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"http://should-not-be-http", false},
		{"https://github.com/user/bar", true},
		{"https://github.com/user/bar.git", true},
		{"https://gitlab.com/qemu-project/qemu.git", true},
		{"git@github.com:user/bar.git", true},
		{"https://github.com/user/bar;rm -rf", false},
	}
	for _, tt := range tests {
		if got := validRepoURL(tt.in); got != tt.want {
			t.Fatalf("validRepoURL(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRepoDirName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"foo-bar", "", true}, // cannot infer repo name after '/'
		{"/bar", "bar", false},
		{"https://github.com/foo/bar", "bar", false},
		{"https://github.com/foo/bar.git", "bar", false},
		{"https://github.com/foo/", "", true},
		{"https://github.com/foo/.hidden", "", true},
	}
	for _, tt := range tests {
		got, err := repoDirName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("repoDirName(%s) error = %v, wantErr %v (got=%s)", tt.in, err, tt.wantErr, got)
		} else if got != tt.want {
			t.Fatalf("repoDirName(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNonEmptyDir(t *testing.T) {
	tmpDir := t.TempDir()

	if got, err := nonEmptyDir(filepath.Join(tmpDir, "missing")); err != nil || got {
		t.Fatalf("nonEmptyDir(missing) = %v, %v", got, err)
	}
	if got, err := nonEmptyDir(tmpDir); err != nil || got {
		t.Fatalf("nonEmptyDir(empty) = %v, %v", got, err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "f"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if got, err := nonEmptyDir(tmpDir); err != nil || !got {
		t.Fatalf("nonEmptyDir(non-empty) = %v, %v", got, err)
	}
}

func TestHandleRepo_rejects(t *testing.T) {
	parent := t.TempDir()
	if err := os.MkdirAll(filepath.Join(parent, "bar", "x"), 0755); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		repo string
	}{
		{"invalid url", "http://github.com/foo/bar"},
		{"hidden dir", "https://github.com/foo/.bar"},
		{"existing destination", "https://github.com/foo/bar.git"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := handleRepo(context.Background(), tt.repo, parent, nil); err == nil {
				t.Errorf("handleRepo(%s) did not fail", tt.repo)
			}
		})
	}
}

func TestClone(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
	src := t.TempDir()
	run := func(tt *testing.T, args ...string) {
		tt.Helper()
		c := exec.Command("git", args...)
		c.Dir = src
		if b, err := c.CombinedOutput(); err != nil {
			tt.Fatalf("git %v failed: %+v\n%s", args, err, string(b))
		}
	}
	run(t, "init", ".")
	run(t, "-c", "user.name=gg", "-c", "user.email=gg@example.com",
		"commit", "--allow-empty", "--message", "initial commit")

	dst := filepath.Join(t.TempDir(), "goodgit")
	if err := clone(context.Background(), src, dst, nil); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(filepath.Join(dst, ".git")); err != nil || !fi.IsDir() {
		t.Fatalf("clone did not create a repository in %s: %v", dst, err)
	}

	if err := clone(context.Background(), filepath.Join(src, "missing"), filepath.Join(t.TempDir(), "x"), nil); err == nil {
		t.Fatal("cloning a missing repository did not fail")
	}

	// git's output goes to the given writer only
	var out bytes.Buffer
	if err := clone(context.Background(), src, filepath.Join(t.TempDir(), "verbose"), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cloning into") {
		t.Errorf("verbose clone output not written to writer: %q", out.String())
	}
}
