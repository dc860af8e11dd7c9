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
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/ctsrc/goodgit/route"
)

var surveyIconOpts = survey.WithIcons(func(icons *survey.IconSet) {
	icons.Question.Text = questionPrefix
	icons.Question.Format = ""
	icons.Error.Text = errorPrefix
	icons.Error.Format = ""
	icons.SelectFocus.Text = questionSelectFocusIcon
})

// promptURL asks for a URL until one can be routed.
func promptURL() (string, error) {
	var raw string
	if err := survey.AskOne(&survey.Input{
		Message: "URL of user or repo:",
		Help:    "e.g. https://github.com/ctsrc/goodgit or https://gitlab.com/qemu-project",
	}, &raw,
		survey.WithValidator(survey.Required),
		survey.WithValidator(validateRouteURL),
		surveyIconOpts,
	); err != nil {
		return "", errors.Wrap(err, "could not prompt for a URL")
	}
	return raw, nil
}

func validateRouteURL(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return errors.Errorf("unexpected answer type %T", ans)
	}
	_, err := route.Parse(s)
	return err
}

// confirmClone returns a prompt asking whether to clone repo into dir,
// talking to the terminal through stdio.
func confirmClone(stdio survey.AskOpt) func(repo, dir string) (bool, error) {
	return func(repo, dir string) (bool, error) {
		var ok bool
		if err := survey.AskOne(&survey.Confirm{
			Default: true,
			Message: fmt.Sprintf("Clone %s into %s?",
				color.New(color.Bold, color.FgHiCyan).Sprint(repo),
				color.New(color.Bold).Sprint(dir)),
		}, &ok, surveyIconOpts, stdio); err != nil {
			return false, errors.Wrapf(err, "could not prompt for confirmation cloning %s", repo)
		}
		return ok, nil
	}
}
