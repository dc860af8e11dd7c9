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
	"fmt"
)

var (
	ErrNoDomain   = errorKind("no domain found in the provided URL")
	ErrNoRoute    = errorKind("no route for the provided URL")
	ErrNoPath     = errorKind("no path in the provided URL")
	ErrNoUsername = errorKind("no username in the provided URL")
	ErrInvalidURL = errorKind("could not parse the provided URL")
)

type errorKind string

func (e errorKind) Error() string { return string(e) }

// Error is returned by Parse and FromURL. Kind is one of the Err* sentinels,
// so callers can test with errors.Is(err, route.ErrNoRoute).
type Error struct {
	Kind error
	URL  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.URL)
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }
