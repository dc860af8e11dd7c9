package main

import (
	"github.com/pkg/errors"

	"github.com/ctsrc/goodgit/route"
)

const (
	paramURL = "url"
)

// parseReferer routes v, which comes from the url parameter, the form or the
// Referer header.
func parseReferer(v string) (route.Route, error) {
	r, err := route.Parse(v)
	if err != nil {
		return route.Route{}, errors.Wrapf(err, "failed to route %q", v)
	}
	return r, nil
}
