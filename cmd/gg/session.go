package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ctsrc/goodgit/route"
)

// session carries one invocation of gg through its stages: report the
// route, handle the initial repository (if any), then look up the user.
type session struct {
	tracer  trace.Tracer
	clients map[route.Platform]platformClient
	out     io.Writer

	cloneDir    string
	offline     bool
	noClone     bool
	assumeYes   bool
	interactive bool
	verbose     bool
	quiet       bool

	confirm func(repo, dir string) (bool, error)
}

// printJSON writes r as a single JSON line to stdout and sends everything
// else s prints to w.
func (s *session) printJSON(stdout, w io.Writer, r route.Route) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(stdout, string(b)); err != nil {
		return err
	}
	s.out = w
	s.quiet = true
	return nil
}

func (s *session) run(ctx context.Context, r route.Route) error {
	ctx, span := s.tracer.Start(ctx, "main")
	defer span.End()

	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	span.AddEvent("Route found for URL", trace.WithAttributes(attribute.String("route", string(b))))
	if !s.quiet {
		kind := "User"
		if r.IsRepo() {
			kind = "Repository"
		}
		fmt.Fprintf(s.out, "%s %s %s\n", successPrefix, kind, color.CyanString(r.String()))
	}

	user, err := s.repoStage(ctx, r)
	if err != nil {
		return fail(span, err)
	}
	if err := s.userStage(ctx, user); err != nil {
		return fail(span, err)
	}
	return nil
}

// repoStage fetches repository details and clones it for repo routes. It
// returns the user to look up next: the repository owner, or the routed user.
func (s *session) repoStage(ctx context.Context, r route.Route) (route.User, error) {
	ctx, span := s.tracer.Start(ctx, "Initial repo clone and repo info retrieval")
	defer span.End()

	if !r.IsRepo() {
		span.AddEvent("URL is for a user. No initial repo to clone :)",
			trace.WithAttributes(attribute.String("user", r.User().String())))
		return r.User(), nil
	}

	p := r.Platform()
	owner := r.User()
	cloneURL := r.CloneURL()
	highlight := func(s string) string { return color.CyanString(s) }

	if !s.offline {
		client, err := s.client(p)
		if err != nil {
			return owner, fail(span, err)
		}
		end := logProgress(s.out,
			fmt.Sprintf("Retrieving repository %s from the %s API...", highlight(r.FullName()), p),
			fmt.Sprintf("Retrieved repository %s.", highlight(r.FullName())),
			fmt.Sprintf("Failed to retrieve repository %s.", highlight(r.FullName())))
		info, err := client.repo(ctx, r)
		end(err == nil)
		if err != nil {
			return owner, fail(span, err)
		}
		span.AddEvent(fmt.Sprintf("Retrieved info about repo from %s API", p),
			trace.WithAttributes(attribute.String("full_name", info.FullName)))
		printRepoInfo(s.out, info)

		// the API spells names the way their owner does
		if info.Owner != "" {
			owner = route.User{Platform: p, Username: route.Username(info.Owner)}
		}
		if info.CloneURL != "" {
			cloneURL = info.CloneURL
		}
	}

	if s.noClone {
		return owner, nil
	}
	dir, err := repoDirName(cloneURL)
	if err != nil {
		return owner, fail(span, err)
	}
	if !s.assumeYes {
		if !s.interactive {
			return owner, fail(span, errors.Errorf("cannot confirm cloning %s: stdin is not a terminal, pass --%s to clone without asking", cloneURL, flYes))
		}
		ok, err := s.confirm(cloneURL, filepath.Join(s.cloneDir, dir))
		if err != nil {
			return owner, fail(span, err)
		}
		if !ok {
			fmt.Fprintf(s.out, "%s Skipped cloning %s.\n", infoPrefix, highlight(cloneURL))
			return owner, nil
		}
	}

	var end func(bool)
	var gitOut io.Writer
	if s.verbose {
		gitOut = s.out
	} else {
		end = logProgress(s.out,
			fmt.Sprintf("Cloning git repository %s...", highlight(cloneURL)),
			fmt.Sprintf("Cloned git repository %s.", highlight(cloneURL)),
			fmt.Sprintf("Failed to clone git repository %s", highlight(cloneURL)))
	}
	target, err := handleRepo(ctx, cloneURL, s.cloneDir, gitOut)
	if end != nil {
		end(err == nil)
	}
	if err != nil {
		return owner, fail(span, err)
	}
	span.AddEvent(fmt.Sprintf("Cloned %s repo", p), trace.WithAttributes(attribute.String("dir", target)))
	fmt.Fprintf(s.out, "%s Repository is at %s\n", infoPrefix, highlight(target))
	return owner, nil
}

// userStage fetches details about u from its platform's API.
func (s *session) userStage(ctx context.Context, u route.User) error {
	ctx, span := s.tracer.Start(ctx, "User info retrieval")
	defer span.End()

	if s.offline {
		span.AddEvent("Skipped user info retrieval in offline mode")
		return nil
	}
	client, err := s.client(u.Platform)
	if err != nil {
		return fail(span, err)
	}
	end := logProgress(s.out,
		fmt.Sprintf("Retrieving user %s from the %s API...", color.CyanString(string(u.Username)), u.Platform),
		fmt.Sprintf("Retrieved user %s.", color.CyanString(string(u.Username))),
		fmt.Sprintf("Failed to retrieve user %s.", color.CyanString(string(u.Username))))
	info, err := client.user(ctx, u)
	end(err == nil)
	if err != nil {
		return fail(span, err)
	}
	span.AddEvent(fmt.Sprintf("Retrieved info about user from %s API", u.Platform),
		trace.WithAttributes(
			attribute.String("login", info.Login),
			attribute.String("kind", info.Kind)))
	printUserInfo(s.out, info)
	return nil
}

func (s *session) client(p route.Platform) (platformClient, error) {
	c, ok := s.clients[p]
	if !ok {
		return nil, errors.Errorf("no API client for %s", p)
	}
	return c, nil
}

// fail records err on span and returns it unchanged.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
