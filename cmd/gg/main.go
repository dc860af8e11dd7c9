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
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ctsrc/goodgit/route"
)

const (
	flURL          = "url"
	flConfig       = "config"
	flDir          = "dir"
	flJSON         = "json"
	flOffline      = "offline"
	flNoClone      = "no-clone"
	flYes          = "yes"
	flOTLPEndpoint = "otlp-endpoint"
	flVerbose      = "verbose"

	shutdownTimeout = 5 * time.Second
)

var (
	errorLabel    = color.New(color.FgRed, color.Bold)
	successPrefix = fmt.Sprintf("[ %s ]", color.New(color.Bold, color.FgGreen).Sprint("✓"))
	errorPrefix   = fmt.Sprintf("[ %s ]", errorLabel.Sprint("✖"))
	infoPrefix    = fmt.Sprintf("[ %s ]", color.New(color.Bold, color.FgBlue).Sprint("i"))
	// we have to reset the inherited color first from survey.QuestionIcon
	// see https://github.com/AlecAivazis/survey/issues/193
	questionPrefix = fmt.Sprintf("%s %s ]",
		color.New(color.Reset).Sprint("["),
		color.New(color.Bold, color.FgYellow).Sprint("?"))
	questionSelectFocusIcon = "❯"
)

func main() {
	app := cli.NewApp()
	app.Name = "gg"
	app.Usage = "Look up and clone GitHub and GitLab users and repositories by URL."
	app.UsageText = "gg [options] [URL]"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   flURL,
			EnvVar: "URL",
			Usage:  "URL of user or repo (the positional argument takes precedence)",
		},
		cli.StringFlag{
			Name:   flConfig,
			EnvVar: "GG_CONFIG",
			Usage:  "path to the config file (default: $XDG_CONFIG_HOME/goodgit/config.yaml)",
		},
		cli.StringFlag{
			Name:   flDir,
			EnvVar: "GG_CLONE_DIR",
			Usage:  "directory to clone repositories into",
		},
		cli.BoolFlag{
			Name:  flJSON,
			Usage: "print the route as JSON",
		},
		cli.BoolFlag{
			Name:  flOffline,
			Usage: "do not query the GitHub or GitLab API",
		},
		cli.BoolFlag{
			Name:  flNoClone,
			Usage: "do not clone repositories",
		},
		cli.BoolFlag{
			Name:  flYes + ", y",
			Usage: "clone without asking for confirmation",
		},
		cli.StringFlag{
			Name:   flOTLPEndpoint,
			EnvVar: "OTEL_EXPORTER_OTLP_ENDPOINT",
			Usage:  "(optional) host:port of an OTLP gRPC collector to export traces to",
		},
		cli.BoolFlag{
			Name:  flVerbose,
			Usage: "show git output",
		},
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		printError(color.Error, err)
		os.Exit(1)
	}
}

// printError reports err on a single line, without the stack trace
// pkg/errors would add with %+v.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorLabel.Sprint("Error:"), err)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveURL picks the URL from the positional argument, then the --url flag
// (or URL variable), and finally asks for it when stdin is a terminal.
func resolveURL(arg, flagValue string, interactive bool, prompt func() (string, error)) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	if !interactive {
		return "", errors.Errorf("no URL given: pass it as an argument, with --%s or in the URL environment variable", flURL)
	}
	return prompt()
}

func logProgress(w io.Writer, msg, endMsg, errMsg string) func(bool) {
	s := spinner.New(spinner.CharSets[9], 300*time.Millisecond, spinner.WithWriter(w))
	s.Prefix = "[ "
	s.Suffix = " ] " + msg
	s.Start()
	return func(success bool) {
		s.Stop()
		if success {
			fmt.Fprintf(w, "%s %s\n", successPrefix, endMsg)
		} else {
			fmt.Fprintf(w, "%s %s\n", errorPrefix, errMsg)
		}
	}
}

func run(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfgPath := c.String(flConfig)
	if cfgPath == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}
	cfg, err := getConfig(cfgPath)
	if err != nil {
		return err
	}
	cfg.applyEnv(os.Getenv)
	if v := c.String(flDir); v != "" {
		cfg.CloneDir = v
	}
	if v := c.String(flOTLPEndpoint); v != "" {
		cfg.OTLPEndpoint = v
	}

	interactive := isTerminal(os.Stdin)
	raw, err := resolveURL(c.Args().First(), c.String(flURL), interactive, promptURL)
	if err != nil {
		return err
	}
	r, err := route.Parse(raw)
	if err != nil {
		return errors.Wrap(err, "cannot route URL")
	}

	tp, err := initTracerProvider(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()
		if err := tp.Shutdown(sctx); err != nil {
			fmt.Fprintf(os.Stderr, "%s failed to flush traces: %v\n", errorPrefix, err)
		}
	}()

	// API calls show up as children of the stage spans
	hc := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport, otelhttp.WithTracerProvider(tp))}
	clients, err := newPlatformClients(ctx, cfg, hc)
	if err != nil {
		return err
	}

	s := &session{
		tracer:      tp.Tracer(tracerName),
		clients:     clients,
		out:         color.Output,
		cloneDir:    cfg.CloneDir,
		offline:     c.Bool(flOffline),
		noClone:     c.Bool(flNoClone),
		assumeYes:   c.Bool(flYes),
		interactive: interactive,
		verbose:     c.Bool(flVerbose),
	}
	stdio := survey.WithStdio(os.Stdin, os.Stdout, os.Stderr)
	if c.Bool(flJSON) {
		// keep stdout machine readable
		if err := s.printJSON(os.Stdout, color.Error, r); err != nil {
			return err
		}
		stdio = survey.WithStdio(os.Stdin, os.Stderr, os.Stderr)
	}
	s.confirm = confirmClone(stdio)
	return s.run(ctx, r)
}
