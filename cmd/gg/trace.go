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
	"log"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
)

const (
	serviceName = "goodgit"
	tracerName  = "goodgit-trace"

	invocationKey = attribute.Key("gg-invocation")
)

// initTracerProvider sets up the global tracer provider. Spans are exported
// to the OTLP gRPC collector at endpoint; with an empty endpoint they are
// recorded but not exported.
func initTracerProvider(ctx context.Context, endpoint string) (*sdktrace.TracerProvider, error) {
	invocation, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate invocation id")
	}
	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			invocationKey.String(invocation.String()),
		))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build trace resource")
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if endpoint != "" {
		target, insecure, err := otlpTarget(endpoint)
		if err != nil {
			return nil, err
		}
		expOpts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(target),
			otlptracegrpc.WithDialOption(grpc.WithUserAgent(serviceName)),
		}
		if insecure {
			expOpts = append(expOpts, otlptracegrpc.WithInsecure())
		}
		exp, err := otlptracegrpc.New(ctx, expOpts...)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create OTLP exporter for %s", endpoint)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		log.Printf("tracing: %v", err)
	}))
	return tp, nil
}

// otlpTarget turns an endpoint given either as host:port or as a URL, the
// form OTEL_EXPORTER_OTLP_ENDPOINT usually takes, into a gRPC target. Bare
// host:port and http URLs use plaintext; https URLs use TLS.
func otlpTarget(endpoint string) (target string, insecure bool, err error) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, true, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, errors.Wrapf(err, "invalid OTLP endpoint %s", endpoint)
	}
	if u.Host == "" {
		return "", false, errors.Errorf("invalid OTLP endpoint %s: no host", endpoint)
	}
	switch u.Scheme {
	case "http":
		return u.Host, true, nil
	case "https":
		return u.Host, false, nil
	}
	return "", false, errors.Errorf("invalid OTLP endpoint %s: unsupported scheme %q", endpoint, u.Scheme)
}
