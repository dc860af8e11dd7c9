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
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestOtlpTarget(t *testing.T) {
	tests := []struct {
		in           string
		wantTarget   string
		wantInsecure bool
		wantErr      bool
	}{
		{in: "localhost:4317", wantTarget: "localhost:4317", wantInsecure: true},
		{in: "http://localhost:4317", wantTarget: "localhost:4317", wantInsecure: true},
		{in: "http://collector:4317/", wantTarget: "collector:4317", wantInsecure: true},
		{in: "https://otel.example.com:443", wantTarget: "otel.example.com:443", wantInsecure: false},
		{in: "http://", wantErr: true},
		{in: "ftp://collector:4317", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			target, insecure, err := otlpTarget(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("otlpTarget(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if target != tt.wantTarget || insecure != tt.wantInsecure {
				t.Errorf("otlpTarget(%s) = (%s, %v), want (%s, %v)", tt.in, target, insecure, tt.wantTarget, tt.wantInsecure)
			}
		})
	}
}

func TestInitTracerProvider_resource(t *testing.T) {
	ctx := context.Background()
	tp, err := initTracerProvider(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Shutdown(ctx)

	sr := tracetest.NewSpanRecorder()
	tp.RegisterSpanProcessor(sr)
	_, span := tp.Tracer(tracerName).Start(ctx, "main")
	span.End()

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(ended))
	}
	attrs := ended[0].Resource().Set()
	if v, ok := attrs.Value(semconv.ServiceNameKey); !ok || v.AsString() != serviceName {
		t.Errorf("service.name = %q, want %q", v.AsString(), serviceName)
	}
	v, ok := attrs.Value(invocationKey)
	if !ok {
		t.Fatalf("resource has no %s attribute", invocationKey)
	}
	id, err := uuid.Parse(v.AsString())
	if err != nil {
		t.Fatalf("invocation id %q: %v", v.AsString(), err)
	}
	if id.Version() != 7 {
		t.Errorf("invocation id version = %d, want 7", id.Version())
	}
}

func TestInitTracerProvider_invalidEndpoint(t *testing.T) {
	if _, err := initTracerProvider(context.Background(), "ftp://collector:4317"); err == nil {
		t.Error("expected error for unsupported endpoint scheme")
	}
}
