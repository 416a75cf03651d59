package health

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestReporter_Healthy(t *testing.T) {
	reporter := NewReporter("v1.0.0")

	reporter.RegisterChecker("storage", NewSimpleChecker("storage", func(context.Context) error {
		return nil
	}))

	response := reporter.Report(context.Background())

	if response.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
	if !response.Healthy() {
		t.Error("healthy response should report Healthy()")
	}
	if response.Version != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %s", response.Version)
	}
	if len(response.Checks) != 1 {
		t.Errorf("expected 1 check, got %d", len(response.Checks))
	}
}

func TestReporter_Unhealthy(t *testing.T) {
	reporter := NewReporter("v1.0.0")

	reporter.RegisterChecker("storage", NewSimpleChecker("storage", func(context.Context) error {
		return errors.New("connection refused")
	}))
	reporter.RegisterChecker("kafka", NewOptionalChecker("kafka", func(context.Context) error {
		return errors.New("no brokers")
	}))

	response := reporter.Report(context.Background())

	if response.Status != StatusUnhealthy {
		t.Errorf("expected status unhealthy, got %s", response.Status)
	}
	if response.Healthy() {
		t.Error("unhealthy response should not report Healthy()")
	}
	if msg := response.Checks["storage"].Message; msg != "connection refused" {
		t.Errorf("unexpected storage message %q", msg)
	}
}

func TestReporter_DegradedOnOptionalFailure(t *testing.T) {
	reporter := NewReporter("dev")

	reporter.RegisterChecker("storage", NewSimpleChecker("storage", func(context.Context) error { return nil }))
	reporter.RegisterChecker("kafka", NewOptionalChecker("kafka", func(context.Context) error {
		return errors.New("no brokers")
	}))

	response := reporter.Report(context.Background())

	if response.Status != StatusDegraded {
		t.Errorf("expected status degraded, got %s", response.Status)
	}
	if !response.Healthy() {
		t.Error("degraded response should still report Healthy()")
	}
	if response.Checks["kafka"].Status != StatusDegraded {
		t.Errorf("expected kafka check degraded, got %s", response.Checks["kafka"].Status)
	}
}

func TestReporter_NoCheckers(t *testing.T) {
	response := NewReporter("dev").Report(context.Background())

	if response.Status != StatusHealthy {
		t.Errorf("expected status healthy without checkers, got %s", response.Status)
	}
}

func TestReporter_CheckTimeout(t *testing.T) {
	reporter := NewReporter("dev")
	reporter.timeout = 10 * time.Millisecond

	reporter.RegisterChecker("slow", NewSimpleChecker("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	response := reporter.Report(context.Background())

	if response.Status != StatusUnhealthy {
		t.Errorf("expected status unhealthy on timeout, got %s", response.Status)
	}
}

func TestReporter_Names(t *testing.T) {
	reporter := NewReporter("dev")
	noop := func(context.Context) error { return nil }
	reporter.RegisterChecker("storage", NewSimpleChecker("storage", noop))
	reporter.RegisterChecker("kafka", NewOptionalChecker("kafka", noop))

	names := reporter.Names()
	if len(names) != 2 || names[0] != "kafka" || names[1] != "storage" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestResponse_WriteJSON(t *testing.T) {
	reporter := NewReporter("v1.0.0")
	reporter.RegisterChecker("storage", NewSimpleChecker("storage", func(context.Context) error { return nil }))

	var buf bytes.Buffer
	if err := reporter.Report(context.Background()).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded Response
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", decoded.Status)
	}
	if _, ok := decoded.Checks["storage"]; !ok {
		t.Error("expected storage check in output")
	}
}

func TestSimpleChecker(t *testing.T) {
	checker := NewSimpleChecker("test", func(context.Context) error {
		time.Sleep(10 * time.Millisecond)
		return nil
	})

	check := checker.Check(context.Background())

	if check.Name != "test" {
		t.Errorf("expected name 'test', got %s", check.Name)
	}
	if check.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", check.Status)
	}
	if check.DurationMs < 10 {
		t.Errorf("expected duration >= 10ms, got %d", check.DurationMs)
	}
}

func TestReporter_SetBuild(t *testing.T) {
	reporter := NewReporter("v1.2.0")
	reporter.SetBuild("abc123", "2024-05-17")

	var buf bytes.Buffer
	if err := reporter.Report(context.Background()).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	for _, part := range []string{`"commit": "abc123"`, `"build_date": "2024-05-17"`, `"version": "v1.2.0"`} {
		if !bytes.Contains(buf.Bytes(), []byte(part)) {
			t.Errorf("expected %s in %s", part, buf.String())
		}
	}
}
