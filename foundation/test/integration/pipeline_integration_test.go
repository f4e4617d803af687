// File: pipeline_integration_test.go
// Title: Pipeline Integration Tests
// Description: Cross-module tests wiring config, log, error and calc
//              together the way the applications do.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation of pipeline integration tests

package integration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/mCALC/foundation/calc"
	mcconfig "github.com/msto63/mCALC/foundation/core/config"
	mcerror "github.com/msto63/mCALC/foundation/core/error"
	mclog "github.com/msto63/mCALC/foundation/core/log"
)

const engineConfig = `
[engine]
max_input_length = 16

[logging]
level = "debug"
format = "json"
`

// newPipeline builds an engine from a TOML document. The engine logs JSON
// into the returned buffer.
func newPipeline(t *testing.T, content string) (*calc.Engine, *syncBuffer) {
	t.Helper()

	cfg, err := mcconfig.LoadFromString(content, mcconfig.FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}

	level, err := mclog.ParseLevel(cfg.GetString("logging.level", "info"))
	if err != nil {
		t.Fatalf("ParseLevel() error = %v", err)
	}
	format, err := mclog.ParseFormat(cfg.GetString("logging.format", "json"))
	if err != nil {
		t.Fatalf("ParseFormat() error = %v", err)
	}

	out := &syncBuffer{}
	logger := mclog.NewWithConfig(mclog.Config{Level: level, Format: format, Output: out})

	engine := calc.New(calc.Options{
		Logger:         logger,
		MaxInputLength: cfg.GetInt("engine.max_input_length"),
	})
	return engine, out
}

// syncBuffer is a bytes.Buffer safe for concurrent writers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) entries(t *testing.T) []map[string]interface{} {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(bytes.NewReader(b.buf.Bytes()))
	for scanner.Scan() {
		var entry map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", scanner.Text())
		}
		entries = append(entries, entry)
	}
	return entries
}

func findEntry(entries []map[string]interface{}, message string) map[string]interface{} {
	for _, entry := range entries {
		if entry["message"] == message {
			return entry
		}
	}
	return nil
}

func TestPipelineConfigDrivesEngine(t *testing.T) {
	engine, _ := newPipeline(t, engineConfig)

	if got := engine.MaxInputLength(); got != 16 {
		t.Fatalf("MaxInputLength() = %d, want 16", got)
	}

	result, err := engine.Evaluate(context.Background(), "2 * 3 + 4")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if result.Value != 10 {
		t.Errorf("Value = %v, want 10", result.Value)
	}

	_, err = engine.Evaluate(context.Background(), strings.Repeat("1+", 8)+"1")
	if !mcerror.HasCode(err, mcerror.CodeInputTooLong) {
		t.Fatalf("error code = %v, want %v", mcerror.GetCode(err), mcerror.CodeInputTooLong)
	}
	if pos, ok := calc.ErrorPosition(err); !ok || pos != 16 {
		t.Errorf("ErrorPosition() = (%d, %v), want (16, true)", pos, ok)
	}
}

func TestPipelineDefaultsWithoutEngineSection(t *testing.T) {
	engine, _ := newPipeline(t, "[logging]\nlevel = \"error\"\n")

	if got := engine.MaxInputLength(); got != 4096 {
		t.Errorf("MaxInputLength() = %d, want 4096", got)
	}
}

func TestPipelineStructuredLogging(t *testing.T) {
	engine, out := newPipeline(t, engineConfig)
	ctx := context.Background()

	if _, err := engine.Evaluate(ctx, "6 / 3"); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if _, err := engine.Evaluate(ctx, "6 $ 3"); err == nil {
		t.Fatal("Evaluate() expected error")
	}

	entries := out.entries(t)

	completed := findEntry(entries, "evaluate completed")
	if completed == nil {
		t.Fatalf("no completion entry in %v", entries)
	}
	want := map[string]interface{}{
		"level":     "debug",
		"component": "calc-engine",
		"input":     "6 / 3",
		"result":    "2",
	}
	got := map[string]interface{}{}
	for key := range want {
		got[key] = completed[key]
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("completion entry mismatch (-want +got):\n%s", diff)
	}

	failed := findEntry(entries, "evaluate failed")
	if failed == nil {
		t.Fatalf("no failure entry in %v", entries)
	}
	details, ok := failed["error_details"].(map[string]interface{})
	if !ok {
		t.Fatalf("error_details missing in %v", failed)
	}
	if details["code"] != string(mcerror.CodeUnknownCharacter) {
		t.Errorf("error_details.code = %v, want %v", details["code"], mcerror.CodeUnknownCharacter)
	}
}

func TestPipelineErrorClassification(t *testing.T) {
	engine, _ := newPipeline(t, "[logging]\nlevel = \"fatal\"\n")
	ctx := context.Background()

	tests := []struct {
		input    string
		code     mcerror.Code
		position int
	}{
		{"1 & 2", mcerror.CodeUnknownCharacter, 2},
		{"12a", mcerror.CodeInvalidNumber, 0},
		{"1 +", mcerror.CodeUnexpectedToken, 3},
		{"1 + * 2", mcerror.CodeUnexpectedToken, 4},
		{"1 2", mcerror.CodeUnexpectedToken, 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := engine.Evaluate(ctx, tt.input)
			if err == nil {
				t.Fatal("Evaluate() expected error")
			}

			coded, ok := mcerror.As(err)
			if !ok {
				t.Fatalf("error %T is not *mcerror.Error", err)
			}
			if coded.Code() != tt.code {
				t.Errorf("Code() = %v, want %v", coded.Code(), tt.code)
			}
			if !coded.Code().IsInputError() {
				t.Errorf("%v should classify as input error", coded.Code())
			}
			if coded.Code().HTTPStatus() != 400 {
				t.Errorf("HTTPStatus() = %d, want 400", coded.Code().HTTPStatus())
			}
			if pos, ok := calc.ErrorPosition(err); !ok || pos != tt.position {
				t.Errorf("ErrorPosition() = (%d, %v), want (%d, true)", pos, ok, tt.position)
			}
		})
	}
}

func TestPipelineCancelledContext(t *testing.T) {
	engine, _ := newPipeline(t, engineConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Evaluate(ctx, "1 + 1")
	if !mcerror.HasCode(err, mcerror.CodeTimeout) {
		t.Errorf("error code = %v, want %v", mcerror.GetCode(err), mcerror.CodeTimeout)
	}
}

func TestPipelineConcurrentEvaluation(t *testing.T) {
	engine, out := newPipeline(t, engineConfig)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := engine.Evaluate(ctx, "8 * 7 - 14")
			if err != nil {
				errs <- err
				return
			}
			if result.Value != 42 {
				errs <- mcerror.Newf("unexpected value %v", result.Value)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	completed := 0
	for _, entry := range out.entries(t) {
		if entry["message"] == "evaluate completed" {
			completed++
		}
	}
	if completed != workers {
		t.Errorf("completion entries = %d, want %d", completed, workers)
	}
}
