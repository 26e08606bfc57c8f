package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/selex/internal/config"
	"github.com/dshills/selex/internal/dispatcher/handler"
	"github.com/dshills/selex/internal/engine/match"
	"github.com/dshills/selex/internal/event"
	"github.com/dshills/selex/internal/input/mode"
	"github.com/dshills/selex/internal/transform"
)

type testApp struct {
	*Application
	out *bytes.Buffer
	log *bytes.Buffer
}

func newTestApp(t *testing.T, opts Options) *testApp {
	t.Helper()
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	if opts.Input == nil {
		opts.Input = strings.NewReader("")
	}
	opts.Output = out
	opts.ErrOutput = logs
	if opts.Env == nil {
		opts.Env = []string{}
	}

	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return &testApp{Application: a, out: out, log: logs}
}

func TestApplication_SelectDigits(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc123def456", Regions: "0:12"})

	res := a.Execute(context.Background(), transform.ModeSelect, `\d+`, true)
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s: %v", res.Status, res.Error)
	}
	if got := a.Session().Format(); got != "3:6,9:12" {
		t.Errorf("expected 3:6,9:12, got %s", got)
	}
	if res.Pattern != `\d+` {
		t.Errorf("expected pattern recorded, got %q", res.Pattern)
	}
}

func TestApplication_SplitDigits(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc123def456", Regions: "0:12"})

	res := a.Execute(context.Background(), transform.ModeSplit, `\d+`, true)
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s: %v", res.Status, res.Error)
	}
	if got := a.Session().Format(); got != "0:3,6:9,12:12" {
		t.Errorf("expected 0:3,6:9,12:12, got %s", got)
	}
}

func TestApplication_SplitLines(t *testing.T) {
	a := newTestApp(t, Options{Text: "one\ntwo\nsix", Regions: "0:11"})

	res := a.Execute(context.Background(), transform.ModeSplitLines, "", false)
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s: %v", res.Status, res.Error)
	}
	if got := a.Session().Format(); got != "0:3,8:11,4:7" {
		t.Errorf("expected 0:3,8:11,4:7, got %s", got)
	}
}

func TestApplication_PromptedPattern(t *testing.T) {
	a := newTestApp(t, Options{
		Text:    "foo bar foo",
		Regions: "0:11",
		Input:   strings.NewReader("(\nfoo\n"),
	})

	var transitions []string
	a.Modes().OnChange(func(from, to mode.Mode) {
		transitions = append(transitions, to.Name())
	})

	res := a.Execute(context.Background(), transform.ModeSelect, "", false)
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s: %v", res.Status, res.Error)
	}
	if got := a.Session().Format(); got != "0:3,8:11" {
		t.Errorf("expected 0:3,8:11, got %s", got)
	}
	if strings.Join(transitions, ",") != "awaiting,normal" {
		t.Errorf("expected awaiting,normal, got %v", transitions)
	}
	if a.Modes().CurrentName() != mode.ModeNormal {
		t.Errorf("expected normal mode, got %s", a.Modes().CurrentName())
	}
	if !strings.Contains(a.out.String(), "Selection RegExp: ") {
		t.Errorf("expected prompt text, got %q", a.out.String())
	}
}

func TestApplication_PromptCancelledKeepsRegions(t *testing.T) {
	a := newTestApp(t, Options{Text: "foo bar", Regions: "0:7"})

	res := a.Execute(context.Background(), transform.ModeKeepMatching, "", false)
	if !res.IsCancelled() {
		t.Fatalf("expected cancelled, got %s", res.Status)
	}
	if got := a.Session().Format(); got != "0:7" {
		t.Errorf("expected regions untouched, got %s", got)
	}
	if a.Modes().CurrentName() != mode.ModeNormal {
		t.Errorf("expected normal mode, got %s", a.Modes().CurrentName())
	}
}

func TestApplication_InvalidPatternArgument(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc", Regions: "0:3"})

	res := a.Execute(context.Background(), transform.ModeSelect, "(", true)
	if !res.IsError() {
		t.Fatalf("expected error, got %s", res.Status)
	}
	if !errors.Is(res.Error, match.ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", res.Error)
	}
	if got := a.Session().Format(); got != "0:3" {
		t.Errorf("expected regions untouched, got %s", got)
	}
	if !strings.Contains(a.log.String(), "[WARN]") {
		t.Errorf("expected warning logged, got %q", a.log.String())
	}
}

func TestApplication_NoMatchesKeepsRegions(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc", Regions: "0:3"})

	res := a.Execute(context.Background(), transform.ModeSelect, "z", true)
	if res.Status != handler.StatusNoOp {
		t.Fatalf("expected no-op, got %s", res.Status)
	}
	if got := a.Session().Format(); got != "0:3" {
		t.Errorf("expected regions untouched, got %s", got)
	}
}

func TestApplication_ClearUsesPrimary(t *testing.T) {
	a := newTestApp(t, Options{Text: "hello world", Regions: "0:5,6:11"})
	if err := a.Session().SetPrimary(1); err != nil {
		t.Fatal(err)
	}

	res := a.Execute(context.Background(), transform.ModeClear, "", false)
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s: %v", res.Status, res.Error)
	}
	if got := a.Session().Format(); got != "6:11" {
		t.Errorf("expected 6:11, got %s", got)
	}
}

func TestApplication_ConfigOverrides(t *testing.T) {
	a := newTestApp(t, Options{Text: "ABC abc", Regions: "0:7", LogLevel: "debug", Format: "json"})

	cfg := a.Config()
	if cfg.Logging.Level != "debug" || cfg.Output.Format != config.FormatJSON {
		t.Errorf("expected overrides applied, got %s/%s", cfg.Logging.Level, cfg.Output.Format)
	}
	if a.Logger().Level() != LogLevelDebug {
		t.Errorf("expected debug logger, got %s", a.Logger().Level())
	}

	if err := a.SetConfig("regex.ignoreCase", "true"); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	res := a.Execute(context.Background(), transform.ModeSelect, "abc", true)
	if got := a.Session().Format(); !res.IsOK() || got != "0:3,4:7" {
		t.Errorf("expected case-insensitive matches 0:3,4:7, got %s", got)
	}

	if err := a.SetConfig("output.format", "xml"); err == nil {
		t.Error("expected validation error")
	}
}

func TestApplication_BadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"regions out of range", Options{Text: "abc", Regions: "0:9"}},
		{"bad format", Options{Format: "xml"}},
		{"bad env", Options{Env: []string{"SELEX_REGEX_DIALECT=perl"}}},
		{"unsupported config", Options{ConfigPath: "/tmp/selex.ini"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.ErrOutput = &bytes.Buffer{}
			if tt.opts.Env == nil {
				tt.opts.Env = []string{}
			}
			if _, err := New(tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApplication_Report(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc", Regions: "0:3", Format: "yaml"})

	if err := a.Report(a.out, nil); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !strings.Contains(a.out.String(), "text: abc") {
		t.Errorf("expected yaml report, got %q", a.out.String())
	}
}

func TestApplication_RunScript(t *testing.T) {
	a := newTestApp(t, Options{Text: "a1 b2 c3", Regions: "0:8"})

	path := filepath.Join(t.TempDir(), "script.lua")
	script := `
		selex.select("\\w\\d")
		selex.drop("b")
		print(selex.count())
	`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := a.RunScript(context.Background(), path); err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
	if got := a.Session().Format(); got != "0:2,6:8" {
		t.Errorf("expected 0:2,6:8, got %s", got)
	}
	if a.out.String() != "2\n" {
		t.Errorf("expected script output 2, got %q", a.out.String())
	}

	if err := a.RunScript(context.Background(), filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestApplication_RunLuaPersistsGlobals(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc", Regions: "0:3"})

	if err := a.RunLua(context.Background(), `n = 41`); err != nil {
		t.Fatalf("RunLua() error = %v", err)
	}
	if err := a.RunLua(context.Background(), `print(n + 1)`); err != nil {
		t.Fatalf("RunLua() error = %v", err)
	}
	if a.out.String() != "42\n" {
		t.Errorf("expected 42, got %q", a.out.String())
	}
}

func TestApplication_ClosedRejectsLua(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc"})
	_ = a.Close()

	if err := a.RunLua(context.Background(), `x = 1`); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestApplication_ReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selex.toml")
	if err := os.WriteFile(path, []byte("[edges]\npolicy = \"column\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, Options{ConfigPath: path, Text: "abc"})
	if a.Config().Edges.Policy != "column" {
		t.Fatalf("expected column policy, got %s", a.Config().Edges.Policy)
	}

	if err := os.WriteFile(path, []byte("[edges]\npolicy = \"offset\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.ReloadConfig(); err != nil {
		t.Fatalf("ReloadConfig() error = %v", err)
	}
	if a.Config().Edges.Policy != "offset" {
		t.Errorf("expected offset policy, got %s", a.Config().Edges.Policy)
	}

	if err := os.WriteFile(path, []byte("[edges\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.ReloadConfig(); err == nil {
		t.Error("expected parse error")
	}
	if a.Config().Edges.Policy != "offset" {
		t.Errorf("expected previous config kept, got %s", a.Config().Edges.Policy)
	}
}

func TestApplication_WatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selex.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApp(t, Options{ConfigPath: path, Text: "abc"})
	if err := a.WatchConfig(); err != nil {
		t.Fatalf("WatchConfig() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("logging:\n  level: error\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if a.Logger().Level() == LogLevelError {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("expected logger level error after reload, got %s", a.Logger().Level())
}

func TestApplication_WatchConfigWithoutFile(t *testing.T) {
	a := newTestApp(t, Options{Text: "abc"})
	if err := a.WatchConfig(); err != nil {
		t.Errorf("expected no error without config file, got %v", err)
	}
}

func TestApplication_Events(t *testing.T) {
	a := newTestApp(t, Options{Text: "foo bar", Regions: "0:7", Input: strings.NewReader("o+\n")})

	var got []event.Event
	if _, err := a.Events().Subscribe("**", func(_ context.Context, ev event.Event) error {
		got = append(got, ev)
		return nil
	}); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	a.Execute(context.Background(), transform.ModeSelect, "", false)

	var topics []string
	for _, ev := range got {
		topics = append(topics, ev.Type.String())
	}
	want := "mode.changed,mode.changed,selections.changed,command.completed"
	if strings.Join(topics, ",") != want {
		t.Fatalf("expected %s, got %v", want, topics)
	}

	changed, ok := got[2].Payload.(event.SelectionsChanged)
	if !ok || changed.Before != 1 || changed.After != 1 || changed.Action != "selections.select" {
		t.Errorf("unexpected selections payload %#v", got[2].Payload)
	}
	completed, ok := got[3].Payload.(event.CommandCompleted)
	if !ok || completed.Status != "ok" || completed.Pattern != "o+" {
		t.Errorf("unexpected command payload %#v", got[3].Payload)
	}
	if got[2].Metadata.CorrelationID == "" || got[2].Metadata.CorrelationID != got[3].Metadata.CorrelationID {
		t.Error("expected selection and command events to share a correlation id")
	}

	// Commands that change nothing publish only their completion.
	got = nil
	a.Execute(context.Background(), transform.ModeSelect, "z", true)
	if len(got) != 1 || got[0].Type != event.TopicCommandCompleted {
		t.Errorf("expected only command.completed, got %v", got)
	}
}
