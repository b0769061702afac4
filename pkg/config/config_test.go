package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-fieldmask/pkg/mask"
	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

const sample = `log_level: debug
output: pretty
sanitize: true
rules:
  - kind: cep
    priority: 25
    tokens: [zip, postal]
  - kind: cpf_cnpj
    priority: 70
    tokens: [documento]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fieldmask.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		LogLevel: "debug",
		Output:   "pretty",
		Sanitize: true,
		Rules: []Rule{
			{Kind: "cep", Priority: 25, Tokens: []string{"zip", "postal"}},
			{Kind: "cpf_cnpj", Priority: 70, Tokens: []string{"documento"}},
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	level, err := cfg.Level()
	if err != nil || level != zapcore.DebugLevel {
		t.Fatalf("level: %v %v", level, err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("FIELDMASK_OUTPUT", "form")
	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output != "form" {
		t.Fatalf("env override ignored: %q", cfg.Output)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.Output != "json" || cfg.Sanitize {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("explicit missing file should fail")
	}
}

func TestRegistry_AppliesRules(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	registry, err := cfg.Registry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	cases := map[string]mask.Kind{
		"ZipCode":   mask.KindPostalCode,
		"documento": mask.KindNationalOrTaxID,
		"cpf":       mask.KindNationalID,
	}
	for name, want := range cases {
		got, ok := registry.Resolve(matcher.Attributes{Name: name})
		if !ok || got != want {
			t.Fatalf("%s: want %q, got %q (ok=%v)", name, want, got, ok)
		}
	}
}

func TestApply_RejectsInvalidRules(t *testing.T) {
	for _, rule := range []Rule{
		{Kind: "rg", Tokens: []string{"rg"}},
		{Kind: "cep"},
	} {
		err := Config{Rules: []Rule{rule}}.Apply(matcher.NewRegistry())
		if !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("rule %+v: want ErrInvalidRule, got %v", rule, err)
		}
	}
}
