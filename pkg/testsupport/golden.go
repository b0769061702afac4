// Package testsupport holds golden-file helpers shared by package tests.
// Set UPDATE_GOLDENS=1 to rewrite goldens from the current output.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-fieldmask/pkg/model"
)

// MustLoadFormModel loads a JSON golden into a FormModel.
func MustLoadFormModel(t *testing.T, path string) model.FormModel {
	t.Helper()

	form, err := LoadFormModel(path)
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}
	return form
}

// LoadFormModel reads a JSON fixture into a FormModel.
func LoadFormModel(path string) (model.FormModel, error) {
	if path == "" {
		return model.FormModel{}, errors.New("testsupport: form model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: read form model: %w", err)
	}
	var out model.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: unmarshal form model: %w", err)
	}
	return out, nil
}

// WriteFormModel rewrites the golden when UPDATE_GOLDENS is set.
func WriteFormModel(t *testing.T, path string, value model.FormModel) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal form model: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}
