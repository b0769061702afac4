package formfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldmask/pkg/model"
)

// ErrEmpty is returned for files without content or without forms.
var ErrEmpty = errors.New("formfile: no forms defined")

// Store holds forms keyed by operation id.
type Store struct {
	forms map[string]model.FormModel
}

type documentFile struct {
	Forms []model.FormModel `json:"forms" yaml:"forms"`
}

// LoadFS walks fsys and parses every JSON or YAML file. A nil filesystem
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFormFile(path) {
			return nil
		}
		return store.addFile(fsys, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single file from fsys.
func LoadFile(fsys fs.FS, name string) (*Store, error) {
	store := newStore()
	if err := store.addFile(fsys, name); err != nil {
		return nil, err
	}
	return store, nil
}

func newStore() *Store {
	return &Store{forms: make(map[string]model.FormModel)}
}

func (s *Store) addFile(fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("formfile: read %s: %w", path, err)
	}
	forms, err := Parse(data, path)
	if err != nil {
		return err
	}
	for _, form := range forms {
		if _, exists := s.forms[form.OperationID]; exists {
			return fmt.Errorf("formfile: duplicate form %q (file %s)", form.OperationID, path)
		}
		s.forms[form.OperationID] = form
	}
	return nil
}

// Parse decodes data as JSON, falling back to YAML, and normalises the
// forms it holds.
func Parse(data []byte, source string) ([]model.FormModel, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: file %s is empty", ErrEmpty, source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("formfile: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}
	if len(doc.Forms) == 0 {
		return nil, fmt.Errorf("%w: file %s", ErrEmpty, source)
	}

	forms := make([]model.FormModel, 0, len(doc.Forms))
	for idx, form := range doc.Forms {
		form.OperationID = strings.TrimSpace(form.OperationID)
		if form.OperationID == "" {
			return nil, fmt.Errorf("formfile: file %s form #%d has no operationId", source, idx)
		}
		fields, err := normaliseFields(form.Fields, form.OperationID, source)
		if err != nil {
			return nil, err
		}
		form.Fields = fields
		forms = append(forms, form)
	}
	return forms, nil
}

func normaliseFields(fields []model.Field, id, source string) ([]model.Field, error) {
	seen := make(map[string]bool, len(fields))
	for idx := range fields {
		field := &fields[idx]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return nil, fmt.Errorf("formfile: form %q (file %s) field #%d has no name", id, source, idx)
		}
		if seen[field.Name] {
			return nil, fmt.Errorf("formfile: form %q (file %s) defines duplicate field %q", id, source, field.Name)
		}
		seen[field.Name] = true
		if field.Type == "" {
			field.Type = model.FieldTypeString
		}
		if field.Label == "" {
			field.Label = model.Label(field.Name)
		}
		if len(field.Nested) > 0 {
			nested, err := normaliseFields(field.Nested, id, source)
			if err != nil {
				return nil, err
			}
			field.Nested = nested
		}
	}
	return fields, nil
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs returns the operation ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func isFormFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
