package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// State tracks collected values keyed by dotted paths ("endereco.cep",
// "placas.0"). Numeric segments address list items.
type State struct {
	values map[string]any
}

// NewState seeds the state with prefilled values.
func NewState(prefill map[string]any) *State {
	values := make(map[string]any, len(prefill))
	for key, value := range prefill {
		values[key] = deepCopy(value)
	}
	return &State{values: values}
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// GetValue resolves a dotted path.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil || path == "" {
		return nil, false
	}
	var current any = s.values
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// SetValue writes value at path, creating intermediate maps and lists.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("tui: state is nil")
	}
	if path == "" {
		return fmt.Errorf("tui: empty path")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	updated, err := assign(s.values, strings.Split(path, "."), value)
	if err != nil {
		return fmt.Errorf("tui: set %q: %w", path, err)
	}
	root, ok := updated.(map[string]any)
	if !ok {
		return fmt.Errorf("tui: set %q: path must start with a key", path)
	}
	s.values = root
	return nil
}

func assign(node any, segments []string, value any) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	head, rest := segments[0], segments[1:]

	if idx, err := strconv.Atoi(head); err == nil {
		if idx < 0 {
			return nil, fmt.Errorf("negative index %d", idx)
		}
		list, ok := node.([]any)
		if !ok && node != nil {
			return nil, fmt.Errorf("segment %q indexes a %T", head, node)
		}
		for len(list) <= idx {
			list = append(list, nil)
		}
		child, err := assign(list[idx], rest, value)
		if err != nil {
			return nil, err
		}
		list[idx] = child
		return list, nil
	}

	fields, ok := node.(map[string]any)
	if !ok && node != nil {
		return nil, fmt.Errorf("segment %q keys a %T", head, node)
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	child, err := assign(fields[head], rest, value)
	if err != nil {
		return nil, err
	}
	fields[head] = child
	return fields, nil
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}
