// Package model defines the typed form model shared by the loaders (OpenAPI
// operations, JSON/YAML form files), the mask decorator and the terminal
// renderer. Decorators enrich fields through the Metadata and UIHints maps;
// the mask decorator stores the resolved mask kind under KeyMask so
// renderers can format values without re-running the heuristics.
package model
