// Package openapi builds form models from OpenAPI operations. Documents are
// loaded from disk or an fs.FS, parsed with kin-openapi and the request body
// of the chosen operation becomes a model.FormModel whose fields can then be
// decorated with mask kinds.
package openapi
