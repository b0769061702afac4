package dom

import (
	"bytes"
	"io"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// FormPolicy returns the sanitizer policy used for untrusted markup. It keeps
// form structure and the attributes mask matching reads, and drops scripts,
// handlers and styling.
func FormPolicy() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"html", "head", "body",
			"form", "fieldset", "legend", "label",
			"input", "textarea", "select", "option", "button",
			"div", "span", "p", "section",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		policy.AllowAttrs("id", "class").Globally()
		policy.AllowAttrs("name", "placeholder", "type", "value", "maxlength", "autocomplete").
			OnElements("input", "textarea", "select", "option", "button")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("action", "method").OnElements("form")
		policy.AllowDataAttributes()
		formPolicy = policy
	})
	return formPolicy
}

// Sanitize runs r through FormPolicy.
func Sanitize(r io.Reader) *bytes.Buffer {
	return FormPolicy().SanitizeReader(r)
}

// ParseSanitized sanitizes r before parsing it.
func ParseSanitized(r io.Reader) (*Document, error) {
	return Parse(Sanitize(r))
}
