// Package dom is a small in-memory document host for masked inputs.
//
// Pages are parsed and rendered with golang.org/x/net/html. Elements satisfy
// binder.Field and matcher.Element, so a Matcher can scan a parsed page and,
// once subscribed, receive every subtree appended afterwards. Type and
// Backspace simulate user edits by dispatching input events.
package dom
