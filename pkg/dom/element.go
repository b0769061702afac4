package dom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-fieldmask/pkg/binder"
	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

// Element wraps an HTML element node. Attribute writes go straight to the
// node so rendering the document reflects the current state. Only element
// children are tracked; text nodes stay in the underlying tree.
type Element struct {
	node      *html.Node
	parent    *Element
	children  []*Element
	doc       *Document
	caret     int
	listeners []func()
}

var (
	_ binder.Field    = (*Element)(nil)
	_ matcher.Element = (*Element)(nil)
)

// NewElement creates a detached element. Attributes are written in sorted
// key order so renders are deterministic.
func NewElement(tag string, attrs map[string]string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	el := &Element{node: node}
	for _, key := range sortedKeys(attrs) {
		el.SetAttr(key, attrs[key])
	}
	return el
}

func wrap(node *html.Node, parent *Element) *Element {
	el := &Element{node: node, parent: parent}
	el.caret = utf8.RuneCountInString(el.Attr("value"))
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			el.children = append(el.children, wrap(child, el))
		}
	}
	return el
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attr returns the attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// SetAttr sets or adds an attribute.
func (e *Element) SetAttr(name, value string) {
	for idx, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			e.node.Attr[idx].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// IsInput reports whether the element is an <input>.
func (e *Element) IsInput() bool {
	return e.node.DataAtom == atom.Input
}

// Value returns the current value attribute.
func (e *Element) Value() string {
	return e.Attr("value")
}

// SetValue replaces the value and, like a browser, moves the caret to the
// end.
func (e *Element) SetValue(value string) {
	e.SetAttr("value", value)
	e.caret = utf8.RuneCountInString(value)
}

// Caret returns the caret offset in runes.
func (e *Element) Caret() int {
	return e.caret
}

// SetCaret moves the caret, clamped to the value.
func (e *Element) SetCaret(offset int) {
	if offset < 0 {
		offset = 0
	}
	if n := utf8.RuneCountInString(e.Value()); offset > n {
		offset = n
	}
	e.caret = offset
}

// OnInput subscribes fn to input events.
func (e *Element) OnInput(fn func()) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

// ListenerCount reports how many input listeners are registered.
func (e *Element) ListenerCount() int {
	return len(e.listeners)
}

// Type inserts text at the caret and dispatches an input event, the way a
// keystroke or paste would.
func (e *Element) Type(text string) {
	runes := []rune(e.Value())
	caret := e.caret
	if caret > len(runes) {
		caret = len(runes)
	}
	next := string(runes[:caret]) + text + string(runes[caret:])
	e.SetAttr("value", next)
	e.caret = caret + utf8.RuneCountInString(text)
	e.Dispatch()
}

// Backspace deletes the rune before the caret and dispatches an input event.
// It does nothing at offset zero.
func (e *Element) Backspace() {
	runes := []rune(e.Value())
	if e.caret == 0 || e.caret > len(runes) {
		return
	}
	next := string(runes[:e.caret-1]) + string(runes[e.caret:])
	e.SetAttr("value", next)
	e.caret--
	e.Dispatch()
}

// Dispatch notifies input listeners in registration order.
func (e *Element) Dispatch() {
	for _, fn := range e.listeners {
		fn()
	}
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Attached reports whether the element belongs to a document.
func (e *Element) Attached() bool {
	return e.doc != nil
}

// EachDescendant implements matcher.Element.
func (e *Element) EachDescendant(visit func(matcher.Element)) {
	e.Walk(func(el *Element) {
		visit(el)
	})
}

// Walk visits every descendant, depth first, in document order.
func (e *Element) Walk(fn func(*Element)) {
	for _, child := range e.children {
		fn(child)
		child.Walk(fn)
	}
}

// AppendChild appends child, detaching it from any previous parent. When e
// is attached the document observers receive a batch holding child.
func (e *Element) AppendChild(child *Element) {
	e.Append(child)
}

// Append appends children in order and delivers them to the document
// observers as a single batch. A child that is e or one of its ancestors is
// skipped, since moving it would create a cycle.
func (e *Element) Append(children ...*Element) {
	var added []*Element
	for _, child := range children {
		if child == nil || child.contains(e) {
			continue
		}
		child.Remove()
		e.node.AppendChild(child.node)
		child.parent = e
		e.children = append(e.children, child)
		added = append(added, child)
	}
	if e.doc == nil || len(added) == 0 {
		return
	}
	for _, child := range added {
		child.adopt(e.doc)
	}
	e.doc.notify(added)
}

// Remove detaches the element from its parent and document.
func (e *Element) Remove() {
	if e.parent != nil {
		siblings := e.parent.children
		for idx, sibling := range siblings {
			if sibling == e {
				e.parent.children = append(siblings[:idx:idx], siblings[idx+1:]...)
				break
			}
		}
		e.parent = nil
	}
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
	e.adopt(nil)
}

// contains reports whether other is e or one of its descendants.
func (e *Element) contains(other *Element) bool {
	for node := other; node != nil; node = node.parent {
		if node == e {
			return true
		}
	}
	return false
}

func (e *Element) adopt(doc *Document) {
	e.doc = doc
	for _, child := range e.children {
		child.adopt(doc)
	}
}
