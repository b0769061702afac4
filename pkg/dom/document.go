package dom

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-fieldmask/pkg/binder"
	"github.com/goliatone/go-fieldmask/pkg/matcher"
)

// ErrNoBody is returned when a parsed page has no <body> element.
var ErrNoBody = errors.New("dom: document has no body")

const blankPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an in-memory page: an element tree over parsed HTML plus the
// observers that receive inserted elements. It is not safe for concurrent
// use; like a browser page it expects events to arrive one at a time.
type Document struct {
	node      *html.Node
	root      *Element
	body      *Element
	observers []matcher.Subscriber
}

// New returns an empty page.
func New() *Document {
	doc, err := Parse(strings.NewReader(blankPage))
	if err != nil {
		panic(fmt.Errorf("dom: parse blank page: %w", err))
	}
	return doc
}

// Parse reads an HTML page. Fragments are wrapped in html/body by the
// parser, so a bare form parses fine.
func Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	doc := &Document{node: node}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			doc.root = wrap(child, nil)
			break
		}
	}
	if doc.root == nil {
		return nil, ErrNoBody
	}
	doc.root.adopt(doc)
	for _, child := range doc.root.children {
		if child.node.DataAtom == atom.Body {
			doc.body = child
			break
		}
	}
	if doc.body == nil {
		return nil, ErrNoBody
	}
	return doc, nil
}

// Root returns the <html> element.
func (d *Document) Root() *Element {
	return d.root
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.body
}

// Subscribe registers s for inserted-element batches. Subscriptions live as
// long as the document.
func (d *Document) Subscribe(s matcher.Subscriber) {
	if s != nil {
		d.observers = append(d.observers, s)
	}
}

func (d *Document) notify(added []*Element) {
	if len(d.observers) == 0 {
		return
	}
	batch := make([]matcher.Element, len(added))
	for idx, el := range added {
		batch[idx] = el
	}
	for _, observer := range d.observers {
		observer.OnElementsAdded(batch)
	}
}

// Inputs returns every <input> in document order.
func (d *Document) Inputs() []*Element {
	var inputs []*Element
	d.root.Walk(func(el *Element) {
		if el.IsInput() {
			inputs = append(inputs, el)
		}
	})
	return inputs
}

// ElementByID returns the first element with the given id.
func (d *Document) ElementByID(id string) *Element {
	var found *Element
	d.root.Walk(func(el *Element) {
		if found == nil && el.Attr("id") == id {
			found = el
		}
	})
	return found
}

// Annotate writes data-mask and maxlength attributes onto every input bound
// in b, so a rendered page carries the mask choice. It returns how many
// inputs were annotated.
func (d *Document) Annotate(b *binder.Binder) int {
	annotated := 0
	for _, el := range d.Inputs() {
		binding, ok := b.Lookup(el)
		if !ok || binding.Kind == "" {
			continue
		}
		el.SetAttr(matcher.AttrMask, string(binding.Kind))
		el.SetAttr("maxlength", strconv.Itoa(binding.Kind.MaxLength()))
		annotated++
	}
	return annotated
}

// Render writes the page as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.node); err != nil {
		return fmt.Errorf("dom: render: %w", err)
	}
	return nil
}

func sortedKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
