// Package htmldoc wraps golang.org/x/net/html with the query surface the
// analyzers need: find elements by tag and attribute predicate, read text
// content and attributes, and walk ancestors.
//
// Parsing never fails from the caller's perspective. The source is
// arbitrary third-party markup, so malformed input degrades to an empty
// or partial tree instead of an error.
package htmldoc

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Element is a single element node in the parsed tree.
type Element struct {
	node *html.Node
}

// Document is the queryable node tree for one page.
type Document struct {
	root *html.Node
}

// Predicate narrows an element search by attribute.
type Predicate func(e *Element) bool

// WithAttr matches elements carrying the attribute, regardless of value.
func WithAttr(name string) Predicate {
	return func(e *Element) bool {
		_, ok := e.Attr(name)
		return ok
	}
}

// WithAttrEqual matches elements whose attribute equals value exactly.
func WithAttrEqual(name, value string) Predicate {
	return func(e *Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

// WithAttrContains matches elements whose attribute contains substr.
func WithAttrContains(name, substr string) Predicate {
	return func(e *Element) bool {
		v, ok := e.Attr(name)
		return ok && strings.Contains(v, substr)
	}
}

// WithAttrMatch matches elements whose attribute matches the pattern.
func WithAttrMatch(name string, pattern *regexp.Regexp) Predicate {
	return func(e *Element) bool {
		v, ok := e.Attr(name)
		return ok && pattern.MatchString(v)
	}
}

// WithoutAttr matches elements lacking the attribute entirely.
func WithoutAttr(name string) Predicate {
	return func(e *Element) bool {
		_, ok := e.Attr(name)
		return !ok
	}
}

// Parse builds a Document from raw markup. A parse failure yields an
// empty document rather than an error.
func Parse(markup string) *Document {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return &Document{}
	}
	return &Document{root: root}
}

// Find returns the first element with the given tag satisfying every
// predicate, in document order. An empty tag matches any element.
func (d *Document) Find(tag string, preds ...Predicate) *Element {
	var found *Element
	d.walk(func(e *Element) bool {
		if e.matches(tag, preds) {
			found = e
			return false
		}
		return true
	})
	return found
}

// FindAll returns every element with the given tag satisfying every
// predicate, in document order. An empty tag matches any element.
func (d *Document) FindAll(tag string, preds ...Predicate) []*Element {
	var out []*Element
	d.walk(func(e *Element) bool {
		if e.matches(tag, preds) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// Text returns the page's visible text with runs of whitespace collapsed
// to single spaces. Script and style contents are excluded.
func (d *Document) Text() string {
	if d.root == nil {
		return ""
	}
	var sb strings.Builder
	collectText(d.root, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// walk visits every element node in document order until fn returns false.
func (d *Document) walk(fn func(e *Element) bool) {
	if d.root == nil {
		return
	}
	var visit func(n *html.Node) bool
	visit = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if !fn(&Element{node: n}) {
				return false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	visit(d.root)
}

func (e *Element) matches(tag string, preds []Predicate) bool {
	if tag != "" && e.node.Data != tag {
		return false
	}
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}
	return true
}

// Tag returns the element's lower-cased tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attr returns the raw value of the named attribute and whether it is set.
// Attribute names are matched case-insensitively.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// AttrValue returns the attribute value, or empty when absent.
func (e *Element) AttrValue(name string) string {
	v, _ := e.Attr(name)
	return v
}

// Text returns the element's concatenated descendant text, with runs of
// whitespace collapsed and the ends trimmed.
func (e *Element) Text() string {
	var sb strings.Builder
	collectText(e.node, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Closest returns the nearest ancestor with the given tag, or nil.
func (e *Element) Closest(tag string) *Element {
	for n := e.node.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == tag {
			return &Element{node: n}
		}
	}
	return nil
}

// FindAll searches the element's subtree the way Document.FindAll
// searches the whole page.
func (e *Element) FindAll(tag string, preds ...Predicate) []*Element {
	sub := &Document{root: e.node}
	var out []*Element
	sub.walk(func(el *Element) bool {
		if el.node == e.node {
			return true
		}
		if el.matches(tag, preds) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Find searches the element's subtree for the first match.
func (e *Element) Find(tag string, preds ...Predicate) *Element {
	sub := &Document{root: e.node}
	var found *Element
	sub.walk(func(el *Element) bool {
		if el.node == e.node {
			return true
		}
		if el.matches(tag, preds) {
			found = el
			return false
		}
		return true
	})
	return found
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	// Non-content descendants are skipped, but the node Text was called
	// on always contributes: style.Text() must yield the CSS itself.
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style", "noscript", "template":
				continue
			}
		}
		collectText(c, sb)
	}
}
