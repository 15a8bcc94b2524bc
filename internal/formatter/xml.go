package formatter

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/mcncl/valuefmt/internal/errors"
)

type xmlNode struct {
	name     string
	attrs    []xml.Attr
	text     string
	isText   bool
	children []*xmlNode
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	// character references keep whitespace that attribute normalization would fold into spaces
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#9;")
)

// FormatXML parses input as an XML document and re-indents it. Whitespace-only
// text is dropped, other text is trimmed, and childless elements are
// self-closed. Comments, processing instructions and the declaration are not
// carried over.
func (f *Formatter) FormatXML(input string) (string, error) {
	root, err := parseXML(input)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	f.writeXMLNode(&b, root, 0)
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func parseXML(input string) (*xmlNode, error) {
	decoder := xml.NewDecoder(strings.NewReader(input))
	decoder.Strict = true
	// input is already text; a declared encoding is informational only
	decoder.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) {
		return r, nil
	}

	var root *xmlNode
	var stack []*xmlNode

	for {
		// RawToken keeps namespace prefixes as written; element matching is
		// checked against the stack below.
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, invalidXML(err.Error())
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &xmlNode{name: qualifiedName(t.Name), attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, invalidXML(fmt.Sprintf("second root element <%s>", node.name))
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 {
				return nil, invalidXML(fmt.Sprintf("unexpected end element </%s>", name))
			}
			top := stack[len(stack)-1]
			if top.name != name {
				return nil, invalidXML(fmt.Sprintf("element <%s> closed by </%s>", top.name, name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if len(stack) == 0 {
				if text != "" {
					return nil, invalidXML("text outside the root element")
				}
				continue
			}
			if text == "" {
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, &xmlNode{text: text, isText: true})
		}
	}

	if len(stack) > 0 {
		return nil, invalidXML(fmt.Sprintf("element <%s> is never closed", stack[len(stack)-1].name))
	}
	if root == nil {
		return nil, invalidXML("no root element")
	}
	return root, nil
}

func (f *Formatter) writeXMLNode(b *strings.Builder, n *xmlNode, depth int) {
	pad := strings.Repeat(f.indent, depth)
	if n.isText {
		b.WriteString(pad)
		b.WriteString(textEscaper.Replace(n.text))
		b.WriteString("\n")
		return
	}

	b.WriteString(pad)
	b.WriteString("<")
	b.WriteString(n.name)
	for _, attr := range n.attrs {
		b.WriteString(" ")
		b.WriteString(qualifiedName(attr.Name))
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(attr.Value))
		b.WriteString(`"`)
	}
	if len(n.children) == 0 {
		b.WriteString(" />\n")
		return
	}
	b.WriteString(">\n")
	for _, child := range n.children {
		f.writeXMLNode(b, child, depth+1)
	}
	b.WriteString(pad)
	b.WriteString("</")
	b.WriteString(n.name)
	b.WriteString(">\n")
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func invalidXML(detail string) error {
	return errors.NewFormatError(detail, errors.ErrInvalidXML)
}
