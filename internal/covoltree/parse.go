package covoltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseError reports XML that could not be decoded into a tree.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed covol document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes an XML document into a Node tree. Namespace prefixes are
// stripped from element names, attributes are ignored, and character data
// is trimmed. Repeated same-name siblings become a Sequence.
//
// The root node is a synthetic Object holding the document element, so a
// single Walk covers the whole document.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	root := &Node{Kind: Object}
	stack := []*Node{root}
	sawElement := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sawElement = true
			node := &Node{Kind: Scalar}
			stack[len(stack)-1].addField(t.Name.Local, node)
			stack = append(stack, node)

		case xml.CharData:
			cur := stack[len(stack)-1]
			if text := strings.TrimSpace(string(t)); text != "" {
				if cur.Text != "" {
					cur.Text += " "
				}
				cur.Text += text
			}

		case xml.EndElement:
			cur := stack[len(stack)-1]
			if len(cur.Fields) > 0 {
				cur.Kind = Object
			}
			stack = stack[:len(stack)-1]
		}
	}

	if !sawElement {
		return nil, &ParseError{Err: fmt.Errorf("no root element")}
	}
	if len(stack) != 1 {
		return nil, &ParseError{Err: fmt.Errorf("unbalanced document")}
	}
	return root, nil
}
