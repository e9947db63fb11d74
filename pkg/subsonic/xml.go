package subsonic

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Namespace is the default XML namespace declared by Subsonic responses.
const Namespace = "http://subsonic.org/restapi"

const namespaceDecl = `xmlns="` + Namespace + `"`

// StripNamespace removes the Subsonic default namespace declaration so that
// elements can be matched by their local name alone.
func StripNamespace(doc string) string {
	return strings.ReplaceAll(doc, namespaceDecl, "")
}

// scan feeds every token of doc to fn. It fails with ErrDecode if doc is not
// a complete, well-formed document.
func scan(doc string, fn func(tok xml.Token, depth int) error) error {
	decoder := xml.NewDecoder(strings.NewReader(StripNamespace(doc)))
	var depth int
	var sawRoot bool
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			if !sawRoot {
				return fmt.Errorf("%w: empty document", ErrDecode)
			}
			return nil
		} else if err != nil {
			return fmt.Errorf("%w: %w", ErrDecode, err)
		}

		switch tok.(type) {
		case xml.StartElement:
			sawRoot = true
			if err := fn(tok, depth); err != nil {
				return err
			}
			depth++
		case xml.EndElement:
			depth--
			if err := fn(tok, depth); err != nil {
				return err
			}
		default:
			if err := fn(tok, depth); err != nil {
				return err
			}
		}
	}
}

func attributeMap(el xml.StartElement) map[string]string {
	attrs := make(map[string]string, len(el.Attr))
	for _, attr := range el.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Attributes returns the attributes of the root element of doc.
func Attributes(doc string) (map[string]string, error) {
	var attrs map[string]string
	err := scan(doc, func(tok xml.Token, depth int) error {
		if el, ok := tok.(xml.StartElement); ok && depth == 0 {
			attrs = attributeMap(el)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attrs, nil
}

// AllAttributes returns the attributes of every element below the root named
// tag, in document order. Child elements and text are discarded.
func AllAttributes(doc, tag string) ([]map[string]string, error) {
	var all []map[string]string
	err := scan(doc, func(tok xml.Token, depth int) error {
		if el, ok := tok.(xml.StartElement); ok && depth > 0 && el.Name.Local == tag {
			all = append(all, attributeMap(el))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// FirstAttributes returns the attributes of the first element below the root
// named tag, or an empty map if there is none.
func FirstAttributes(doc, tag string) (map[string]string, error) {
	all, err := AllAttributes(doc, tag)
	if err != nil {
		return nil, err
	} else if len(all) == 0 {
		return map[string]string{}, nil
	}
	return all[0], nil
}

// Texts returns the character data of every element below the root named tag,
// in document order. Only the text before the first child element is kept.
// Elements without text yield an empty string.
func Texts(doc, tag string) ([]string, error) {
	var texts []string
	// open holds, per open element, its index in texts or -1 once it no
	// longer collects text.
	var open []int
	err := scan(doc, func(tok xml.Token, depth int) error {
		switch t := tok.(type) {
		case xml.StartElement:
			if n := len(open); n > 0 {
				open[n-1] = -1
			}
			idx := -1
			if depth > 0 && t.Name.Local == tag {
				texts = append(texts, "")
				idx = len(texts) - 1
			}
			open = append(open, idx)
		case xml.EndElement:
			open = open[:len(open)-1]
		case xml.CharData:
			if n := len(open); n > 0 && open[n-1] >= 0 {
				texts[open[n-1]] += string(t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return texts, nil
}
