// Package nikto reads nikto XML reports and writes their findings into a host model.
package nikto

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"golang.org/x/net/html/charset"
)

var (
	// ErrMalformedReport is returned when the input is not well-formed XML.
	ErrMalformedReport = errors.New("malformed nikto report")
	// ErrStructuralMismatch is returned for well-formed XML without a niktoscan
	// container. The host list is empty, not nil.
	ErrStructuralMismatch = errors.New("no niktoscan container in report")
)

var entityDecl = regexp.MustCompile(`<!ENTITY\s+(?:%\s+)?([^\s>"']+)`)

// Parse decodes a complete report. The returned slice is never nil; on error it is
// empty. Hosts and items keep document order.
func Parse(data []byte) ([]Host, error) {
	hosts := make([]Host, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return hosts, fmt.Errorf("%w: empty input", ErrMalformedReport)
	}

	d := newDecoder(data)
	var doc document
	if err := d.Decode(&doc); err != nil {
		return hosts, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	if err := drain(d); err != nil {
		return hosts, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}

	switch {
	case len(doc.Scans) > 0:
		hosts = append(hosts, doc.Scans[0].Hosts...)
	case doc.XMLName.Local == "niktoscan" && len(doc.Details) > 0:
		hosts = append(hosts, doc.Details...)
	default:
		return hosts, fmt.Errorf("%w: root <%s>", ErrStructuralMismatch, doc.XMLName.Local)
	}

	for i := range hosts {
		hosts[i].normalize()
	}
	return hosts, nil
}

// ParseFile reads path and parses it. Read errors are returned unwrapped.
func ParseFile(path string) ([]Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return make([]Host, 0), err
	}
	return Parse(data)
}

func newDecoder(data []byte) *xml.Decoder {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel
	d.Entity = literalEntities(data)
	return d
}

// literalEntities maps every entity declared in the prolog to its own reference
// text, so "&xxe;" decodes to the literal string "&xxe;" and is never expanded.
func literalEntities(data []byte) map[string]string {
	entities := make(map[string]string)
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := d.RawToken()
		if err != nil {
			return entities
		}
		switch t := tok.(type) {
		case xml.Directive:
			for _, m := range entityDecl.FindAllSubmatch(t, -1) {
				name := string(m[1])
				entities[name] = "&" + name + ";"
			}
		case xml.StartElement:
			return entities
		}
	}
}

// drain makes sure nothing but comments, whitespace and processing instructions
// follow the root element.
func drain(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New("unexpected text after root")
			}
		}
	}
}
