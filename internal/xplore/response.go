// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xplore

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Response is the result of CallAPI. Raw always holds the body. For the
// object data format, Object holds the decoded JSON document (numbers as
// json.Number) or Tree holds the XML document.
type Response struct {
	Raw        []byte
	OutputType string
	DataFormat string
	Object     any
	Tree       *Node
}

// Node is one element of a parsed XML response.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []*Node    `xml:",any"`
}

// Name returns the local element name.
func (n *Node) Name() string { return n.XMLName.Local }

// Text returns the trimmed character data directly inside the element.
func (n *Node) Text() string { return strings.TrimSpace(n.Content) }

// Find returns the first direct child named name, or nil.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c
		}
	}
	return nil
}

// FindAll returns every direct child named name.
func (n *Node) FindAll(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func formatResponse(body []byte, outputType, dataFormat string) (*Response, error) {
	resp := &Response{Raw: body, OutputType: outputType, DataFormat: dataFormat}
	if dataFormat != FormatObject {
		return resp, nil
	}

	if outputType == OutputXML {
		var root Node
		if err := xml.Unmarshal(body, &root); err != nil {
			return nil, fmt.Errorf("%w: XML: %v", ErrParse, err)
		}
		resp.Tree = &root
		return resp, nil
	}

	obj, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	resp.Object = obj
	return resp, nil
}

func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var obj any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: JSON: %v", ErrParse, err)
	}
	return obj, nil
}

// SearchPage is one page of search results.
type SearchPage struct {
	TotalRecords int
	Articles     []map[string]any
}

// SearchPage decodes the JSON body of a search response. It works for
// both data formats but requires JSON output.
func (r *Response) SearchPage() (*SearchPage, error) {
	if r.OutputType == OutputXML {
		return nil, fmt.Errorf("%w: search pages are decoded from JSON, response is XML", ErrInvalidOption)
	}

	var raw struct {
		TotalRecords flexInt          `json:"total_records"`
		Articles     []map[string]any `json:"articles"`
	}
	dec := json.NewDecoder(bytes.NewReader(r.Raw))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: JSON: %v", ErrParse, err)
	}
	return &SearchPage{TotalRecords: int(raw.TotalRecords), Articles: raw.Articles}, nil
}

// flexInt accepts a JSON number or a numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("total_records %s: %w", b, err)
	}
	*f = flexInt(n)
	return nil
}
