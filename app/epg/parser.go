package epg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"
)

// Payloads shorter than this are HTML error pages or truncated responses,
// never a usable XMLTV document.
const minContentLength = 100

type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run decodes an XMLTV payload into a document tree. Markup is not
// repaired; syntax failures surface as ParseError.
func (p *Parser) Run(data []byte) (*TV, error) {
	if len(bytes.TrimSpace(data)) < minContentLength {
		return nil, &ParseError{Reason: "content too short"}
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charsetReader

	var tv TV
	if err := decoder.Decode(&tv); err != nil {
		return nil, &ParseError{Reason: "malformed XML", Err: err}
	}

	return &tv, nil
}

// charsetReader handles XMLTV documents declaring non-UTF-8 encodings
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported charset: %s", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}
