package jsontree

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
)

// ErrMalformedInput is matched by errors.Is for every parse failure.
var ErrMalformedInput = errors.New("malformed JSON input")

// MalformedInputError reports input that is not valid JSON.
type MalformedInputError struct {
	Offset int64 // byte offset where decoding stopped
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed JSON input at offset %d: %v", e.Offset, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedInput) true for any MalformedInputError.
func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

// Parse decodes exactly one JSON value from data.
// Trailing non-whitespace input is an error.
func Parse(data []byte) (Value, error) {
	values, err := ParseAll(data)
	if err != nil {
		return Value{}, err
	}
	switch len(values) {
	case 0:
		return Value{}, &MalformedInputError{Err: io.ErrUnexpectedEOF}
	case 1:
		return values[0], nil
	default:
		return Value{}, &MalformedInputError{Err: errors.New("unexpected data after top-level value")}
	}
}

// ParseAll decodes a stream of whitespace-separated JSON values (for example
// newline-delimited JSON). An empty or whitespace-only input yields no values.
func ParseAll(data []byte) ([]Value, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a stream of JSON values from r until EOF.
func Decode(r io.Reader) ([]Value, error) {
	p := &parser{dec: jsontext.NewDecoder(r)}
	var values []Value
	for {
		if p.dec.PeekKind() == 0 {
			if _, err := p.dec.ReadToken(); err == io.EOF {
				return values, nil
			} else if err != nil {
				return nil, p.malformed(err)
			}
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

type parser struct {
	dec *jsontext.Decoder
}

func (p *parser) malformed(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &MalformedInputError{Offset: p.dec.InputOffset(), Err: err}
}

func (p *parser) value() (Value, error) {
	switch p.dec.PeekKind() {
	case '{':
		return p.object()
	case '[':
		return p.array()
	case '0':
		raw, err := p.dec.ReadValue()
		if err != nil {
			return Value{}, p.malformed(err)
		}
		return Number(string(raw)), nil
	}

	tok, err := p.dec.ReadToken()
	if err != nil {
		return Value{}, p.malformed(err)
	}
	switch tok.Kind() {
	case 'n':
		return Null(), nil
	case 't', 'f':
		return Bool(tok.Bool()), nil
	case '"':
		return String(tok.String()), nil
	default:
		return Value{}, p.malformed(fmt.Errorf("unexpected token %v", tok.Kind()))
	}
}

func (p *parser) object() (Value, error) {
	if _, err := p.dec.ReadToken(); err != nil {
		return Value{}, p.malformed(err)
	}
	members := []Member{}
	for p.dec.PeekKind() != '}' {
		keyTok, err := p.dec.ReadToken()
		if err != nil {
			return Value{}, p.malformed(err)
		}
		val, err := p.value()
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Key: keyTok.String(), Value: val})
	}
	if _, err := p.dec.ReadToken(); err != nil {
		return Value{}, p.malformed(err)
	}
	return Object(members...), nil
}

func (p *parser) array() (Value, error) {
	if _, err := p.dec.ReadToken(); err != nil {
		return Value{}, p.malformed(err)
	}
	items := []Value{}
	for p.dec.PeekKind() != ']' {
		val, err := p.value()
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
	}
	if _, err := p.dec.ReadToken(); err != nil {
		return Value{}, p.malformed(err)
	}
	return Array(items...), nil
}
