package chunk

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"

	"loxvm/value"
)

// magic identifies a serialized bytecode file (the [DOMAIN] ".loxc"
// format from SPEC_FULL.md §4.7), mirroring the magic-prefixed,
// gob-encoded layout the pack's funxy project uses for its own
// bytecode files.
var magic = [4]byte{'L', 'O', 'X', 'C'}

const wireVersion = 1

// Interner is the minimal hook Deserialize needs to restore interned
// strings instead of allocating fresh, unshared ones. *vm.Context
// satisfies this without chunk needing to import vm.
type Interner interface {
	InternString(chars string) *value.ObjString
}

// wireValue is the gob-friendly shadow of value.Value. value.Value
// carries an unexported Object field behind an interface, so it can't
// be gob-encoded directly; this captures just enough to round-trip the
// variants a constant pool can actually hold (Nil/Bool/Number/String).
type wireValue struct {
	Type   value.Type
	Bool   bool
	Number float64
	Str    string
}

func toWire(v value.Value) wireValue {
	w := wireValue{Type: v.Type}
	switch v.Type {
	case value.Bool:
		w.Bool = v.AsBool()
	case value.Number:
		w.Number = v.AsNumber()
	case value.ObjRef:
		if v.IsString() {
			w.Str = v.AsString().Chars
		}
	}
	return w
}

// fromWire reconstructs a Value. String constants are interned through
// intern rather than allocated directly, so that two wire constants
// with identical content come back as the same *ObjString — the same
// reference-equality-by-content guarantee live compilation gives
// strings (spec.md §8). A nil intern falls back to an unshared
// allocation, for callers with no live Context to intern into.
func fromWire(w wireValue, intern Interner) value.Value {
	switch w.Type {
	case value.Bool:
		return value.BoolVal(w.Bool)
	case value.Number:
		return value.NumberVal(w.Number)
	case value.ObjRef:
		if intern != nil {
			return value.ObjVal(intern.InternString(w.Str))
		}
		return value.ObjVal(value.NewObjString(w.Str))
	default:
		return value.None
	}
}

// wireChunk is the on-disk shape of a Chunk.
type wireChunk struct {
	Code      []byte
	Constants []wireValue
	Lines     []lineRun
}

func toWireChunk(c *Chunk) wireChunk {
	w := wireChunk{Code: c.Code, Lines: c.lines}
	w.Constants = make([]wireValue, len(c.Constants))
	for i, v := range c.Constants {
		w.Constants[i] = toWire(v)
	}
	return w
}

// GobEncode implements gob.GobEncoder so a *Chunk can be embedded
// directly in larger gob streams.
func (c *Chunk) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(toWireChunk(c)); err != nil {
		return nil, errors.Wrap(err, "gob-encoding chunk")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder. It has no Context to intern
// into, so decoded strings are unshared — callers that need the
// interning guarantee (the ".loxc" driver path) should use Deserialize
// instead.
func (c *Chunk) GobDecode(data []byte) error {
	var w wireChunk
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return errors.Wrap(err, "gob-decoding chunk")
	}
	c.Code = w.Code
	c.lines = w.Lines
	c.Constants = make([]value.Value, len(w.Constants))
	for i, wv := range w.Constants {
		c.Constants[i] = fromWire(wv, nil)
	}
	return nil
}

// Serialize encodes c as a ".loxc" bytecode file: a 4-byte magic
// number, a 1-byte version, then the gob-encoded chunk.
func Serialize(c *Chunk) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(wireVersion)
	if err := gob.NewEncoder(&buf).Encode(toWireChunk(c)); err != nil {
		return nil, errors.Wrap(err, "encoding bytecode file")
	}
	return buf.Bytes(), nil
}

// IsBytecodeFile reports whether data starts with the ".loxc" magic
// header, letting the driver distinguish compiled chunks from source.
func IsBytecodeFile(data []byte) bool {
	return len(data) >= 5 && bytes.Equal(data[:4], magic[:])
}

// Deserialize reconstructs a Chunk from a ".loxc" bytecode file,
// interning every string constant through intern so identity-based
// comparisons (global lookups, string ==) behave the same as they did
// before the chunk was written to disk.
func Deserialize(data []byte, intern Interner) (*Chunk, error) {
	if len(data) < 5 {
		return nil, errors.New("bytecode file too short")
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, errors.New("invalid magic number, expected LOXC")
	}
	if data[4] != wireVersion {
		return nil, errors.Errorf("unsupported bytecode version: %d", data[4])
	}
	var w wireChunk
	if err := gob.NewDecoder(bytes.NewReader(data[5:])).Decode(&w); err != nil {
		return nil, errors.Wrap(err, "decoding bytecode file")
	}
	c := &Chunk{Code: w.Code, lines: w.Lines}
	c.Constants = make([]value.Value, len(w.Constants))
	for i, wv := range w.Constants {
		c.Constants[i] = fromWire(wv, intern)
	}
	return c, nil
}
