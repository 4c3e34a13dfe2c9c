package value

import "hash/fnv"

// ObjType tags the concrete shape of a heap Object.
type ObjType byte

const (
	// StringObj is the only concrete heap object variant the core needs.
	StringObj ObjType = iota
)

// Object is the interface every heap-allocated value satisfies. All
// concrete objects embed objHeader, which threads them onto the VM's
// single intrusive free list (released in bulk at shutdown by dropping
// the list head).
type Object interface {
	Kind() ObjType
	String() string
	next() Object
	setNext(Object)
}

// objHeader is the common header the spec describes: a link to the
// next object on the VM's object list. Embedded, not inherited — Go
// has no header-casting, so the list link lives on every object type.
type objHeader struct {
	nextObj Object
}

func (h *objHeader) next() Object        { return h.nextObj }
func (h *objHeader) setNext(o Object)    { h.nextObj = o }

// ObjString is a heap-allocated, interned string: its length, character
// storage (a Go string need not be NUL-terminated) and a precomputed
// FNV-1a hash used by Table for both lookup and interning.
type ObjString struct {
	objHeader
	Chars string
	Hash  uint32
}

func (s *ObjString) Kind() ObjType  { return StringObj }
func (s *ObjString) String() string { return s.Chars }

// NewObjString allocates an (un-interned) string object. Callers that
// want interning semantics go through the VM context's InternString,
// never this constructor directly — see vm.Context.
func NewObjString(chars string) *ObjString {
	return &ObjString{Chars: chars, Hash: HashFNV1a(chars)}
}

// PushObject links o onto the head of the list rooted at head and
// returns the new head. Used by the VM to take ownership of every
// allocation it makes.
func PushObject(head Object, o Object) Object {
	o.setNext(head)
	return o
}

// Walk calls fn for every object reachable from head, in list order.
func Walk(head Object, fn func(Object)) {
	for o := head; o != nil; o = o.next() {
		fn(o)
	}
}

// HashFNV1a computes the 32-bit FNV-1a hash of a byte sequence, used to
// intern strings and to hash Table keys.
func HashFNV1a(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
