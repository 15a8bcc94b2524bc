package parser

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindList:   "list",
	KindMap:    "map",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a decoded serialized value. Only the fields matching Kind are
// meaningful:
//
//	KindBool   Bool
//	KindInt    Int
//	KindFloat  Float
//	KindString Str
//	KindList   Items
//	KindMap    Entries
//	KindObject Class, Entries
type Value struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Float   float64
	Str     string
	Items   []Value
	Entries []Entry
	Class   string
}

// Entry is one key/value pair of a map or object. Keys keep the kind they
// were serialized with, either KindInt or KindString.
type Entry struct {
	Key   Value
	Value Value
}

// KeyString renders a map key the way it appears as a JSON member name.
func (e Entry) KeyString() string {
	if e.Key.Kind == KindInt {
		return formatInt(e.Key.Int)
	}
	return e.Key.Str
}

func Null() Value                { return Value{Kind: KindNull} }
func Bool(b bool) Value          { return Value{Kind: KindBool, Bool: b} }
func Int(i int64) Value          { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value      { return Value{Kind: KindFloat, Float: f} }
func String(s string) Value      { return Value{Kind: KindString, Str: s} }
func List(items ...Value) Value  { return Value{Kind: KindList, Items: items} }
func Map(entries ...Entry) Value { return Value{Kind: KindMap, Entries: entries} }

// Object builds an object value of the given class.
func Object(class string, entries ...Entry) Value {
	return Value{Kind: KindObject, Class: class, Entries: entries}
}

// Field builds a string-keyed entry.
func Field(key string, v Value) Entry {
	return Entry{Key: String(key), Value: v}
}

// Index builds an integer-keyed entry.
func Index(key int64, v Value) Entry {
	return Entry{Key: Int(key), Value: v}
}
