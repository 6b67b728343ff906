package tag

// Kind discriminates the eleven tag variants. Numeric values match the
// on-the-wire type byte used by the named-tag codec, so a Kind can be cast
// directly to/from the leading byte of a serialized tag.
type Kind uint8

const (
	// End is the structural sentinel that terminates a Compound on the
	// wire. It is never a constructable value — New(End) is a contract
	// violation.
	End Kind = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	ByteArray
	String
	List
	Compound
)

func (k Kind) String() string {
	switch k {
	case End:
		return "end"
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case ByteArray:
		return "byte_array"
	case String:
		return "string"
	case List:
		return "list"
	case Compound:
		return "compound"
	default:
		return "unknown"
	}
}

// isInteger reports whether k is one of the four two's-complement integer
// kinds (Byte, Short, Int, Long).
func (k Kind) isInteger() bool {
	switch k {
	case Byte, Short, Int, Long:
		return true
	default:
		return false
	}
}

// isFloat reports whether k is Float or Double.
func (k Kind) isFloat() bool {
	return k == Float || k == Double
}

// Valid reports whether k is a constructable, known kind (excludes End and
// anything outside the eleven variants).
func (k Kind) Valid() bool {
	return k > End && k <= Compound
}
