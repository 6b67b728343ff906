// Package compress provides the two codecs the region format requires —
// gzip and raw zlib — behind the Compressor/Decompressor/Codec interface
// shape arloliu-mebo's compress package uses, plus a magic-byte Sniff that
// distinguishes the two (or reports Unknown).
package compress

import "fmt"

// Kind identifies a compression codec, or the special Auto value that asks
// Decompress to sniff the codec from the data itself.
type Kind uint8

const (
	// Unknown means the leading bytes matched neither gzip nor zlib.
	Unknown Kind = iota
	// Gzip is the gzip wrapper (magic 0x1F 0x8B), tag byte 1 on the wire.
	Gzip
	// Zlib is the raw zlib wrapper (magic 0x78 ..), tag byte 2 on the wire.
	Zlib
	// Auto defers to Sniff when decompressing.
	Auto
)

func (k Kind) String() string {
	switch k {
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Compressor compresses a byte buffer using a single fixed configuration.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor inflates a byte buffer previously produced by a Compressor
// (or an equivalent encoder).
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions; Gzip and Zlib below both implement it.
type Codec interface {
	Compressor
	Decompressor
}

var codecs = map[Kind]Codec{
	Gzip: gzipCodec{},
	Zlib: zlibCodec{},
}

// CodecFor returns the built-in Codec for kind, or an error for Unknown/Auto
// (Auto only makes sense on the decompress path, where it is resolved via
// Sniff first).
func CodecFor(kind Kind) (Codec, error) {
	c, ok := codecs[kind]
	if !ok {
		return nil, fmt.Errorf("compress: no codec for %s", kind)
	}
	return c, nil
}

// Sniff inspects the leading bytes of b and reports which codec produced
// them. Fewer than two bytes is always Unknown.
func Sniff(b []byte) Kind {
	if len(b) < 2 {
		return Unknown
	}
	if b[0] == 0x1F && b[1] == 0x8B {
		return Gzip
	}
	// zlib header: only a first byte of 0x78 (deflate with the default
	// 32K window) is recognized; the second byte and the RFC 1950 CMF/FLG
	// checksum are not examined.
	if b[0] == 0x78 {
		return Zlib
	}
	return Unknown
}

// Decompress inflates data using the codec named by kind. Auto sniffs the
// codec from data itself and recurses.
func Decompress(kind Kind, data []byte) ([]byte, error) {
	if kind == Auto {
		sniffed := Sniff(data)
		if sniffed == Unknown {
			return nil, fmt.Errorf("compress: could not determine codec from input")
		}
		return Decompress(sniffed, data)
	}

	c, err := CodecFor(kind)
	if err != nil {
		return nil, err
	}
	return c.Decompress(data)
}

// Compress compresses data using the codec named by kind. kind must be Gzip
// or Zlib; Auto and Unknown are errors.
func Compress(kind Kind, data []byte) ([]byte, error) {
	c, err := CodecFor(kind)
	if err != nil {
		return nil, err
	}
	return c.Compress(data)
}
