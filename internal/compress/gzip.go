package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipCodec wraps klauspost/compress/gzip, a drop-in for the stdlib package
// built on klauspost's faster flate implementation — the same dependency
// distr1-distri and arloliu-mebo both reach for wherever gzip/zlib show up.
type gzipCodec struct{}

var _ Codec = gzipCodec{}

// Compress uses a fixed fast configuration (level 1): bandwidth is cheap,
// latency is not. Round-tripping through Decompress is the only contract;
// bit-exact reproduction of any reference encoder is not required.
func (gzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gzipCodec) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
