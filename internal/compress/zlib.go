package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// zlibCodec wraps klauspost/compress/zlib for the same reason gzipCodec
// wraps klauspost/compress/gzip: a faster drop-in for the raw-zlib wrapper
// region payloads use.
type zlibCodec struct{}

var _ Codec = zlibCodec{}

func (zlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
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

func (zlibCodec) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
