package nbt

import (
	"fmt"

	"github.com/go-theft-craft/voxelstore/internal/anvil"
	"github.com/go-theft-craft/voxelstore/internal/compress"
)

// ParseFromRegion fetches the payload, length, and codec for (x, z) from r
// and parses it as a named tag.
func ParseFromRegion(r *anvil.Region, x, z int) (*NamedNbt, error) {
	if !r.Contains(x, z) {
		return nil, fmt.Errorf("nbt: region slot (%d, %d) is not present", x, z)
	}
	data := r.Data(x, z)
	codec := r.Compression(x, z)
	return Parse(data, codec)
}

// WriteToRegion serializes n with zlib, queues it into r's slot (x, z),
// and flushes.
func WriteToRegion(n *NamedNbt, r *anvil.Region, x, z int) error {
	buf, err := Write(n, compress.Zlib)
	if err != nil {
		return fmt.Errorf("nbt: serialize: %w", err)
	}
	if err := r.Set(x, z, buf, compress.Zlib); err != nil {
		return fmt.Errorf("nbt: queue write: %w", err)
	}
	return r.Flush()
}
