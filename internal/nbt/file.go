package nbt

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/go-theft-craft/voxelstore/internal/compress"
)

// ParseFromFile opens path read-only, memory-maps it, sniffs the
// compression codec over the mapping, parses the named tag, and unmaps
// before returning.
func ParseFromFile(path string) (*NamedNbt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nbt: open %s: %w", path, err)
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("nbt: mmap %s: %w", path, err)
	}
	defer m.Unmap()

	return Parse(m, compress.Auto)
}

// WriteToFile serializes n with gzip and writes it to path, truncating any
// existing content.
func WriteToFile(n *NamedNbt, path string) error {
	buf, err := Write(n, compress.Gzip)
	if err != nil {
		return fmt.Errorf("nbt: serialize: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o666); err != nil {
		return fmt.Errorf("nbt: write %s: %w", path, err)
	}
	return nil
}
