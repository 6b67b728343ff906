// Package nbt implements the named-tag wire codec on top of the internal
// tag package's value tree, plus adapters that read and write that codec
// from standalone files and from region-store slots. The byte-level
// reader/writer primitives are modeled on the teacher's streaming NBT
// writer, generalized from a fixed Minecraft schema to the eleven-kind
// tree in internal/tag.
package nbt

import (
	"github.com/go-theft-craft/voxelstore/internal/check"
	"github.com/go-theft-craft/voxelstore/internal/tag"
)

// NamedNbt is a (root-name, root-tag) pair, the outer unit of the wire
// format.
type NamedNbt struct {
	name string
	root *tag.Tag
}

// New creates a NamedNbt over root, sinking its floating reference. A nil
// root is a contract violation (logged, returns nil).
func New(name string, root *tag.Tag) *NamedNbt {
	if root == nil {
		check.Fail("nbt.New", "nil root", "name", name)
		return nil
	}
	root.Ref()
	return &NamedNbt{name: name, root: root}
}

// Name returns the root-name.
func (n *NamedNbt) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

// SetName changes the root-name.
func (n *NamedNbt) SetName(name string) {
	if n == nil {
		return
	}
	n.name = name
}

// Root returns the root tag without transferring ownership.
func (n *NamedNbt) Root() *tag.Tag {
	if n == nil {
		return nil
	}
	return n.root
}

// SetRoot replaces the root tag, unref-ing the old one and ref-ing (sinking
// the floating reference of) the new one.
func (n *NamedNbt) SetRoot(root *tag.Tag) {
	if n == nil || root == nil {
		return
	}
	if n.root != nil {
		n.root.Unref()
	}
	root.Ref()
	n.root = root
}

// Free releases the NamedNbt's reference to its root tag.
func (n *NamedNbt) Free() {
	if n == nil || n.root == nil {
		return
	}
	n.root.Unref()
	n.root = nil
}
