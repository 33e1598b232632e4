// Package filetree is an in-memory mirror of a directory hierarchy that is populated
// lazily: a directory's children are only known once somebody lists it and installs
// the result.
//
// Nodes live in an arena keyed by stable NodeID handles, with a path index for O(1)
// lookup. All lookups by path that miss are silent no-ops, so results that arrive
// after the tree was replaced are dropped without error.
package filetree

import (
	"path/filepath"
	"slices"
)

// NodeID is a stable handle to a node for as long as the node is in the tree.
type NodeID int

// Kind distinguishes files from directories.
type Kind int

const (
	File Kind = iota
	Directory
)

// ToggleOutcome tells the caller whether a toggle needs a directory listing.
type ToggleOutcome int

const (
	// Handled means the toggle was resolved locally (or the path was not found).
	Handled ToggleOutcome = iota
	// NeedsFetch means the directory was expanded but its children are unknown.
	NeedsFetch
)

func (o ToggleOutcome) String() string {
	if o == NeedsFetch {
		return "needs-fetch"
	}
	return "handled"
}

// Entry describes a node to install, as returned by a directory listing.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
}

// PlaceholderName labels the synthetic node of an unsaved document.
const PlaceholderName = "Untitled"

type node struct {
	kind     Kind
	name     string
	path     string
	hasPath  bool
	expanded bool
	loaded   bool
	children []NodeID
}

// Tree is the file tree. The zero value is not usable; call New.
type Tree struct {
	root   string
	roots  []NodeID
	nodes  map[NodeID]*node
	byPath map[string]NodeID
	nextID NodeID
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{
		nodes:  make(map[NodeID]*node),
		byPath: make(map[string]NodeID),
	}
}

// ReplaceRoot discards the whole tree and installs entries as the new top level.
// root is the directory the entries were listed from ("" when there is none).
func (t *Tree) ReplaceRoot(root string, entries []Entry) {
	t.root = root
	t.nodes = make(map[NodeID]*node, len(entries))
	t.byPath = make(map[string]NodeID, len(entries))
	t.roots = t.insert(entries)
}

// ReplaceWithFile makes path the only node of the tree.
func (t *Tree) ReplaceWithFile(path string) {
	t.ReplaceRoot("", []Entry{{Name: filepath.Base(path), Path: path}})
}

// ReplaceWithPlaceholder makes the untitled-document node the only node of the tree.
func (t *Tree) ReplaceWithPlaceholder() {
	t.ReplaceRoot("", nil)
	id := t.alloc(&node{kind: File, name: PlaceholderName})
	t.roots = []NodeID{id}
}

// Toggle flips the directory at path.
//
// An expanded directory collapses and keeps its cached children. A collapsed
// directory expands; if its children were never fetched it reports NeedsFetch and the
// caller is expected to list it and call InstallChildren. Paths that are missing or
// name a file leave the tree untouched and report Handled.
func (t *Tree) Toggle(path string) ToggleOutcome {
	n := t.lookup(path)
	if n == nil || n.kind != Directory {
		return Handled
	}

	if n.expanded {
		n.expanded = false
		return Handled
	}

	n.expanded = true
	if n.loaded {
		return Handled
	}
	return NeedsFetch
}

// InstallChildren overwrites the children of the directory at path, whatever its
// expansion state. The previous children and their subtrees are released. It
// returns false, changing nothing, when path is not a directory in the tree.
func (t *Tree) InstallChildren(path string, entries []Entry) bool {
	n := t.lookup(path)
	if n == nil || n.kind != Directory {
		return false
	}

	for _, child := range n.children {
		t.release(child)
	}
	n.children = t.insert(entries)
	n.loaded = true
	return true
}

func (t *Tree) lookup(path string) *node {
	if path == "" {
		return nil
	}
	id, ok := t.byPath[path]
	if !ok {
		return nil
	}
	return t.nodes[id]
}

func (t *Tree) insert(entries []Entry) []NodeID {
	ids := make([]NodeID, 0, len(entries))
	for _, e := range entries {
		// Sibling paths are unique; a repeated path keeps its first node.
		if _, dup := t.byPath[e.Path]; dup {
			continue
		}
		n := &node{kind: File, name: e.Name, path: e.Path, hasPath: true}
		if e.IsDir {
			n.kind = Directory
		}
		ids = append(ids, t.alloc(n))
	}
	return ids
}

func (t *Tree) alloc(n *node) NodeID {
	id := t.nextID
	t.nextID++
	t.nodes[id] = n
	if n.hasPath {
		t.byPath[n.path] = id
	}
	return id
}

func (t *Tree) release(id NodeID) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	for _, child := range n.children {
		t.release(child)
	}
	if n.hasPath && t.byPath[n.path] == id {
		delete(t.byPath, n.path)
	}
	delete(t.nodes, id)
}

// Clone returns a deep copy that shares nothing with t.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		root:   t.root,
		roots:  slices.Clone(t.roots),
		nodes:  make(map[NodeID]*node, len(t.nodes)),
		byPath: make(map[string]NodeID, len(t.byPath)),
		nextID: t.nextID,
	}
	for id, n := range t.nodes {
		cp := *n
		cp.children = slices.Clone(n.children)
		c.nodes[id] = &cp
	}
	for p, id := range t.byPath {
		c.byPath[p] = id
	}
	return c
}
