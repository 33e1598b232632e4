package filetree

// Node is a read-only copy of one tree node.
type Node struct {
	ID       NodeID
	Kind     Kind
	Name     string
	Path     string
	HasPath  bool
	Expanded bool
	// Loaded is false while a directory's children have never been fetched.
	Loaded   bool
	Children []NodeID
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool {
	return n.Kind == Directory
}

// IsPlaceholder reports whether the node stands for the unsaved document.
func (n Node) IsPlaceholder() bool {
	return n.Kind == File && !n.HasPath
}

// Row is one visible line of the rendered tree.
type Row struct {
	Node
	Depth int
}

// View is the read-only side of a Tree, handed to the presentation layer.
type View interface {
	Root() string
	Roots() []Node
	Lookup(path string) (Node, bool)
	Get(id NodeID) (Node, bool)
	Rows() []Row
	Len() int
}

var _ View = (*Tree)(nil)

// Root returns the directory the top level was listed from, or "".
func (t *Tree) Root() string {
	return t.root
}

// Roots returns the top-level nodes in order.
func (t *Tree) Roots() []Node {
	out := make([]Node, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.export(id))
	}
	return out
}

// Lookup finds the node with the given path.
func (t *Tree) Lookup(path string) (Node, bool) {
	id, ok := t.byPath[path]
	if !ok {
		return Node{}, false
	}
	return t.export(id), true
}

// Get returns the node with the given handle.
func (t *Tree) Get(id NodeID) (Node, bool) {
	if _, ok := t.nodes[id]; !ok {
		return Node{}, false
	}
	return t.export(id), true
}

// Len returns the number of nodes currently in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Rows flattens the visible part of the tree depth-first. Children of collapsed
// directories are never included.
func (t *Tree) Rows() []Row {
	var rows []Row
	var walk func(ids []NodeID, depth int)
	walk = func(ids []NodeID, depth int) {
		for _, id := range ids {
			n := t.nodes[id]
			if n == nil {
				continue
			}
			rows = append(rows, Row{Node: t.export(id), Depth: depth})
			if n.kind == Directory && n.expanded {
				walk(n.children, depth+1)
			}
		}
	}
	walk(t.roots, 0)
	return rows
}

func (t *Tree) export(id NodeID) Node {
	n := t.nodes[id]
	return Node{
		ID:       id,
		Kind:     n.kind,
		Name:     n.name,
		Path:     n.path,
		HasPath:  n.hasPath,
		Expanded: n.expanded,
		Loaded:   n.loaded,
		Children: append([]NodeID(nil), n.children...),
	}
}
