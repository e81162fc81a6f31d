package scene

// NodeBuilderOption is a functional option for configuring a Node.
// Use the With* functions to create options.
type NodeBuilderOption func(n *Node)

// NewNode creates a new Node with the given name and options applied.
//
// Parameters:
//   - name: the node name
//   - options: functional options to configure the node
//
// Returns:
//   - *Node: the configured node
func NewNode(name string, options ...NodeBuilderOption) *Node {
	n := &Node{Name: name}
	for _, opt := range options {
		opt(n)
	}
	return n
}

// WithMeshes appends mesh table indices to the node.
//
// Parameters:
//   - indices: indices into the owning Scene's mesh table
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMeshes(indices ...int) NodeBuilderOption {
	return func(n *Node) {
		n.Meshes = append(n.Meshes, indices...)
	}
}

// WithChildren appends child nodes to the node.
//
// Parameters:
//   - children: the child nodes, in the order they should be walked
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithChildren(children ...*Node) NodeBuilderOption {
	return func(n *Node) {
		n.Children = append(n.Children, children...)
	}
}
