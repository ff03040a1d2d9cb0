package searcher

type nodeID int32

const noNode nodeID = -1

// node is a game state reached by a single move. Nodes live in a tree arena
// and refer to each other by index; a node owns the subtrees of its children.
type node struct {
	position string // Canonical FEN
	move     string // UCI move from the parent, empty for the root
	parent   nodeID
	children []nodeID
	visits   int
	wins     float64 // Never exceeds visits
}

func (n *node) isLeaf() bool {
	return len(n.children) == 0
}
