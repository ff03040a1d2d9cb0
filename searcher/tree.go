package searcher

import "fmt"

// tree is an arena of nodes. Released slots go to a free list and are
// recycled by later allocations.
type tree struct {
	nodes []node
	free  []nodeID
	root  nodeID
	size  int
}

func newTree() *tree {
	return &tree{root: noNode}
}

// get returns a pointer that stays valid until the next add.
func (t *tree) get(id nodeID) *node {
	return &t.nodes[id]
}

func (t *tree) add(parent nodeID, position, move string) nodeID {
	n := node{position: position, move: move, parent: parent}

	var id nodeID
	if k := len(t.free); k > 0 {
		id = t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = n
	} else {
		id = nodeID(len(t.nodes))
		t.nodes = append(t.nodes, n)
	}

	if parent != noNode {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	t.size++
	return id
}

// reset discards every node and starts over from a fresh root.
func (t *tree) reset(position string) nodeID {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.size = 0
	t.root = t.add(noNode, position, "")
	return t.root
}

// release frees a node and every descendant. The parent's child list is left
// to the caller.
func (t *tree) release(id nodeID) {
	stack := []nodeID{id}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[top]
		stack = append(stack, n.children...)
		*n = node{parent: noNode}
		t.free = append(t.free, top)
		t.size--
	}
}

// keepOnly releases every child of parent except keep.
func (t *tree) keepOnly(parent, keep nodeID) {
	n := &t.nodes[parent]
	found := false
	for _, child := range n.children {
		if child == keep {
			found = true
			continue
		}
		t.release(child)
	}
	if !found {
		panic(fmt.Sprintf("node %d is not a child of node %d", keep, parent))
	}
	n.children = append(n.children[:0], keep)
}

// promote makes a child of the root the new root. Its siblings and the old
// root are released.
func (t *tree) promote(id nodeID) {
	old := t.nodes[id].parent
	if old != t.root || old == noNode {
		panic(fmt.Sprintf("node %d is not a child of the root", id))
	}

	t.keepOnly(old, id)
	t.nodes[old].children = nil
	t.release(old)

	t.nodes[id].parent = noNode
	t.root = id
}

func (t *tree) backpropagate(id nodeID, result float64) {
	for id != noNode {
		n := &t.nodes[id]
		n.visits++
		n.wins += result
		result = 1 - result // Your win is your parent's loss
		id = n.parent
	}
}
