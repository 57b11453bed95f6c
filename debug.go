package bplustree

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Sprint renders the tree's node structure as an indented ASCII tree,
// inner nodes labeled by their separator keys and leaves labeled by
// their full key run. It is meant for test failure output and manual
// debugging, not as a stable or parseable format.
func (t *Tree[K, V]) Sprint() string {
	root := tp.New()
	if t.root == nil {
		root.SetValue("(empty)")
		return root.String()
	}
	var walk func(n *node[K, V], pt tp.Tree)
	walk = func(n *node[K, V], pt tp.Tree) {
		if n.leaf {
			pt.AddNode(fmt.Sprintf("leaf %v", n.keys))
			return
		}
		branch := pt.AddBranch(fmt.Sprintf("inner %v", n.keys))
		for _, c := range n.children {
			walk(c, branch)
		}
	}
	walk(t.root, root)
	return root.String()
}
