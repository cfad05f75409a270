package builder

import "path"

// WalkFunc is called for each node during traversal.
// p is the full path to the node within the builder tree.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(p string, node Node) error

// Walk traverses every node in the builder tree starting from g, depth
// first in insertion order. The callback is called for each group,
// dataset and link, including the starting group.
//
// Example:
//
//	Walk(root, func(p string, node Node) error {
//	    switch n := node.(type) {
//	    case *Group:
//	        fmt.Println("group:", p)
//	    case *Dataset:
//	        fmt.Println("dataset:", p, n.Payload())
//	    }
//	    return nil
//	})
func Walk(g *Group, fn WalkFunc) error {
	return walkGroup("/", g, fn)
}

func walkGroup(p string, g *Group, fn WalkFunc) error {
	if err := fn(p, g); err != nil {
		return err
	}

	for _, name := range g.order {
		childPath := path.Join(p, name)
		child := g.children[name]

		if sub, ok := child.(*Group); ok {
			if err := walkGroup(childPath, sub, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(childPath, child); err != nil {
			return err
		}
	}
	return nil
}
