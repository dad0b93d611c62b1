package dompa

import (
	"fmt"
)

// Traverse returns a rebuilt copy of nodes; the input is never modified.
// fn is called depth-first, parents before children, with a detached deep
// copy of each node, and decides what takes its place:
//
//   - the node it was given, changed or not, keeps it (its children are
//     traversed next);
//   - a different detached node replaces it;
//   - nil removes it along with its subtree;
//   - a fragment is replaced by its children, which are traversed in turn.
//
// A result that would break a tree invariant (e.g. a child for a void
// element, or a doctype anywhere but first) aborts with an error.
func Traverse(nodes []*Node, fn func(*Node) *Node) ([]*Node, error) {
	clones := make([]*Node, len(nodes))
	for i, node := range nodes {
		clones[i] = node.Clone()
	}

	out := newDocument()
	if err := traverseInto(out, clones, fn); err != nil {
		return nil, err
	}

	for _, node := range out.children {
		node.attached = false
	}
	return out.children, nil
}

func traverseInto(parent *Node, nodes []*Node, fn func(*Node) *Node) error {
	for _, node := range nodes {
		node.attached = false

		result := fn(node)
		if result == nil {
			continue
		}
		if result.attached {
			return fmt.Errorf("traverse: %s: %w", result.kind, AdoptErr)
		}

		children := result.children
		result.children = nil

		if result.kind == FragmentNode {
			if err := traverseInto(parent, children, fn); err != nil {
				return err
			}
			continue
		}

		if err := traverseInto(result, children, fn); err != nil {
			return err
		}
		if err := parent.AppendChild(result); err != nil {
			return fmt.Errorf("traverse: %w", err)
		}
	}

	return nil
}
