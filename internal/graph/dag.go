// Package graph holds the pure traversal logic behind dependency and
// hierarchy validation. Relations are expressed as id adjacency maps, never
// as mutual object references, so acyclicity is checked in one place.
package graph

// Edge is a directed dependency edge: Dependent cannot proceed until
// Prerequisite is done.
type Edge struct {
	Dependent    string
	Prerequisite string
}

// BuildAdjacency converts an edge list into a dependent -> prerequisites
// adjacency map.
func BuildAdjacency(edges []Edge) map[string][]string {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		adj[e.Dependent] = append(adj[e.Dependent], e.Prerequisite)
	}
	return adj
}

// Reachable reports whether to is reachable from from by following the
// adjacency map. A node is not considered reachable from itself unless a
// path through the graph leads back to it.
func Reachable(adj map[string][]string, from, to string) bool {
	seen := map[string]bool{}
	stack := append([]string(nil), adj[from]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, adj[n]...)
	}
	return false
}

// WouldCreateCycle reports whether adding the edge dependent -> prerequisite
// to the existing edges would close a cycle. A self-loop always cycles.
func WouldCreateCycle(edges []Edge, dependent, prerequisite string) bool {
	if dependent == prerequisite {
		return true
	}
	// The new edge cycles iff the dependent is already reachable from the
	// prerequisite.
	return Reachable(BuildAdjacency(edges), prerequisite, dependent)
}

// IsAncestor reports whether candidate is node itself or one of node's
// ancestors under the parent-pointer map. Used to reject reparenting a node
// beneath its own descendant.
func IsAncestor(parents map[string]*string, node, candidate string) bool {
	for cur := &node; cur != nil; cur = parents[*cur] {
		if *cur == candidate {
			return true
		}
	}
	return false
}

// Descendants returns every node in the subtree rooted at root, excluding
// root itself.
func Descendants(parents map[string]*string, root string) []string {
	children := make(map[string][]string, len(parents))
	for id, parent := range parents {
		if parent != nil {
			children[*parent] = append(children[*parent], id)
		}
	}

	var out []string
	queue := []string{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, c := range children[n] {
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}
