package graph

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReachable(t *testing.T) {
	adj := BuildAdjacency([]Edge{
		{Dependent: "c", Prerequisite: "b"},
		{Dependent: "b", Prerequisite: "a"},
		{Dependent: "d", Prerequisite: "a"},
	})

	assert.True(t, Reachable(adj, "c", "a"), "transitive prerequisite")
	assert.True(t, Reachable(adj, "c", "b"))
	assert.False(t, Reachable(adj, "a", "c"), "edges are directed")
	assert.False(t, Reachable(adj, "d", "b"))
	assert.False(t, Reachable(adj, "a", "a"), "no path from a node to itself in a DAG")
}

func TestWouldCreateCycle(t *testing.T) {
	edges := []Edge{
		{Dependent: "b", Prerequisite: "a"},
		{Dependent: "c", Prerequisite: "b"},
	}

	assert.True(t, WouldCreateCycle(edges, "a", "a"), "self-loop")
	assert.True(t, WouldCreateCycle(edges, "a", "c"), "a->c closes c->b->a")
	assert.True(t, WouldCreateCycle(edges, "a", "b"), "a->b closes b->a")
	assert.False(t, WouldCreateCycle(edges, "c", "a"), "parallel path stays acyclic")
	assert.False(t, WouldCreateCycle(edges, "d", "a"), "fresh node")
}

// TestWouldCreateCycle_RandomDAGStaysAcyclic property-tests the guard: start
// from an empty graph, attempt random edges, keep only those the guard
// accepts, and verify the accepted relation never contains a cycle.
func TestWouldCreateCycle_RandomDAGStaysAcyclic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		nodes := make([]string, rng.Intn(8)+2)
		for i := range nodes {
			nodes[i] = fmt.Sprintf("n%d", i)
		}

		var edges []Edge
		for attempt := 0; attempt < 40; attempt++ {
			dep := nodes[rng.Intn(len(nodes))]
			pre := nodes[rng.Intn(len(nodes))]
			if WouldCreateCycle(edges, dep, pre) {
				continue
			}
			edges = append(edges, Edge{Dependent: dep, Prerequisite: pre})
		}

		adj := BuildAdjacency(edges)
		for _, n := range nodes {
			require.False(t, Reachable(adj, n, n),
				"trial %d: node %s reaches itself through %d accepted edges", trial, n, len(edges))
		}
	}
}

func TestIsAncestor(t *testing.T) {
	root := "root"
	mid := "mid"
	parents := map[string]*string{
		"root": nil,
		"mid":  &root,
		"leaf": &mid,
	}

	assert.True(t, IsAncestor(parents, "leaf", "leaf"), "a node counts as its own ancestor")
	assert.True(t, IsAncestor(parents, "leaf", "mid"))
	assert.True(t, IsAncestor(parents, "leaf", "root"))
	assert.False(t, IsAncestor(parents, "root", "leaf"))
	assert.False(t, IsAncestor(parents, "mid", "leaf"))
}

func TestDescendants(t *testing.T) {
	root := "root"
	a := "a"
	parents := map[string]*string{
		"root": nil,
		"a":    &root,
		"b":    &root,
		"c":    &a,
		"x":    nil,
	}

	desc := Descendants(parents, "root")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, desc)
	assert.Empty(t, Descendants(parents, "x"))
}
