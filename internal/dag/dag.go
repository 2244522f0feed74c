// Package dag orders tables by their foreign key dependencies.
// It supports cycle detection, topological sorting and execution levels.
package dag

import (
	"fmt"
	"slices"
	"strings"
)

// Node represents a node in the DAG.
type Node[T any] struct {
	// ID is the unique identifier (table name)
	ID string
	// Data holds the node payload
	Data T
}

// CycleError is returned when the graph is not acyclic.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected: %s", strings.Join(e.Path, " -> "))
}

// Graph is a directed graph whose edges point from a dependency to its
// dependents. Iteration follows node insertion order.
type Graph[T any] struct {
	order   []string
	nodes   map[string]*Node[T]
	edges   map[string][]string // parent -> children (dependents)
	parents map[string][]string // child -> parents (dependencies)
}

// NewGraph creates a new empty graph.
func NewGraph[T any]() *Graph[T] {
	return &Graph[T]{
		nodes:   make(map[string]*Node[T]),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Adding an existing ID replaces its data.
func (g *Graph[T]) AddNode(id string, data T) {
	if n, exists := g.nodes[id]; exists {
		n.Data = data
		return
	}
	g.nodes[id] = &Node[T]{ID: id, Data: data}
	g.order = append(g.order, id)
}

// AddEdge adds a directed edge from parent to child (child depends on parent).
func (g *Graph[T]) AddEdge(parentID, childID string) error {
	if _, exists := g.nodes[parentID]; !exists {
		return fmt.Errorf("parent node %q does not exist", parentID)
	}
	if _, exists := g.nodes[childID]; !exists {
		return fmt.Errorf("child node %q does not exist", childID)
	}
	if parentID == childID {
		return fmt.Errorf("self-loop detected: %s", parentID)
	}

	if !slices.Contains(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
	}
	if !slices.Contains(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}
	return nil
}

// Node returns a node by ID.
func (g *Graph[T]) Node(id string) (*Node[T], bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Parents returns the dependencies of a node.
func (g *Graph[T]) Parents(id string) []string { return g.parents[id] }

// Children returns the dependents of a node.
func (g *Graph[T]) Children(id string) []string { return g.edges[id] }

// NodeCount returns the number of nodes in the graph.
func (g *Graph[T]) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph[T]) EdgeCount() int {
	count := 0
	for _, children := range g.edges {
		count += len(children)
	}
	return count
}

// HasCycle reports whether the graph contains a cycle, along with the cycle path.
func (g *Graph[T]) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		for _, childID := range g.edges[id] {
			if !visited[childID] {
				if dfs(childID) {
					return true
				}
			} else if onStack[childID] {
				start := slices.Index(stack, childID)
				cycle = append(slices.Clone(stack[start:]), childID)
				return true
			}
		}

		onStack[id] = false
		stack = stack[:len(stack)-1]
		return false
	}

	for _, id := range g.order {
		if !visited[id] && dfs(id) {
			return true, cycle
		}
	}
	return false, nil
}

// TopologicalSort returns nodes with dependencies before dependents.
// Unrelated nodes keep their insertion order. A cyclic graph yields a
// *CycleError.
func (g *Graph[T]) TopologicalSort() ([]*Node[T], error) {
	if hasCycle, path := g.HasCycle(); hasCycle {
		return nil, &CycleError{Path: path}
	}

	visited := make(map[string]bool)
	result := make([]*Node[T], 0, len(g.nodes))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, parentID := range g.parents[id] {
			visit(parentID)
		}
		result = append(result, g.nodes[id])
	}

	for _, id := range g.order {
		visit(id)
	}
	return result, nil
}

// ExecutionLevels groups node IDs by depth. Level 0 holds nodes without
// dependencies; nodes at level N depend only on nodes below N.
func (g *Graph[T]) ExecutionLevels() ([][]string, error) {
	sorted, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	level := make(map[string]int, len(sorted))
	var levels [][]string
	for _, n := range sorted {
		l := 0
		for _, parentID := range g.parents[n.ID] {
			l = max(l, level[parentID]+1)
		}
		level[n.ID] = l
		if l == len(levels) {
			levels = append(levels, nil)
		}
		levels[l] = append(levels[l], n.ID)
	}
	return levels, nil
}

// Upstream returns every transitive dependency of id in insertion order.
func (g *Graph[T]) Upstream(id string) []string {
	seen := make(map[string]bool)
	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, parentID := range g.parents[nodeID] {
			if !seen[parentID] {
				seen[parentID] = true
				mark(parentID)
			}
		}
	}
	mark(id)

	out := make([]string, 0, len(seen))
	for _, nodeID := range g.order {
		if seen[nodeID] {
			out = append(out, nodeID)
		}
	}
	return out
}
