// Package topsort orders build targets so that every target follows the
// targets it depends on.
package topsort

import (
	"fmt"
	"sort"
	"strings"
)

// Graph maps a node to the nodes it depends on.
type Graph map[string][]string

// CycleError reports a dependency cycle. Path starts and ends with the same node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Path, " -> "))
}

// UndefinedError reports a dependency on a node missing from the graph.
type UndefinedError struct {
	Node       string
	Dependency string
}

func (e *UndefinedError) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("node %q not found in graph", e.Dependency)
	}
	return fmt.Sprintf("%q depends on undefined node %q", e.Node, e.Dependency)
}

type mark uint8

const (
	unvisited mark = iota
	visiting
	done
)

// Sort returns the nodes reachable from roots, dependencies first. Among
// independent nodes the order of roots is kept. A nil roots slice sorts the
// whole graph with roots in lexical order.
func Sort(g Graph, roots []string) ([]string, error) {
	if roots == nil {
		roots = make([]string, 0, len(g))
		for name := range g {
			roots = append(roots, name)
		}
		sort.Strings(roots)
	}

	marks := make(map[string]mark, len(g))
	order := make([]string, 0, len(g))
	var stack []string

	var visit func(parent, name string) error
	visit = func(parent, name string) error {
		switch marks[name] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, n := range stack {
				if n == name {
					start = i
					break
				}
			}
			path := append(append([]string(nil), stack[start:]...), name)
			return &CycleError{Path: path}
		}

		deps, ok := g[name]
		if !ok {
			return &UndefinedError{Node: parent, Dependency: name}
		}

		marks[name] = visiting
		stack = append(stack, name)
		for _, dep := range deps {
			if err := visit(name, dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		marks[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range roots {
		if err := visit("", name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Validate checks that every dependency is defined and that the graph is acyclic.
func Validate(g Graph) error {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, dep := range g[name] {
			if dep == name {
				return &CycleError{Path: []string{name, name}}
			}
			if _, ok := g[dep]; !ok {
				return &UndefinedError{Node: name, Dependency: dep}
			}
		}
	}

	_, err := Sort(g, names)
	return err
}
