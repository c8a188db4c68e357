package driver

import (
	"fmt"
	"sort"
	"strings"

	"tern/internal/diag"
)

// moduleGraph is the import graph over the loaded build set. Node indexes
// follow the sorted module names so two runs over the same set agree on
// every ID.
type moduleGraph struct {
	names      []string
	byName     map[string]int
	deps       [][]int // deps[i] = modules i imports, present only, sorted
	dependents [][]int // reverse edges
}

// buildGraph indexes the loaded modules and wires their import edges.
// Imports of modules outside the build set are reported per importing
// module and dropped from the graph; duplicates of the same module name
// are reported and the first stays.
func buildGraph(mods []*loadedModule, bags map[string]*diag.Bag) (*moduleGraph, []*loadedModule) {
	kept := make([]*loadedModule, 0, len(mods))
	seen := make(map[string]*loadedModule, len(mods))
	for _, mod := range mods {
		if first, dup := seen[mod.Name]; dup {
			bags[mod.Name].Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.DrvDuplicateModule,
				Message:  fmt.Sprintf("module `%s` is defined twice: %s and %s", mod.Name, first.Path, mod.Path),
				Primary:  mod.Builder.Module.Span,
			})
			continue
		}
		seen[mod.Name] = mod
		kept = append(kept, mod)
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Name < kept[j].Name })
	g := &moduleGraph{
		names:      make([]string, len(kept)),
		byName:     make(map[string]int, len(kept)),
		deps:       make([][]int, len(kept)),
		dependents: make([][]int, len(kept)),
	}
	for i, mod := range kept {
		g.names[i] = mod.Name
		g.byName[mod.Name] = i
	}

	for i, mod := range kept {
		edge := make(map[int]struct{})
		for _, imp := range mod.Builder.Module.Imports {
			depName := mod.Builder.Name(imp.Module)
			j, ok := g.byName[depName]
			if !ok {
				bags[mod.Name].Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.DrvUnknownModule,
					Message:  fmt.Sprintf("module `%s` imports `%s`, which is not part of this build", mod.Name, depName),
					Primary:  imp.Span,
				})
				continue
			}
			if j == i {
				continue
			}
			edge[j] = struct{}{}
		}
		for j := range edge {
			g.deps[i] = append(g.deps[i], j)
			g.dependents[j] = append(g.dependents[j], i)
		}
		sort.Ints(g.deps[i])
	}
	for i := range g.dependents {
		sort.Ints(g.dependents[i])
	}
	return g, kept
}

// schedule is the dependency-first processing plan: batches of modules
// whose dependencies are all in earlier batches, plus whatever is stuck in
// an import cycle.
type schedule struct {
	batches [][]int
	cyclic  []int
}

// toposort runs Kahn's algorithm over the graph. Members of each batch are
// independent of one another and safe to canonicalize in parallel.
func (g *moduleGraph) toposort() schedule {
	n := len(g.names)
	indeg := make([]int, n)
	for i := range g.deps {
		indeg[i] = len(g.deps[i])
	}

	current := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indeg[i] == 0 {
			current = append(current, i)
		}
	}

	var s schedule
	visited := 0
	for len(current) > 0 {
		batch := make([]int, len(current))
		copy(batch, current)
		s.batches = append(s.batches, batch)
		visited += len(batch)

		var next []int
		for _, i := range batch {
			for _, j := range g.dependents[i] {
				indeg[j]--
				if indeg[j] == 0 {
					next = append(next, j)
				}
			}
		}
		sort.Ints(next)
		current = next
	}

	if visited != n {
		for i := 0; i < n; i++ {
			if indeg[i] > 0 {
				s.cyclic = append(s.cyclic, i)
			}
		}
	}
	return s
}

// reportCycle tells every stuck module which cycle it is part of.
func (g *moduleGraph) reportCycle(cyclic []int, mods []*loadedModule, bags map[string]*diag.Bag) {
	if len(cyclic) == 0 {
		return
	}
	names := make([]string, 0, len(cyclic))
	for _, i := range cyclic {
		names = append(names, g.names[i])
	}
	summary := strings.Join(names, " -> ")
	for _, i := range cyclic {
		bags[g.names[i]].Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.DrvImportCycle,
			Message:  fmt.Sprintf("module `%s` is part of an import cycle: %s", g.names[i], summary),
			Primary:  mods[i].Builder.Module.Span,
		})
	}
}
