// Package driver orchestrates one front-end run: it loads serialized
// syntax trees, orders the modules by their imports, and canonicalizes
// them dependency-first, fanning independent modules out across workers.
package driver

import (
	"context"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tern/internal/can"
	"tern/internal/decl"
	"tern/internal/diag"
	"tern/internal/exhaust"
	"tern/internal/ir"
	"tern/internal/project"
	"tern/internal/symbols"
)

// Options configures one run.
type Options struct {
	// Root is where to look for a manifest, or the directory holding
	// serialized trees when no manifest exists.
	Root string
	// Manifest forces an explicit tern.toml path.
	Manifest string
	// Jobs caps worker parallelism; 0 means GOMAXPROCS.
	Jobs int
	// MaxProblems caps the problem bag of each module.
	MaxProblems int
	// Cache, when set, lets unchanged clean modules skip the pass.
	Cache *DiskCache
}

// ModuleResult is the outcome for one module in the build set.
type ModuleResult struct {
	Name string
	Path string
	// Module is the canonical form; nil when the module was served from
	// the cache (dependents only consume the exports) or was stuck in an
	// import cycle.
	Module      *ir.Module
	Exports     *symbols.Exports
	Problems    *diag.Bag
	ContentHash project.Digest
	ModuleHash  project.Digest
	Cached      bool
}

// Result is the outcome of a whole run. Modules are ordered by name.
type Result struct {
	Modules []ModuleResult
	Store   *symbols.Store
}

// HasErrors reports whether any module produced an error.
func (r *Result) HasErrors() bool {
	for i := range r.Modules {
		if r.Modules[i].Problems.HasErrors() {
			return true
		}
	}
	return false
}

// Check runs the front end over a project or a directory of trees.
func Check(ctx context.Context, opts Options) (*Result, error) {
	mods, err := discover(opts)
	if err != nil {
		return nil, err
	}

	maxProblems := opts.MaxProblems
	if maxProblems <= 0 {
		maxProblems = can.DefaultMaxProblems
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	bags := make(map[string]*diag.Bag, len(mods))
	for _, mod := range mods {
		if _, ok := bags[mod.Name]; !ok {
			bags[mod.Name] = diag.NewBag(maxProblems)
		}
	}

	graph, kept := buildGraph(mods, bags)
	sched := graph.toposort()
	graph.reportCycle(sched.cyclic, kept, bags)

	// Register every module up front; afterwards the store only grows
	// per-module, which keeps the parallel phase race-free.
	store := symbols.NewStore()
	for _, mod := range kept {
		store.Module(mod.Name)
	}

	table := make(symbols.ExportTable, len(kept))
	hashes := make([]project.Digest, len(kept))
	results := make([]ModuleResult, len(kept))

	for _, batch := range sched.batches {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(batch)))
		for _, idx := range batch {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[idx] = processModule(kept[idx], graph, idx, hashes, table, store, bags, maxProblems, opts.Cache)
				hashes[idx] = results[idx].ModuleHash
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		// Exports are published between batches so workers only ever
		// read the table.
		for _, idx := range batch {
			table[kept[idx].Name] = results[idx].Exports
		}
	}

	for _, idx := range sched.cyclic {
		mod := kept[idx]
		results[idx] = ModuleResult{
			Name:        mod.Name,
			Path:        mod.Path,
			Exports:     symbols.NewExports(store.Module(mod.Name)),
			Problems:    bags[mod.Name],
			ContentHash: mod.ContentHash,
		}
	}

	return &Result{Modules: results, Store: store}, nil
}

// processModule canonicalizes one module, or serves it from the cache when
// its whole dependency closure is unchanged.
func processModule(
	mod *loadedModule,
	graph *moduleGraph,
	idx int,
	hashes []project.Digest,
	table symbols.ExportTable,
	store *symbols.Store,
	bags map[string]*diag.Bag,
	maxProblems int,
	cache *DiskCache,
) ModuleResult {
	depHashes := make([]project.Digest, 0, len(graph.deps[idx]))
	for _, j := range graph.deps[idx] {
		depHashes = append(depHashes, hashes[j])
	}
	moduleHash := project.Combine(mod.ContentHash, depHashes...)
	bag := bags[mod.Name]
	home := store.Module(mod.Name)

	if cache != nil && bag.Len() == 0 {
		var payload DiskPayload
		if hit, err := cache.Get(moduleHash, &payload); err == nil && hit && payload.Name == mod.Name {
			return ModuleResult{
				Name:        mod.Name,
				Path:        mod.Path,
				Exports:     unpackExports(store, home, payload.Exports),
				Problems:    bag,
				ContentHash: mod.ContentHash,
				ModuleHash:  moduleHash,
				Cached:      true,
			}
		}
	}

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	tags := decl.Collect(mod.Builder, store, reporter)
	res := can.Canonicalize(mod.Builder, can.Options{
		Store:       store,
		Deps:        table,
		Tags:        tags,
		Exhaust:     exhaust.NewTagChecker(tags),
		Reporter:    reporter,
		MaxProblems: maxProblems,
	})

	if cache != nil && bag.Len() == 0 {
		_ = cache.Put(moduleHash, &DiskPayload{
			Schema:      diskCacheSchemaVersion,
			Name:        mod.Name,
			ContentHash: mod.ContentHash,
			ModuleHash:  moduleHash,
			Exports:     packExports(res.Exports),
		})
	}

	return ModuleResult{
		Name:        mod.Name,
		Path:        mod.Path,
		Module:      res.Module,
		Exports:     res.Exports,
		Problems:    bag,
		ContentHash: mod.ContentHash,
		ModuleHash:  moduleHash,
	}
}

// discover finds the build set: an explicit manifest, a manifest somewhere
// above Root, or a bare directory of trees.
func discover(opts Options) ([]*loadedModule, error) {
	if opts.Manifest != "" {
		m, err := project.LoadManifest(opts.Manifest)
		if err != nil {
			return nil, err
		}
		return loadFromManifest(filepath.Dir(opts.Manifest), m)
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if manifestPath, ok, err := project.FindManifest(root); err != nil {
		return nil, err
	} else if ok {
		m, err := project.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		return loadFromManifest(filepath.Dir(manifestPath), m)
	}
	return loadFromDir(root)
}
