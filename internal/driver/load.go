package driver

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tern/internal/ast"
	"tern/internal/project"
)

// TreeExt is the extension of serialized syntax tree files.
const TreeExt = ".tnast"

// loadedModule is one decoded tree waiting for canonicalization.
type loadedModule struct {
	Name        string
	Path        string
	Builder     *ast.Builder
	ContentHash project.Digest
}

// listTreeFiles returns every *.tnast file under dir, sorted for
// deterministic processing.
func listTreeFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, TreeExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// loadTree reads and decodes one serialized tree.
func loadTree(path string) (*loadedModule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	b, err := ast.DecodeModule(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	name := b.Module.Name
	if !project.IsValidModuleName(name) {
		return nil, fmt.Errorf("%s declares invalid module name %q", path, name)
	}
	return &loadedModule{
		Name:        name,
		Path:        path,
		Builder:     b,
		ContentHash: project.HashBytes(raw),
	}, nil
}

// loadFromManifest loads every module listed in the manifest's [trees].
func loadFromManifest(root string, m *project.Manifest) ([]*loadedModule, error) {
	out := make([]*loadedModule, 0, len(m.Trees))
	for _, name := range m.Modules() {
		path, err := m.TreePath(root, name)
		if err != nil {
			return nil, err
		}
		mod, err := loadTree(path)
		if err != nil {
			return nil, err
		}
		if mod.Name != name {
			return nil, fmt.Errorf("%s: manifest lists it as %q but the tree declares %q", path, name, mod.Name)
		}
		out = append(out, mod)
	}
	return out, nil
}

// loadFromDir loads every tree found under dir.
func loadFromDir(dir string) ([]*loadedModule, error) {
	files, err := listTreeFiles(dir)
	if err != nil {
		return nil, err
	}
	out := make([]*loadedModule, 0, len(files))
	for _, path := range files {
		mod, err := loadTree(path)
		if err != nil {
			return nil, err
		}
		out = append(out, mod)
	}
	return out, nil
}
