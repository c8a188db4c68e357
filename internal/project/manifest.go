package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed tern.toml of one project.
type Manifest struct {
	Package PackageSection
	// Trees maps module names to the serialized syntax tree files the
	// front end should load, relative to the project root.
	Trees map[string]string
}

// PackageSection is the [package] table.
type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	// TreeDir is where serialized trees live when [trees] entries are
	// relative bare names. Defaults to "build".
	TreeDir string `toml:"tree-dir"`
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

type rawManifest struct {
	Package PackageSection    `toml:"package"`
	Trees   map[string]string `toml:"trees"`
}

// LoadManifest parses a tern.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var cfg rawManifest
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !meta.IsDefined("package", "name") || name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	cfg.Package.Name = name
	if strings.TrimSpace(cfg.Package.TreeDir) == "" {
		cfg.Package.TreeDir = "build"
	}
	if cfg.Trees == nil {
		cfg.Trees = map[string]string{}
	}
	return &Manifest{Package: cfg.Package, Trees: cfg.Trees}, nil
}

// TreePath resolves the serialized tree file of one module against the
// project root.
func (m *Manifest) TreePath(root, module string) (string, error) {
	entry, ok := m.Trees[module]
	if !ok {
		return "", fmt.Errorf("module %q is not listed in [trees]", module)
	}
	if filepath.IsAbs(entry) {
		return "", fmt.Errorf("invalid [trees] entry %q: must be relative", entry)
	}
	if !strings.ContainsRune(entry, '/') && !strings.ContainsRune(entry, filepath.Separator) {
		entry = filepath.Join(m.Package.TreeDir, entry)
	}
	full := filepath.Join(root, filepath.FromSlash(entry))
	if !pathWithin(root, full) {
		return "", fmt.Errorf("invalid [trees] entry %q: escapes project root", entry)
	}
	return full, nil
}

// Modules returns the declared module names in sorted order.
func (m *Manifest) Modules() []string {
	names := make([]string, 0, len(m.Trees))
	for name := range m.Trees {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pathWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}
