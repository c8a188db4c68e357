package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest = %q, %v, %v", path, ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("manifest found at %q, want under %q", path, root)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("no manifest should be found in an empty tree")
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `
[package]
name = "demo"
version = "0.1.0"

[trees]
Main = "Main.tnast"
"Data.List" = "gen/Data.List.tnast"
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Package.Name != "demo" || m.Package.Version != "0.1.0" {
		t.Fatalf("package = %+v", m.Package)
	}
	if m.Package.TreeDir != "build" {
		t.Fatalf("tree dir should default to build, got %q", m.Package.TreeDir)
	}
	if got := m.Modules(); len(got) != 2 || got[0] != "Data.List" || got[1] != "Main" {
		t.Fatalf("Modules() = %v", got)
	}

	mainPath, err := m.TreePath(root, "Main")
	if err != nil {
		t.Fatalf("TreePath(Main): %v", err)
	}
	if mainPath != filepath.Join(root, "build", "Main.tnast") {
		t.Fatalf("bare entries resolve under tree-dir; got %q", mainPath)
	}
	listPath, err := m.TreePath(root, "Data.List")
	if err != nil {
		t.Fatalf("TreePath(Data.List): %v", err)
	}
	if listPath != filepath.Join(root, "gen", "Data.List.tnast") {
		t.Fatalf("entries with directories resolve as written; got %q", listPath)
	}
}

func TestLoadManifestRejectsMissingSections(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "[trees]\nMain = \"Main.tnast\"\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("manifest without [package] must be rejected")
	}

	path = writeManifest(t, root, "[package]\nversion = \"1.0\"\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("manifest without [package].name must be rejected")
	}
}

func TestTreePathRejectsEscapes(t *testing.T) {
	root := t.TempDir()
	m := &Manifest{
		Package: PackageSection{Name: "demo", TreeDir: "build"},
		Trees:   map[string]string{"Evil": "../outside.tnast"},
	}
	if _, err := m.TreePath(root, "Evil"); err == nil {
		t.Fatalf("entries escaping the project root must be rejected")
	}
}

func TestIsValidModuleName(t *testing.T) {
	valid := []string{"Main", "Data.List", "Http.Client_2"}
	for _, name := range valid {
		if !IsValidModuleName(name) {
			t.Fatalf("%q should be valid", name)
		}
	}
	invalid := []string{"", "main", "Data..List", "Data.", "Дата", "1Main"}
	for _, name := range invalid {
		if IsValidModuleName(name) {
			t.Fatalf("%q should be invalid", name)
		}
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a := HashBytes([]byte("a"))
	b := HashBytes([]byte("b"))
	c := HashBytes([]byte("content"))

	if Combine(c, a, b) == Combine(c, b, a) {
		t.Fatalf("dependency order must change the combined hash")
	}
	if Combine(c, a, b) != Combine(c, a, b) {
		t.Fatalf("Combine must be deterministic")
	}
}
