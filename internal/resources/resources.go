// Package resources serves the pedagogical documents kept on disk, one
// directory per category.
package resources

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("resource not found")

type Category struct {
	Slug  string
	Title string
	Files []string
}

var categories = []struct {
	slug, title string
}{
	{"rubricas", "Rúbricas de evaluación"},
	{"guias", "Guías pedagógicas"},
	{"planes", "Planes y proyectos"},
	{"normas", "Normas y documentos oficiales"},
}

type Library struct {
	dir string
}

func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Catalog lists the files of every category whose directory exists.
func (l *Library) Catalog() ([]Category, error) {
	var out []Category
	for _, c := range categories {
		entries, err := os.ReadDir(filepath.Join(l.dir, c.slug))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		cat := Category{Slug: c.slug, Title: c.title}
		for _, e := range entries {
			if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
				cat.Files = append(cat.Files, e.Name())
			}
		}
		sort.Strings(cat.Files)
		out = append(out, cat)
	}
	return out, nil
}

// Resolve returns the on-disk path of file in category. Unknown categories,
// names that leave the category directory and missing files are all
// ErrNotFound.
func (l *Library) Resolve(category, file string) (string, error) {
	if !knownCategory(category) || !safeName(file) {
		return "", ErrNotFound
	}
	path := filepath.Join(l.dir, category, file)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrNotFound
	}
	return path, nil
}

func knownCategory(slug string) bool {
	for _, c := range categories {
		if c.slug == slug {
			return true
		}
	}
	return false
}

func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
