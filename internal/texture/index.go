package texture

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index lists sprite files for round-robin assignment to elements.
type Index struct {
	paths []string
}

// BuildIndex returns the sprite at path, or every PNG/JPEG/TGA file under
// it when path is a directory, in lexical order.
func BuildIndex(path string) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("texture: index %s: %w", path, err)
	}
	if !info.IsDir() {
		return &Index{paths: []string{path}}, nil
	}

	idx := &Index{}
	if err := filepath.WalkDir(path, idx.visit); err != nil {
		return nil, err
	}
	sort.Strings(idx.paths)
	return idx, nil
}

// visit is the WalkDir callback collecting sprite files.
func (idx *Index) visit(p string, d fs.DirEntry, err error) error {
	if err != nil {
		return fmt.Errorf("texture: index %s: %w", p, err)
	}
	if d.IsDir() {
		return nil
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".png", ".jpg", ".jpeg", ".tga":
		idx.paths = append(idx.paths, p)
	}
	return nil
}

// PathFor returns the sprite path for element i, or ("", false) if empty.
func (idx *Index) PathFor(i int) (string, bool) {
	if idx == nil || len(idx.paths) == 0 {
		return "", false
	}
	i %= len(idx.paths)
	if i < 0 {
		i += len(idx.paths)
	}
	return idx.paths[i], true
}

// Len returns the number of indexed sprites.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.paths)
}
