package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveTarget turns an optional CLI argument into the path of the spec to
// format. An explicit file wins; otherwise the directory (argument or ".")
// is searched for a file named "source", then for a unique *.bs file.
func ResolveTarget(arg string) (string, error) {
	dir := "."
	if arg != "" {
		info, err := os.Stat(arg)
		if err != nil {
			return "", fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			return arg, nil
		}
		dir = arg
	}

	sourcePath := filepath.Join(dir, "source")
	if info, err := os.Stat(sourcePath); err == nil && !info.IsDir() {
		return sourcePath, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read directory %s: %w", dir, err)
	}
	var bsFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".bs") {
			bsFiles = append(bsFiles, filepath.Join(dir, entry.Name()))
		}
	}

	switch len(bsFiles) {
	case 1:
		return bsFiles[0], nil
	case 0:
		return "", fmt.Errorf("%s contains no %q file and no .bs spec; pass a filename", dir, "source")
	default:
		return "", fmt.Errorf("%s contains multiple .bs files; pass a filename", dir)
	}
}
