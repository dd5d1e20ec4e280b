package buildfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docker/go-units"
	"github.com/qiniu/x/log"
)

// Patcher captures what a generated-file fixer needs to provide: which files it
// applies to, and how their content is rewritten.
type Patcher interface {
	// Suffix selects candidate files by name, e.g. ".make".
	Suffix() string

	// Substitute returns the rewritten content of one candidate file.
	Substitute(data []byte) []byte
}

// Options controls how Apply touches the filesystem.
type Options struct {
	// DryRun computes results without writing anything back.
	DryRun bool
}

// Result describes one processed candidate file.
type Result struct {
	Path    string
	Size    int64
	Changed bool
}

// Candidates returns the regular files directly inside dir whose name ends in
// suffix, sorted by name.
func Candidates(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Apply runs p over every candidate file in dir.
// It stops at the first filesystem error; files rewritten before it stay rewritten.
func Apply(dir string, p Patcher, opts Options) ([]Result, error) {
	paths, err := Candidates(dir, p.Suffix())
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		res, err := applyFile(path, p, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func applyFile(path string, p Patcher, opts Options) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	// The whole file is read and its handle released before writing back.
	old, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	data := p.Substitute(old)
	res := Result{
		Path:    path,
		Size:    int64(len(data)),
		Changed: !bytes.Equal(old, data),
	}
	log.Debugf("%s: %s, changed=%v", path, units.HumanSize(float64(res.Size)), res.Changed)

	if !res.Changed || opts.DryRun {
		return res, nil
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return res, nil
}

// Changed filters results down to the files whose content differs.
func Changed(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if res.Changed {
			out = append(out, res)
		}
	}
	return out
}
