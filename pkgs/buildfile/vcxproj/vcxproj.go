// Package vcxproj forces the platform toolset of generated Visual Studio projects.
package vcxproj

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/goplus/mkpatch/pkgs/buildfile"
	"github.com/qiniu/x/log"
)

const (
	// Suffix is the file name suffix of Visual C++ project files.
	Suffix = ".vcxproj"

	// DefaultToolset is the Visual Studio 2013 toolset.
	DefaultToolset Toolset = "v120"
)

var toolsetRe = regexp.MustCompile(`(<PlatformToolset>)(.*?)(</PlatformToolset>)`)

// Toolset is a platform toolset tag such as "v110" or "v120".
type Toolset string

var _ buildfile.Patcher = Toolset("")

func (t Toolset) Suffix() string {
	return Suffix
}

// Validate rejects tags that would break the surrounding XML element.
func (t Toolset) Validate() error {
	if t == "" {
		return errors.New("vcxproj: empty toolset")
	}
	if strings.ContainsAny(string(t), "<>\r\n") {
		return errors.New("vcxproj: invalid toolset " + string(t))
	}
	return nil
}

// Substitute replaces the text of every PlatformToolset element with t,
// whatever it was before.
func (t Toolset) Substitute(data []byte) []byte {
	repl := []byte("${1}" + strings.ReplaceAll(string(t), "$", "$$") + "${3}")
	return toolsetRe.ReplaceAll(data, repl)
}

// Rewrite sets the toolset of every project file in dir.
// A directory without project files, or no directory at all, is left alone.
func Rewrite(dir string, t Toolset, opts buildfile.Options) ([]buildfile.Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		log.Debugf("%s does not exist, nothing to rewrite", dir)
		return nil, nil
	}
	return buildfile.Apply(dir, t, opts)
}
