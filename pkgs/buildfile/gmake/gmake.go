// Package gmake rewrites compiler assignments in makefiles generated by
// premake's gmake action.
package gmake

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/goplus/mkpatch/pkgs/buildfile"
)

// Suffix is the file name suffix of generated makefiles.
const Suffix = ".make"

// ErrNoCompiler is returned when neither a C nor a C++ compiler was supplied.
var ErrNoCompiler = errors.New("gmake: at least one of CC or CXX must be set")

// compilerRe matches one CC or CXX assignment. The separator never spans lines.
var compilerRe = regexp.MustCompile(`\b(CC|CXX)([ \t]*=[ \t]*)(\S+)`)

// Compilers holds replacement values. An empty field leaves that variable alone.
type Compilers struct {
	CC  string
	CXX string
}

var _ buildfile.Patcher = Compilers{}

func (c Compilers) Suffix() string {
	return Suffix
}

// Validate reports whether c can be applied.
func (c Compilers) Validate() error {
	if c.CC == "" && c.CXX == "" {
		return ErrNoCompiler
	}
	for name, val := range map[string]string{"CC": c.CC, "CXX": c.CXX} {
		if strings.IndexFunc(val, unicode.IsSpace) >= 0 {
			return fmt.Errorf("gmake: %s value %q must not contain whitespace", name, val)
		}
	}
	return nil
}

func (c Compilers) valueOf(name string) string {
	if name == "CC" {
		return c.CC
	}
	return c.CXX
}

// Substitute rewrites every CC/CXX assignment in data in a single pass.
// Only the value token changes; the name and the separator spacing are kept.
func (c Compilers) Substitute(data []byte) []byte {
	return compilerRe.ReplaceAllFunc(data, func(match []byte) []byte {
		m := compilerRe.FindSubmatch(match)
		val := c.valueOf(string(m[1]))
		if val == "" {
			return match
		}
		out := make([]byte, 0, len(m[1])+len(m[2])+len(val))
		out = append(out, m[1]...)
		out = append(out, m[2]...)
		return append(out, val...)
	})
}

// Patch rewrites the compiler assignments of every generated makefile in dir.
func Patch(dir string, c Compilers, opts buildfile.Options) ([]buildfile.Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return buildfile.Apply(dir, c, opts)
}
