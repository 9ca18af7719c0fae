package configs

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

var ErrValueNotFound = errors.New("value not found")

// Loader reads configuration files once, on first use. Earlier files take
// precedence over later ones.
type Loader struct {
	getRoots func() ([]rootInfo, error)
}

func NewLoader(filePaths []string, schemaSrc string) Loader {
	return Loader{

		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			// values must share a context to be unified
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, err
				}
			}

			for _, filePath := range filePaths {
				content, err := os.ReadFile(filePath)
				if err != nil {
					return nil, err
				}

				value, err := compile(ctx, filePath, content)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", filePath, err)
				}

				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, fmt.Errorf("%s: %w", filePath, err)
					}
				}

				ret = append(ret, rootInfo{
					value: value,
					path:  filePath,
				})
			}

			return
		}),
	}
}

// compile turns a cue, yaml or toml file into a cue value, by extension.
func compile(ctx *cue.Context, filePath string, content []byte) (cue.Value, error) {
	var value cue.Value
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		m, err := decodeYAML(content)
		if err != nil {
			return value, err
		}
		value = ctx.Encode(m)
	case ".toml":
		m, err := decodeTOML(content)
		if err != nil {
			return value, err
		}
		value = ctx.Encode(m)
	default:
		value = ctx.CompileBytes(
			content,
			cue.Filename(filePath),
		)
	}
	return value, value.Err()
}

type rootInfo struct {
	value cue.Value
	path  string
}

func (l Loader) Paths() ([]string, error) {
	roots, err := l.getRoots()
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(roots))
	for _, info := range roots {
		ret = append(ret, info.path)
	}
	return ret, nil
}

func (l Loader) IterCueValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		roots, err := l.getRoots()
		if err != nil {
			yield(nil, err)
			return
		}

		cuePath := cue.ParsePath(path)
		for _, info := range roots {
			value := info.value.LookupPath(cuePath)
			if value.Exists() && value.Err() == nil {
				if !yield(&value, nil) {
					break
				}
			}
		}
	}
}

func (l Loader) AssignFirst(path string, target any) error {
	for value, err := range l.IterCueValues(path) {
		if err != nil {
			return err
		}
		return value.Decode(target)
	}
	return ErrValueNotFound
}
