package locate

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/npillmayer/mdtree/core"
)

// ResourceType tells what kind of file a document refers to.
type ResourceType int

// Resource types
const (
	UnknownResource ResourceType = iota
	ImageResource
	SourceResource
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype ResourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case ImageResource:
		s = fmt.Sprintf("image not found: %s", res)
	case SourceResource:
		s = fmt.Sprintf("source file not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, s)
}

// IsRemote is true for names denoting a URL. Remote resources are not
// resolved.
func IsRemote(name string) bool {
	for _, scheme := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(name, scheme) {
			return true
		}
	}
	return false
}

// --- Files -----------------------------------------------------------------

type pathPlusErr struct {
	path string
	err  error
}

// FilePromise delivers the result of a file lookup.
type FilePromise interface {
	Path() (string, error)
	Await(ctx context.Context) (string, error)
}

type fileLoader struct {
	await func(ctx context.Context) (string, error)
}

func (loader fileLoader) Path() (string, error) {
	return loader.await(context.Background())
}

func (loader fileLoader) Await(ctx context.Context) (string, error) {
	return loader.await(ctx)
}

// ResolveFile looks up a file name relative to the root of fsys. The
// promise yields the cleaned path of a regular file, or an error carrying
// code core.EMISSING.
func ResolveFile(fsys fs.FS, name string, rtype ResourceType) FilePromise {
	var result pathPlusErr
	done := make(chan struct{})
	go func() {
		defer close(done)
		result.path = path.Clean(strings.TrimPrefix(name, "./"))
		if !fs.ValidPath(result.path) {
			result.err = core.WrapError(fmt.Errorf("invalid path: %v", name), core.EINVALID,
				"path must be relative to the document: %s", name)
		} else if info, err := fs.Stat(fsys, result.path); err != nil || info.IsDir() {
			tracer().Debugf("resource %s not found", result.path)
			result.err = NotFound(name, rtype)
		}
	}()
	return fileLoader{
		// result is written once, before done is closed; awaiting again
		// yields the same result
		await: func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-done:
				return result.path, result.err
			}
		},
	}
}
