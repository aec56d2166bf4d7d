package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tsub/host"
)

// Identifiers of the kong variables interpolated into help text.
const (
	ConfigIdentifier = "configFile"
	CacheIdentifier  = "cacheDir"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	varsFilesKey struct{}
	cacheDirKey  struct{}
)

// WithVarsFiles returns a new context.Context containing the paths of the
// YAML variable files given on the command line.
func WithVarsFiles(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, varsFilesKey{}, paths)
}

func varsFilesFrom(ctx context.Context) []string {
	paths, _ := ctx.Value(varsFilesKey{}).([]string)

	return paths
}

// WithCacheDir returns a new context.Context containing the cache directory
// path used for transient files like REPL history.
func WithCacheDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, cacheDirKey{}, dir)
}

func cacheDirFrom(ctx context.Context) string {
	dir, _ := ctx.Value(cacheDirKey{}).(string)

	return dir
}

// buildHost constructs the expression host for a command: the builtin
// function set plus any variable bindings loaded from the YAML files on the
// command line. Later files override earlier ones.
func buildHost(ctx context.Context) (*host.Map, error) {
	m := host.Builtins()

	for _, path := range varsFilesFrom(ctx) {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open variables %q: %w", path, err)
		}

		_, err = host.LoadYAML(m, file)
		file.Close()

		if err != nil {
			return nil, fmt.Errorf("load variables %q: %w", path, err)
		}
	}

	return m, nil
}
