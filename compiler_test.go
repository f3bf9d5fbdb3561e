package protocompile

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewhickman/protox-sub000/report"
)

func mapResolver(files map[string]string) Resolver {
	return ResolverFunc(func(path string) (SearchResult, error) {
		src, ok := files[path]
		if !ok {
			return SearchResult{}, &fileNotFoundError{path}
		}
		return SearchResult{Source: strings.NewReader(src)}, nil
	})
}

type fileNotFoundError struct{ path string }

func (e *fileNotFoundError) Error() string { return "file not found: " + e.path }

func TestCompileSingleFileNoImports(t *testing.T) {
	t.Parallel()
	c := &Compiler{
		Resolver: mapResolver(map[string]string{
			"foo.proto": `
				syntax = "proto3";
				package foo;
				message Greeting {
					string text = 1;
				}
			`,
		}),
	}
	fds, err := c.Compile(context.Background(), "foo.proto")
	require.NoError(t, err)
	require.Len(t, fds, 1)
	assert.Equal(t, "foo", fds[0].GetPackage())
	require.Len(t, fds[0].GetMessageType(), 1)
	assert.Equal(t, "Greeting", fds[0].GetMessageType()[0].GetName())
}

func TestCompileResolvesAcrossImport(t *testing.T) {
	t.Parallel()
	c := &Compiler{
		Resolver: mapResolver(map[string]string{
			"dep.proto": `
				syntax = "proto3";
				package dep;
				message Inner {}
			`,
			"main.proto": `
				syntax = "proto3";
				package main;
				import "dep.proto";
				message Outer {
					dep.Inner inner = 1;
				}
			`,
		}),
	}
	fds, err := c.Compile(context.Background(), "main.proto")
	require.NoError(t, err)
	require.Len(t, fds, 1)
	msg := fds[0].GetMessageType()[0]
	require.Len(t, msg.GetField(), 1)
	assert.Equal(t, ".dep.Inner", msg.GetField()[0].GetTypeName())
}

func TestCompileIncludeImportsAppendsDependencyClosure(t *testing.T) {
	t.Parallel()
	c := &Compiler{
		Resolver: mapResolver(map[string]string{
			"dep.proto": `
				syntax = "proto3";
				package dep;
				message Inner {}
			`,
			"main.proto": `
				syntax = "proto3";
				package main;
				import "dep.proto";
				message Outer {
					dep.Inner inner = 1;
				}
			`,
		}),
		IncludeImports: true,
	}
	fds, err := c.Compile(context.Background(), "main.proto")
	require.NoError(t, err)
	require.Len(t, fds, 2)
	names := []string{fds[0].GetName(), fds[1].GetName()}
	assert.Contains(t, names, "main.proto")
	assert.Contains(t, names, "dep.proto")
}

func TestCompileSelfImportReportsError(t *testing.T) {
	t.Parallel()
	c := &Compiler{
		Resolver: mapResolver(map[string]string{
			"a.proto": `
				syntax = "proto3";
				import "a.proto";
			`,
		}),
	}
	_, err := c.Compile(context.Background(), "a.proto")
	assert.Error(t, err)
}

func TestCompileImportCycleReportsError(t *testing.T) {
	t.Parallel()
	c := &Compiler{
		Resolver: mapResolver(map[string]string{
			"a.proto": `
				syntax = "proto3";
				import "b.proto";
			`,
			"b.proto": `
				syntax = "proto3";
				import "a.proto";
			`,
		}),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := c.Compile(ctx, "a.proto")
	assert.Error(t, err)
}

func TestCompileMissingImportReportsError(t *testing.T) {
	t.Parallel()
	c := &Compiler{
		Resolver: mapResolver(map[string]string{
			"main.proto": `
				syntax = "proto3";
				import "missing.proto";
			`,
		}),
	}
	_, err := c.Compile(context.Background(), "main.proto")
	assert.Error(t, err)
}

func TestCompileIncludeSourceInfoPopulatesLocations(t *testing.T) {
	t.Parallel()
	c := &Compiler{
		Resolver: mapResolver(map[string]string{
			"foo.proto": `
				syntax = "proto3";
				message Foo {
					string name = 1;
				}
			`,
		}),
		IncludeSourceInfo: true,
	}
	fds, err := c.Compile(context.Background(), "foo.proto")
	require.NoError(t, err)
	require.NotNil(t, fds[0].SourceCodeInfo)
	assert.NotEmpty(t, fds[0].SourceCodeInfo.Location)
}

func TestCompileCollectsMultipleDiagnosticsWithCollectingReporter(t *testing.T) {
	t.Parallel()
	var rep report.CollectingReporter
	c := &Compiler{
		Resolver: mapResolver(map[string]string{
			"foo.proto": `
				syntax = "proto3";
				message Foo {
					int32 a = 1;
					int32 b = 1;
				}
			`,
		}),
		Reporter: &rep,
	}
	_, err := c.Compile(context.Background(), "foo.proto")
	assert.Error(t, err)
	assert.NotEmpty(t, rep.Errors)
}

func TestCompileEmptyFileListReturnsNil(t *testing.T) {
	t.Parallel()
	c := &Compiler{Resolver: mapResolver(nil)}
	fds, err := c.Compile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, fds)
}
