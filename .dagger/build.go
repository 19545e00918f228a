package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dagger/dashctl/internal/dagger"
)

// platforms is the dashctl release matrix as GOOS/GOARCH pairs.
var platforms = [][2]string{
	{"linux", "amd64"},
	{"linux", "arm64"},
	{"darwin", "amd64"},
	{"darwin", "arm64"},
}

// Build cross-compiles the dashctl binary and returns a directory laid out
// as <os>/<arch>/dashctl.
func (t *Dashctl) Build(
	ctx context.Context,

	// Linker flags for go build
	// +optional
	// +default="-s -w"
	ldflags string,
) *dagger.Directory {
	golang := dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithDirectory("/src", t.Source).
		WithWorkdir("/src")

	outputs := dag.Directory()
	for _, p := range platforms {
		dir := fmt.Sprintf("%s/%s/", p[0], p[1])
		build := golang.
			WithEnvVariable("GOOS", p[0]).
			WithEnvVariable("GOARCH", p[1]).
			WithExec([]string{"go", "build", "-ldflags", ldflags, "-o", dir + "dashctl", "./cli/dashctl"})
		outputs = outputs.WithDirectory(dir, build.Directory(dir))
	}

	return outputs
}

// BuildRelease builds dashctl with the version, commit and build time that
// "dashctl version" prints.
func (t *Dashctl) BuildRelease(
	ctx context.Context,

	// Version string of build
	version string,

	// Git commit SHA of build
	commit string,
) *dagger.Directory {
	const pkg = "github.com/weelink/dashctl/pkg/utils"

	ldflags := []string{
		"-s",
		"-w",
		fmt.Sprintf("-X '%s.Version=%s'", pkg, version),
		fmt.Sprintf("-X '%s.Sha=%s'", pkg, commit),
		fmt.Sprintf("-X '%s.Buildtime=%s'", pkg, time.Now().UTC().Format(time.RFC3339)),
	}

	return t.Build(ctx, strings.Join(ldflags, " "))
}
