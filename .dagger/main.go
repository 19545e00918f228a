// Package main is the dagger module that tests, builds and publishes the
// dashctl binary, locally and in CI.
package main

import (
	"context"

	"dagger/dashctl/internal/dagger"
)

// Dashctl holds the checked out dashctl source.
type Dashctl struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New returns the module for the given source tree.
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp", "_examples"]
	source *dagger.Directory,
) *Dashctl {
	return &Dashctl{
		Source: source,
	}
}

// goContainer returns a Debian Bookworm-based Go container with the project
// source mounted. dashctl is pure Go, so CGO stays off.
//
// It is the shared foundation for tests and tidy checks.
func (t *Dashctl) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-bookworm").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", t.Source)
}

// Test runs the dashctl unit tests via "go test" with the race detector,
// since the stream client is exercised from several goroutines.
func (t *Dashctl) Test(ctx context.Context) (string, error) {
	return t.goContainer().
		WithEnvVariable("CGO_ENABLED", "1").
		WithExec([]string{"apt-get", "update"}).
		WithExec([]string{"apt-get", "install", "-y", "gcc"}).
		WithExec([]string{"go", "test", "-race", "-v", "./..."}).
		Stdout(ctx)
}
