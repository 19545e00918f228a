package main

import (
	"context"
	"errors"
	"fmt"

	"dagger/dashctl/internal/dagger"
)

// CheckGoModTidy fails when "go mod tidy" would change dashctl's go.mod or
// go.sum, which happens when an import is added or dropped without tidying.
//
// +check
func (t *Dashctl) CheckGoModTidy(ctx context.Context) (string, error) {
	out, err := t.goContainer().
		WithExec([]string{"sh", "-c", "cp go.mod /tmp/go.mod && cp go.sum /tmp/go.sum"}).
		WithExec([]string{"go", "mod", "tidy"}).
		WithExec([]string{"sh", "-c", "diff -u /tmp/go.mod go.mod && diff -u /tmp/go.sum go.sum"}).
		Stdout(ctx)

	var e *dagger.ExecError
	if errors.As(err, &e) {
		return "", fmt.Errorf(
			"dashctl module is not tidy, run 'go mod tidy':\n\n%s",
			e.Stdout,
		)
	} else if err != nil {
		return "", fmt.Errorf("running go mod tidy: %w", err)
	}

	return "go.mod and go.sum are tidy" + out, nil
}
