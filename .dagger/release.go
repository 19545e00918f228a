package main

import (
	"context"
	"fmt"
	"path"

	"dagger/dashctl/internal/dagger"
)

// bucketCreds are the S3-compatible bucket the dashctl binaries are
// published to.
type bucketCreds struct {
	endpoint        *dagger.Secret
	bucket          *dagger.Secret
	accessKeyId     *dagger.Secret
	secretAccessKey *dagger.Secret
}

// publish syncs the dashctl build matrix to <bucket>/<prefix>/<os>/<arch>/dashctl
// for each prefix in turn, stopping at the first failure.
func (t *Dashctl) publish(
	ctx context.Context,
	artifacts *dagger.Directory,
	creds bucketCreds,
	prefixes ...string,
) error {
	bucketName, err := creds.bucket.Plaintext(ctx)
	if err != nil {
		return fmt.Errorf("reading bucket name: %w", err)
	}
	endpointUrl, err := creds.endpoint.Plaintext(ctx)
	if err != nil {
		return fmt.Errorf("reading bucket endpoint: %w", err)
	}

	awsCli := dag.Container().
		From("amazon/aws-cli:latest").
		WithSecretVariable("AWS_ACCESS_KEY_ID", creds.accessKeyId).
		WithSecretVariable("AWS_SECRET_ACCESS_KEY", creds.secretAccessKey).
		WithEnvVariable("AWS_DEFAULT_REGION", "auto").
		WithDirectory("/artifacts", artifacts).
		WithWorkdir("/artifacts")

	for _, prefix := range prefixes {
		destination := fmt.Sprintf("s3://%s", path.Join(bucketName, prefix))
		_, err := awsCli.
			WithExec([]string{"aws", "s3", "sync", ".", destination, "--endpoint-url", endpointUrl}).
			Sync(ctx)
		if err != nil {
			return fmt.Errorf("publishing dashctl to %s: %w", prefix, err)
		}
	}

	return nil
}

// ReleaseLatest builds versioned dashctl binaries and publishes them under
// both the version and "latest".
func (t *Dashctl) ReleaseLatest(
	ctx context.Context,

	// Release tag, e.g. "v0.3.0"
	version string,

	// Git commit SHA
	commit string,

	// Bucket endpoint URL
	endpoint *dagger.Secret,

	// Bucket name
	bucket *dagger.Secret,

	// Bucket access key ID
	accessKeyId *dagger.Secret,

	// Bucket secret access key
	secretAccessKey *dagger.Secret,
) (*dagger.Directory, error) {
	artifacts := t.BuildRelease(ctx, version, commit)
	creds := bucketCreds{endpoint, bucket, accessKeyId, secretAccessKey}
	return artifacts, t.publish(ctx, artifacts, creds, version, "latest")
}

// Nightly builds dashctl from commit and publishes it under "nightly".
func (t *Dashctl) Nightly(
	ctx context.Context,

	// Git commit SHA
	commit string,

	// Bucket endpoint URL
	endpoint *dagger.Secret,

	// Bucket name
	bucket *dagger.Secret,

	// Bucket access key ID
	accessKeyId *dagger.Secret,

	// Bucket secret access key
	secretAccessKey *dagger.Secret,
) (*dagger.Directory, error) {
	artifacts := t.BuildRelease(ctx, "nightly", commit)
	creds := bucketCreds{endpoint, bucket, accessKeyId, secretAccessKey}
	return artifacts, t.publish(ctx, artifacts, creds, "nightly")
}
