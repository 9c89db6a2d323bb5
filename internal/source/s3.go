// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/treediff/internal/cacheutil"
	"github.com/tfctl/treediff/internal/log"
)

const s3Scheme = "s3://"

// s3CacheDir is where fetched objects are kept beneath the cache base.
var s3CacheDir = []string{"s3"}

// GetObjectAPI is the part of the S3 client used to fetch listings.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// ParseS3 splits an s3://bucket/key URL.
func ParseS3(name string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(name, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 URL: %s", name)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 URL needs a bucket and a key: %s", name)
	}
	return bucket, key, nil
}

// newS3Client loads AWS SDK v2 config, inheriting the shell's AWS setup
// (AWS_PROFILE, shared config, env, IMDS) unless profile or region are set.
func newS3Client(ctx context.Context, o options) (GetObjectAPI, error) {
	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	log.Debugf("aws config: profile=%s region=%s", o.profile, o.region)

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3v2.NewFromConfig(cfg), nil
}

// openS3 fetches an object. A cached copy is revalidated with its ETag and
// served when S3 answers 304 Not Modified.
func openS3(ctx context.Context, name string, o options) (io.ReadCloser, error) {
	bucket, key, err := ParseS3(name)
	if err != nil {
		return nil, err
	}

	client, err := o.s3(ctx, o)
	if err != nil {
		return nil, err
	}

	in := &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	}
	cached, hit := cacheutil.Read(s3CacheDir, name)
	if hit && cached.ETag != "" {
		in.IfNoneMatch = awsv2.String(cached.ETag)
	}

	result, err := client.GetObject(ctx, in)
	if err != nil {
		if hit && notModified(err) {
			log.Debugf("s3 listing unchanged, using cache: bucket=%s key=%s", bucket, key)
			return io.NopCloser(bytes.NewReader(cached.Data)), nil
		}
		return nil, fmt.Errorf("listing %s must be readable: %w", name, err)
	}
	log.Debugf("opened s3 listing: bucket=%s key=%s", bucket, key)

	etag := awsv2.ToString(result.ETag)
	if etag == "" || !cacheutil.Enabled() {
		return result.Body, nil
	}

	defer result.Body.Close()
	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("listing %s must be readable: %w", name, err)
	}
	if err := cacheutil.Write(s3CacheDir, name, etag, data); err != nil {
		log.WithError(err).Warnf("failed to cache %s", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// notModified reports whether err carries an HTTP 304 response.
func notModified(err error) bool {
	var re interface{ HTTPStatusCode() int }
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotModified
}
