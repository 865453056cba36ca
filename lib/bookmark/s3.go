// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ndp190/termfolio/lib/netutil"
)

// S3Config locates the bucket the scraper writes documents to. Any
// S3-compatible endpoint works (Cloudflare R2, MinIO).
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3Source reads documents from, and publishes manifests to, an S3
// bucket. Objects are "<prefix>/<key>.json" and "<prefix>/manifest.json".
type S3Source struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Source creates an S3 client for cfg. Path-style addressing is
// used so that custom endpoints work without wildcard DNS.
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bookmark: S3 bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	options := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:               cfg.Endpoint,
					HostnameImmutable: true,
				}, nil
			},
		)
		options = append(options, config.WithEndpointResolverWithOptions(resolver))
	}
	if cfg.AccessKeyID != "" {
		options = append(options, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("bookmark: load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &S3Source{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (source *S3Source) objectKey(name string) string {
	if source.prefix == "" {
		return name
	}
	return source.prefix + "/" + name
}

// Document fetches "<prefix>/<key>.json".
func (source *S3Source) Document(ctx context.Context, key string) (*Document, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	objectKey := source.objectKey(key + ".json")
	result, err := source.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(source.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, fmt.Errorf("bookmark: get object %s: %w", objectKey, err)
	}
	defer result.Body.Close()

	body, err := netutil.ReadResponse(result.Body)
	if err != nil {
		return nil, fmt.Errorf("bookmark: reading object %s: %w", objectKey, err)
	}
	var document Document
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("bookmark: decoding object %s: %w", objectKey, err)
	}
	return &document, nil
}

// PutManifest uploads the manifest as "<prefix>/manifest.json" and
// returns the object key written.
func (source *S3Source) PutManifest(ctx context.Context, manifest *Manifest) (string, error) {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("bookmark: encoding manifest: %w", err)
	}
	objectKey := source.objectKey("manifest.json")
	_, err = source.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(source.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("bookmark: put object %s: %w", objectKey, err)
	}
	return objectKey, nil
}
