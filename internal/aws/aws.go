// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// Settings picks the account and endpoint of an s3 artifact store. Zero
// values inherit the shell's AWS setup (AWS_PROFILE, shared config, env,
// IMDS).
type Settings struct {
	Region  string
	Profile string
	// Endpoint is an S3 compatible URL such as MinIO's. Setting it also turns
	// on path style addressing.
	Endpoint string
}

func (s Settings) loadOptions() []func(*config.LoadOptions) error {
	var opts []func(*config.LoadOptions) error
	if s.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(s.Profile))
	}
	if s.Region != "" {
		opts = append(opts, config.WithRegion(s.Region))
	}
	return opts
}

func (s Settings) s3Options(o *s3v2.Options) {
	if s.Endpoint == "" {
		return
	}
	o.BaseEndpoint = awsv2.String(s.Endpoint)
	o.UsePathStyle = true
}

// LoadConfig loads the SDK config for s.
func LoadConfig(ctx context.Context, s Settings) (awsv2.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, s.loadOptions()...)
	if err != nil {
		return awsv2.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewS3Client returns the client an s3 artifact store reads and writes with.
func NewS3Client(ctx context.Context, s Settings) (*s3v2.Client, error) {
	cfg, err := LoadConfig(ctx, s)
	if err != nil {
		return nil, err
	}
	return s3v2.NewFromConfig(cfg, s.s3Options), nil
}
