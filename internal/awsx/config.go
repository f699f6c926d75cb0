package awsx

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Clients holds the AWS service clients used by the cache
type Clients struct {
	S3 *s3.Client
}

// LoadConfig loads AWS configuration with optional profile and region overrides
func LoadConfig(ctx context.Context, profile, region string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, configOptions(profile, region)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return cfg, nil
}

func configOptions(profile, region string) []func(*config.LoadOptions) error {
	var opts []func(*config.LoadOptions) error

	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	return opts
}

// NewClients creates the AWS service clients from config
func NewClients(cfg aws.Config) *Clients {
	return &Clients{
		S3: s3.NewFromConfig(cfg),
	}
}
