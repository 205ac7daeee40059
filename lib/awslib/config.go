package awslib

import (
	"cmp"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

func NewConfigWithCredentialsAndRegion(credentials credentials.StaticCredentialsProvider, region string) aws.Config {
	return aws.Config{
		Region:      region,
		Credentials: credentials,
	}
}

// LoadConfig uses static credentials when both keys are set, otherwise it falls back to the default credential chain.
// An empty [region] falls back to AWS_REGION.
func LoadConfig(ctx context.Context, region, accessKeyID, secretAccessKey string) (aws.Config, error) {
	region = cmp.Or(region, os.Getenv("AWS_REGION"))
	if accessKeyID != "" && secretAccessKey != "" {
		return NewConfigWithCredentialsAndRegion(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""), region), nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return cfg, nil
}
