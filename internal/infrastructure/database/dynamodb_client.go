package database

import (
	"context"
	"fmt"

	"trades_marketplace/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ConnectDynamoDB creates a DynamoDB client from the service configuration.
// A non-empty DynamoDBEndpoint points the client at DynamoDB Local.
func ConnectDynamoDB(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	awsCfg, err := NewAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamodb config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, clientOptions(cfg)...), nil
}

func NewAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	key, secret := cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey
	if cfg.DynamoDBEndpoint != "" && key == "" {
		// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
		key, secret = "local", "local"
	}
	if key != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}

func clientOptions(cfg *config.Config) []func(*dynamodb.Options) {
	if cfg.DynamoDBEndpoint == "" {
		return nil
	}
	return []func(*dynamodb.Options){
		func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		},
	}
}
