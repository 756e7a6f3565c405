// Package bedrock implements the llm.Client interface on top of AWS Bedrock
// runtime for Anthropic Claude models. Tool calling is not exposed here; the
// Bedrock judges only score transcripts, they never drive the tool loop.
package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type Client struct {
	client *bedrockruntime.Client
	region string
}

func NewClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &Client{
		client: bedrockruntime.NewFromConfig(cfg),
		region: region,
	}, nil
}
