package awslib

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type SQSClient struct {
	client *sqs.Client
}

func NewSQSClient(cfg aws.Config) SQSClient {
	return SQSClient{client: sqs.NewFromConfig(cfg)}
}

// SendMessage sends [body] to [queueURL] and returns the message ID.
func (s SQSClient) SendMessage(ctx context.Context, queueURL, body string) (string, error) {
	output, err := s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return "", fmt.Errorf("failed to send message to sqs: %w", err)
	}

	return aws.ToString(output.MessageId), nil
}
