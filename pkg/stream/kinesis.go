package stream

import (
	"context"
	"fmt"

	"quotestream/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

// Ack is the destination's acknowledgment for one published record.
type Ack struct {
	SequenceNumber string
	ShardID        string
}

// Publisher appends one record to a partitioned log under the given
// partition key.
type Publisher interface {
	Publish(ctx context.Context, partitionKey string, payload []byte) (Ack, error)
}

// kinesisAPI is the subset of the Kinesis client used by the publisher.
type kinesisAPI interface {
	PutRecord(ctx context.Context, params *kinesis.PutRecordInput, optFns ...func(*kinesis.Options)) (*kinesis.PutRecordOutput, error)
	DescribeStreamSummary(ctx context.Context, params *kinesis.DescribeStreamSummaryInput, optFns ...func(*kinesis.Options)) (*kinesis.DescribeStreamSummaryOutput, error)
}

// KinesisPublisher publishes records to a single Kinesis data stream.
type KinesisPublisher struct {
	client kinesisAPI
	stream string
}

// NewKinesisPublisher builds a Kinesis client from the ambient AWS credential
// chain and verifies at startup that the target stream exists and is ACTIVE.
// A failed check is a fatal configuration error for the caller.
func NewKinesisPublisher(ctx context.Context, cfg config.StreamConfig, env string) (*KinesisPublisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := kinesis.NewFromConfig(awsCfg, func(o *kinesis.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	p := &KinesisPublisher{
		client: client,
		stream: cfg.ResolveName(env),
	}

	if err := p.ensureActive(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// ensureActive fails unless the stream exists and is in the ACTIVE state.
func (p *KinesisPublisher) ensureActive(ctx context.Context) error {
	out, err := p.client.DescribeStreamSummary(ctx, &kinesis.DescribeStreamSummaryInput{
		StreamName: aws.String(p.stream),
	})
	if err != nil {
		return fmt.Errorf("describe stream %s: %w", p.stream, err)
	}

	status := out.StreamDescriptionSummary.StreamStatus
	if status != types.StreamStatusActive {
		return fmt.Errorf("stream %s is not active (status %s)", p.stream, status)
	}
	return nil
}

// Publish appends the payload under partitionKey and returns the sequence
// number and shard the destination assigned.
func (p *KinesisPublisher) Publish(ctx context.Context, partitionKey string, payload []byte) (Ack, error) {
	out, err := p.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(p.stream),
		PartitionKey: aws.String(partitionKey),
		Data:         payload,
	})
	if err != nil {
		return Ack{}, fmt.Errorf("put record to %s: %w", p.stream, err)
	}

	return Ack{
		SequenceNumber: aws.ToString(out.SequenceNumber),
		ShardID:        aws.ToString(out.ShardId),
	}, nil
}
