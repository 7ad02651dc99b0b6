package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	svcerrors "github.com/corvus-core/tokenservice/errors"
	"github.com/corvus-core/tokenservice/session"
)

// snsAPI defines the SNS operations used by SNSNotifier.
// This interface enables testing with mock implementations.
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes events to an SNS topic instead of invoking the
// downstream functions directly. Deployments that fan events out to more
// than one consumer subscribe the core functions to the topic and filter
// on the "event_name" message attribute.
type SNSNotifier struct {
	client   snsAPI
	topicARN string
}

// NewSNSNotifier creates a new SNSNotifier using the provided AWS
// configuration. The topicARN specifies the topic to publish events to.
func NewSNSNotifier(cfg aws.Config, topicARN string) *SNSNotifier {
	return &SNSNotifier{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
	}
}

// newSNSNotifierWithClient creates an SNSNotifier with a custom client.
// This is primarily used for testing with mock clients.
func newSNSNotifierWithClient(client snsAPI, topicARN string) *SNSNotifier {
	return &SNSNotifier{
		client:   client,
		topicARN: topicARN,
	}
}

// Notify publishes the record to the configured topic with an
// "event_name" attribute for subscription filtering.
func (n *SNSNotifier) Notify(ctx context.Context, eventName string, record *session.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return svcerrors.New(svcerrors.ErrCodeNotifyPayloadInvalid,
			fmt.Sprintf("marshal session record for %s: %v", eventName, err),
			svcerrors.GetSuggestion(svcerrors.ErrCodeNotifyPayloadInvalid), err)
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_name": {
				DataType:    aws.String("String"),
				StringValue: aws.String(eventName),
			},
		},
	})
	if err != nil {
		return svcerrors.WrapInvokeError(err, n.topicARN)
	}

	return nil
}
