package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	svcerrors "github.com/corvus-core/tokenservice/errors"
	"github.com/corvus-core/tokenservice/session"
)

// Environment variables naming the deployment the downstream functions
// belong to. Read at call time - the deployment tooling may rotate them
// between invocations of a warm process.
const (
	EnvProjectName = "projectName"
	EnvStage       = "stage"
)

// lambdaAPI defines the Lambda operations used by LambdaNotifier.
// This interface enables testing with mock implementations.
type lambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaNotifier dispatches events as asynchronous Lambda invocations.
// The target function name follows the serverless deployment convention
// <projectName>-<stage>-<eventName>, built from the raw environment values.
type LambdaNotifier struct {
	client lambdaAPI
}

// NewLambdaNotifier creates a new LambdaNotifier using the provided AWS
// configuration.
func NewLambdaNotifier(cfg aws.Config) *LambdaNotifier {
	return &LambdaNotifier{
		client: lambda.NewFromConfig(cfg),
	}
}

// newLambdaNotifierWithClient creates a LambdaNotifier with a custom client.
// This is primarily used for testing with mock clients.
func newLambdaNotifierWithClient(client lambdaAPI) *LambdaNotifier {
	return &LambdaNotifier{client: client}
}

// Notify serializes the record and dispatches it to the named downstream
// function with invocation type Event, so the call returns as soon as the
// invocation is queued. The response is never consumed.
func (n *LambdaNotifier) Notify(ctx context.Context, eventName string, record *session.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return svcerrors.New(svcerrors.ErrCodeNotifyPayloadInvalid,
			fmt.Sprintf("marshal session record for %s: %v", eventName, err),
			svcerrors.GetSuggestion(svcerrors.ErrCodeNotifyPayloadInvalid), err)
	}

	functionName := FunctionName(eventName)
	_, err = n.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return svcerrors.WrapInvokeError(err, functionName)
	}

	return nil
}

// FunctionName builds the deployment-scoped function identifier for an
// event name: <projectName>-<stage>-<eventName> from the raw environment
// values.
func FunctionName(eventName string) string {
	return fmt.Sprintf("%s-%s-%s", os.Getenv(EnvProjectName), os.Getenv(EnvStage), eventName)
}
