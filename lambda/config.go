package lambda

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/corvus-core/tokenservice/directory"
	"github.com/corvus-core/tokenservice/logging"
	"github.com/corvus-core/tokenservice/notification"
	"github.com/corvus-core/tokenservice/session"
)

// Environment variable names for service configuration.
const (
	// EnvTokenTable is the DynamoDB table holding session records (required).
	EnvTokenTable = "TOKEN_TABLE_NAME"
	// EnvRegion is the AWS region, supplied by the Lambda runtime.
	EnvRegion = "AWS_REGION"
	// EnvNotifyTopic, when set, routes downstream events through an SNS
	// topic instead of direct function invocation.
	EnvNotifyTopic = "NOTIFY_TOPIC_ARN"

	// Feature flags, read at call time per request.
	EnvShouldGetApplicationUserProfile   = "SHOULD_GET_APPLICATION_USER_PROFILE"
	EnvShouldBuildSecureConnectionParams = "SHOULD_BUILD_SECURE_CONNECTION_PARAMS"
)

// Config contains the process-lifetime collaborators for the handler.
// It is built once on the first request of a warm process and reused; every
// client it holds is safe for concurrent use across overlapping requests.
type Config struct {
	// TableName is the DynamoDB token table (required).
	TableName string

	// Region is the AWS region.
	Region string

	// Directory resolves caller profiles from the identity directory.
	Directory directory.Finder

	// Store persists session records.
	Store session.Store

	// Notifier dispatches downstream enrichment events.
	// If nil, notification is disabled.
	Notifier notification.Notifier

	// Logger records issuance and notification events.
	// If nil, structured logging is disabled.
	Logger logging.Logger
}

// LoadConfigFromEnv creates a Config from environment variables.
// This is the primary way to configure the service in production.
func LoadConfigFromEnv(ctx context.Context) (*Config, error) {
	cfg := &Config{
		TableName: os.Getenv(EnvTokenTable),
		Region:    os.Getenv(EnvRegion),
	}
	if cfg.TableName == "" {
		return nil, fmt.Errorf("%s not configured", EnvTokenTable)
	}

	// One AWS config load per process - all clients share it.
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	cfg.Directory = directory.NewClient(awsCfg)
	cfg.Store = session.NewDynamoDBStore(awsCfg, cfg.TableName)

	if topicARN := os.Getenv(EnvNotifyTopic); topicARN != "" {
		cfg.Notifier = notification.NewSNSNotifier(awsCfg, topicARN)
	} else {
		cfg.Notifier = notification.NewLambdaNotifier(awsCfg)
	}

	cfg.Logger = logging.NewJSONLogger(os.Stdout)

	return cfg, nil
}

// ShouldGetApplicationUserProfile reports whether the application profile
// enrichment flag is enabled. Read from the environment at call time.
func ShouldGetApplicationUserProfile() bool {
	return os.Getenv(EnvShouldGetApplicationUserProfile) == "true"
}

// ShouldBuildSecureConnectionParams reports whether the secure connection
// parameter enrichment flag is enabled. Read from the environment at call
// time.
func ShouldBuildSecureConnectionParams() bool {
	return os.Getenv(EnvShouldBuildSecureConnectionParams) == "true"
}
