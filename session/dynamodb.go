package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	svcerrors "github.com/corvus-core/tokenservice/errors"
	"github.com/corvus-core/tokenservice/identity"
)

// ErrTokenNotFound indicates no record exists for the token.
var ErrTokenNotFound = errors.New("token record not found")

// dynamoDBAPI defines the DynamoDB operations used by DynamoDBStore.
// This interface enables testing with mock implementations.
type dynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Store persists session records keyed by token.
type Store interface {
	Put(ctx context.Context, record *Record) error
	Get(ctx context.Context, token string) (*Record, error)
}

// DynamoDBStore implements Store using AWS DynamoDB.
//
// Table schema assumptions (created externally via the deployment stack):
//   - Partition key: pk (String) - the session token
//   - No sort key, no secondary indexes
type DynamoDBStore struct {
	client    dynamoDBAPI
	tableName string
}

// NewDynamoDBStore creates a new DynamoDBStore using the provided AWS
// configuration. The tableName specifies the token table.
func NewDynamoDBStore(cfg aws.Config, tableName string) *DynamoDBStore {
	return &DynamoDBStore{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}
}

// newDynamoDBStoreWithClient creates a DynamoDBStore with a custom client.
// This is primarily used for testing with mock clients.
func newDynamoDBStoreWithClient(client dynamoDBAPI, tableName string) *DynamoDBStore {
	return &DynamoDBStore{
		client:    client,
		tableName: tableName,
	}
}

// dynamoItem represents the DynamoDB item structure for a Record.
// It uses explicit field mapping for proper serialization of Go types.
type dynamoItem struct {
	PK             string            `dynamodbav:"pk"`
	IdentityInfo   map[string]string `dynamodbav:"identityInfo"`
	RoleName       string            `dynamodbav:"roleName"`
	UserAttributes map[string]string `dynamodbav:"userAttributes"`
	UserPoolInfo   *poolInfoItem     `dynamodbav:"userPoolInfo,omitempty"`
	ConnectionType string            `dynamodbav:"connectionType"`
}

// poolInfoItem is the nested directory descriptor attribute.
type poolInfoItem struct {
	DirectoryID string `dynamodbav:"directory_id"`
	SubjectID   string `dynamodbav:"subject_id"`
}

// toItem converts a Record to a DynamoDB item structure.
func toItem(record *Record) *dynamoItem {
	item := &dynamoItem{
		PK:             record.Token,
		IdentityInfo:   record.IdentityInfo,
		RoleName:       record.RoleName,
		UserAttributes: record.Attributes,
		ConnectionType: record.ConnectionType,
	}
	if record.PoolInfo != nil {
		item.UserPoolInfo = &poolInfoItem{
			DirectoryID: record.PoolInfo.DirectoryID,
			SubjectID:   record.PoolInfo.SubjectID,
		}
	}
	return item
}

// fromItem converts a DynamoDB item structure back to a Record.
func fromItem(item *dynamoItem) *Record {
	record := &Record{
		Token:          item.PK,
		IdentityInfo:   item.IdentityInfo,
		RoleName:       item.RoleName,
		Attributes:     item.UserAttributes,
		ConnectionType: item.ConnectionType,
	}
	if item.UserPoolInfo != nil {
		record.PoolInfo = &identity.DirectoryDescriptor{
			DirectoryID: item.UserPoolInfo.DirectoryID,
			SubjectID:   item.UserPoolInfo.SubjectID,
		}
	}
	return record
}

// Put writes the record keyed by its token. The write is an upsert: a
// token collision is not expected given UUID uniqueness but is not treated
// as an error. A failed write is fatal to the request - an unrecorded
// token is unusable.
func (s *DynamoDBStore) Put(ctx context.Context, record *Record) error {
	av, err := attributevalue.MarshalMap(toItem(record))
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return svcerrors.WrapDynamoDBError(err, s.tableName, "PutItem")
	}

	return nil
}

// Get retrieves a record by token. Returns ErrTokenNotFound if no record
// exists. The request path never calls this - it exists for operational
// verification; reads belong to the downstream consumers.
func (s *DynamoDBStore) Get(ctx context.Context, token string) (*Record, error) {
	output, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: token},
		},
	})
	if err != nil {
		return nil, svcerrors.WrapDynamoDBError(err, s.tableName, "GetItem")
	}

	if output.Item == nil {
		return nil, fmt.Errorf("%s: %w", token, ErrTokenNotFound)
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(output.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	return fromItem(&item), nil
}
