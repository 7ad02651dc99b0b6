package session

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/go-cmp/cmp"

	svcerrors "github.com/corvus-core/tokenservice/errors"
	"github.com/corvus-core/tokenservice/identity"
	"github.com/corvus-core/tokenservice/testutil"
)

const testTable = "corvus-auth-tokens"

func testRecord() *Record {
	return &Record{
		Token: "3f1c9c1e-8c86-4d5a-9a6f-0b1d2e3f4a5b",
		IdentityInfo: map[string]string{
			"userArn":                       "arn:aws:sts::123456789012:assumed-role/Analyst/sess1",
			"cognitoAuthenticationType":     "authenticated",
			"cognitoAuthenticationProvider": "cognito-idp.us-east-1.amazonaws.com/us-east-1_AbCdEfGhI",
			"sourceIp":                      "",
		},
		RoleName: "Analyst",
		PoolInfo: &identity.DirectoryDescriptor{
			DirectoryID: "us-east-1_AbCdEfGhI",
			SubjectID:   "0aa01234-e1c8-4e3a-9cde-123456789012",
		},
		Attributes: map[string]string{
			"enabled": "true",
			"email":   "alice@example.com",
		},
		ConnectionType: ConnectionAuthenticated,
	}
}

func TestPut_ItemShape(t *testing.T) {
	mock := &testutil.MockDynamoDBClient{}
	store := newDynamoDBStoreWithClient(mock, testTable)

	if err := store.Put(context.Background(), testRecord()); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	if len(mock.PutItemCalls) != 1 {
		t.Fatalf("expected 1 PutItem call, got %d", len(mock.PutItemCalls))
	}
	input := mock.PutItemCalls[0]
	if aws.ToString(input.TableName) != testTable {
		t.Errorf("TableName = %q, want %q", aws.ToString(input.TableName), testTable)
	}
	if input.ConditionExpression != nil {
		t.Errorf("upsert write must not carry a condition, got %q", aws.ToString(input.ConditionExpression))
	}

	pk, ok := input.Item["pk"].(*types.AttributeValueMemberS)
	if !ok || pk.Value != "3f1c9c1e-8c86-4d5a-9a6f-0b1d2e3f4a5b" {
		t.Errorf("pk attribute = %#v, want token string", input.Item["pk"])
	}

	info, ok := input.Item["identityInfo"].(*types.AttributeValueMemberM)
	if !ok {
		t.Fatalf("identityInfo attribute = %#v, want map", input.Item["identityInfo"])
	}
	sourceIP, ok := info.Value["sourceIp"].(*types.AttributeValueMemberS)
	if !ok || sourceIP.Value != "" {
		t.Errorf("missing identity fields must persist as empty strings, got %#v", info.Value["sourceIp"])
	}

	if _, ok := input.Item["userPoolInfo"].(*types.AttributeValueMemberM); !ok {
		t.Errorf("userPoolInfo attribute = %#v, want map for authenticated record", input.Item["userPoolInfo"])
	}
}

func TestPut_UnauthenticatedOmitsPoolInfo(t *testing.T) {
	mock := &testutil.MockDynamoDBClient{}
	store := newDynamoDBStoreWithClient(mock, testTable)

	record := testRecord()
	record.PoolInfo = nil
	record.ConnectionType = ConnectionUnauthenticated

	if err := store.Put(context.Background(), record); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	input := mock.PutItemCalls[0]
	if _, present := input.Item["userPoolInfo"]; present {
		t.Errorf("userPoolInfo must be omitted for unauthenticated records, got %#v", input.Item["userPoolInfo"])
	}
	ct, ok := input.Item["connectionType"].(*types.AttributeValueMemberS)
	if !ok || ct.Value != ConnectionUnauthenticated {
		t.Errorf("connectionType = %#v, want %q", input.Item["connectionType"], ConnectionUnauthenticated)
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	var stored map[string]types.AttributeValue
	mock := &testutil.MockDynamoDBClient{
		PutItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			stored = params.Item
			return &dynamodb.PutItemOutput{}, nil
		},
		GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: stored}, nil
		},
	}
	store := newDynamoDBStoreWithClient(mock, testTable)

	want := testRecord()
	if err := store.Put(context.Background(), want); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := store.Get(context.Background(), want.Token)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_NotFound(t *testing.T) {
	mock := &testutil.MockDynamoDBClient{}
	store := newDynamoDBStoreWithClient(mock, testTable)

	_, err := store.Get(context.Background(), "missing-token")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestPut_BackendError(t *testing.T) {
	mock := &testutil.MockDynamoDBClient{
		PutItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			return nil, errors.New("ResourceNotFoundException: Requested resource not found")
		},
	}
	store := newDynamoDBStoreWithClient(mock, testTable)

	err := store.Put(context.Background(), testRecord())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := svcerrors.GetCode(err); got != svcerrors.ErrCodeStoreTableNotFound {
		t.Errorf("error code = %q, want %q", got, svcerrors.ErrCodeStoreTableNotFound)
	}
}
