// Package testutil provides mock AWS clients shared by package tests.
// Each mock records its inputs and delegates to an optional behavior
// function, defaulting to a benign response.
package testutil

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// ============================================================================
// MockCognitoClient - identity directory operations
// ============================================================================

// MockCognitoClient implements the Cognito ListUsers operation for testing.
type MockCognitoClient struct {
	mu sync.Mutex

	// Configurable behavior function
	ListUsersFunc func(ctx context.Context, params *cognitoidentityprovider.ListUsersInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ListUsersOutput, error)

	// Call tracking
	ListUsersCalls []*cognitoidentityprovider.ListUsersInput
}

// ListUsers implements the Cognito ListUsers operation.
func (m *MockCognitoClient) ListUsers(ctx context.Context, params *cognitoidentityprovider.ListUsersInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ListUsersOutput, error) {
	m.mu.Lock()
	m.ListUsersCalls = append(m.ListUsersCalls, params)
	m.mu.Unlock()

	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, params, optFns...)
	}
	return &cognitoidentityprovider.ListUsersOutput{}, nil
}

// Reset clears all call tracking data.
func (m *MockCognitoClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListUsersCalls = nil
}

// ============================================================================
// MockDynamoDBClient - token store operations
// ============================================================================

// MockDynamoDBClient implements the DynamoDB operations used by the token
// store: PutItem for writes and GetItem for round-trip verification.
type MockDynamoDBClient struct {
	mu sync.Mutex

	// Configurable behavior functions
	PutItemFunc func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItemFunc func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)

	// Call tracking
	PutItemCalls []*dynamodb.PutItemInput
	GetItemCalls []*dynamodb.GetItemInput
}

// PutItem implements the DynamoDB PutItem operation.
func (m *MockDynamoDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	m.PutItemCalls = append(m.PutItemCalls, params)
	m.mu.Unlock()

	if m.PutItemFunc != nil {
		return m.PutItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

// GetItem implements the DynamoDB GetItem operation.
func (m *MockDynamoDBClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.Lock()
	m.GetItemCalls = append(m.GetItemCalls, params)
	m.mu.Unlock()

	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.GetItemOutput{}, nil
}

// Reset clears all call tracking data.
func (m *MockDynamoDBClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutItemCalls = nil
	m.GetItemCalls = nil
}

// ============================================================================
// MockLambdaClient - downstream invocation operations
// ============================================================================

// MockLambdaClient implements the Lambda Invoke operation for testing.
type MockLambdaClient struct {
	mu sync.Mutex

	// Configurable behavior function
	InvokeFunc func(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)

	// Call tracking
	InvokeCalls []*lambda.InvokeInput
}

// Invoke implements the Lambda Invoke operation.
func (m *MockLambdaClient) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	m.mu.Lock()
	m.InvokeCalls = append(m.InvokeCalls, params)
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, params, optFns...)
	}
	return &lambda.InvokeOutput{StatusCode: 202}, nil
}

// Reset clears all call tracking data.
func (m *MockLambdaClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvokeCalls = nil
}

// ============================================================================
// MockSNSClient - topic notification operations
// ============================================================================

// MockSNSClient implements the SNS Publish operation for testing.
type MockSNSClient struct {
	mu sync.Mutex

	// Configurable behavior function
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)

	// Call tracking
	PublishCalls []*sns.PublishInput
}

// Publish implements the SNS Publish operation.
func (m *MockSNSClient) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.mu.Lock()
	m.PublishCalls = append(m.PublishCalls, params)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, params, optFns...)
	}
	return &sns.PublishOutput{}, nil
}

// Reset clears all call tracking data.
func (m *MockSNSClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
}
