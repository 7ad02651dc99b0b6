package errors

import (
	"fmt"
	"strings"
)

// Suggestions contains default fix suggestions for each error code.
var Suggestions = map[string]string{
	ErrCodeDirectoryAccessDenied: "Ensure the function's execution role includes: cognito-idp:ListUsers on the user pool.",
	ErrCodeDirectoryPoolNotFound: "The user pool does not exist in this region. " +
		"Verify the pool id embedded in the authentication provider descriptor.",
	ErrCodeDirectoryThrottled:    "Cognito API rate limit exceeded. Wait a moment and retry.",
	ErrCodeDirectoryLookupFailed: "Check the function's credentials and Cognito permissions.",
	ErrCodeUserNotFound:          "The subject has no user record in the pool. The caller's federated identity may have been deleted.",
	ErrCodeStoreAccessDenied:     "Ensure the function's execution role includes: dynamodb:PutItem on the token table.",
	ErrCodeStoreTableNotFound: "The token table does not exist. " +
		"Create it with the deployment stack and set TOKEN_TABLE_NAME to its name.",
	ErrCodeStoreThrottled:         "DynamoDB throughput exceeded. Wait a moment and retry, or increase table capacity.",
	ErrCodeStoreWriteFailed:       "Check the function's credentials and DynamoDB permissions.",
	ErrCodeNotifyFunctionNotFound: "The downstream function does not exist. Verify projectName and stage match the deployed core functions.",
	ErrCodeNotifyAccessDenied:     "Ensure the function's execution role includes: lambda:InvokeFunction on the core event functions.",
	ErrCodeNotifyPayloadInvalid:   "The session record payload could not be serialized. This indicates a bug in the record shape.",
	ErrCodeNotifyDispatchFailed:   "Check the function's credentials and Lambda invoke permissions.",
}

// GetSuggestion returns the default suggestion for an error code.
// Returns empty string if no suggestion is defined.
func GetSuggestion(code string) string {
	return Suggestions[code]
}

// WrapCognitoError examines a Cognito error and returns a ServiceError with context.
func WrapCognitoError(err error, poolID string) ServiceError {
	if err == nil {
		return nil
	}

	var code string
	var message string

	errStr := strings.ToLower(err.Error())

	switch {
	case isResourceNotFound(errStr):
		code = ErrCodeDirectoryPoolNotFound
		message = fmt.Sprintf("user pool not found: %s", poolID)
	case isAccessDenied(errStr):
		code = ErrCodeDirectoryAccessDenied
		message = fmt.Sprintf("access denied to user pool: %s", poolID)
	case isThrottled(errStr):
		code = ErrCodeDirectoryThrottled
		message = fmt.Sprintf("Cognito API throttled for pool: %s", poolID)
	default:
		code = ErrCodeDirectoryLookupFailed
		message = fmt.Sprintf("Cognito error for pool %s: %v", poolID, err)
	}

	se := New(code, message, Suggestions[code], err)
	return WithContext(se, "pool", poolID)
}

// WrapDynamoDBError examines a DynamoDB error and returns a ServiceError.
func WrapDynamoDBError(err error, table, operation string) ServiceError {
	if err == nil {
		return nil
	}

	var code string
	var message string

	errStr := strings.ToLower(err.Error())

	switch {
	case isResourceNotFound(errStr):
		code = ErrCodeStoreTableNotFound
		message = fmt.Sprintf("token table not found: %s", table)
	case isAccessDenied(errStr):
		code = ErrCodeStoreAccessDenied
		message = fmt.Sprintf("access denied to token table: %s", table)
	case isThrottled(errStr) || isProvisionedThroughputExceeded(errStr):
		code = ErrCodeStoreThrottled
		message = fmt.Sprintf("DynamoDB throughput exceeded for table: %s", table)
	default:
		code = ErrCodeStoreWriteFailed
		message = fmt.Sprintf("DynamoDB error for table %s during %s: %v", table, operation, err)
	}

	se := New(code, message, Suggestions[code], err)
	se = WithContext(se, "table", table)
	return WithContext(se, "operation", operation)
}

// WrapInvokeError examines a Lambda invoke error and returns a ServiceError.
func WrapInvokeError(err error, functionName string) ServiceError {
	if err == nil {
		return nil
	}

	var code string
	var message string

	errStr := strings.ToLower(err.Error())

	switch {
	case isResourceNotFound(errStr):
		code = ErrCodeNotifyFunctionNotFound
		message = fmt.Sprintf("downstream function not found: %s", functionName)
	case isAccessDenied(errStr):
		code = ErrCodeNotifyAccessDenied
		message = fmt.Sprintf("access denied invoking downstream function: %s", functionName)
	default:
		code = ErrCodeNotifyDispatchFailed
		message = fmt.Sprintf("invoke error for function %s: %v", functionName, err)
	}

	se := New(code, message, Suggestions[code], err)
	return WithContext(se, "function", functionName)
}

// Error string classifiers. AWS SDK errors are matched on their lowercased
// message because the SDK surfaces many of these as untyped smithy API
// errors whose codes vary across services.

func isAccessDenied(errStr string) bool {
	return strings.Contains(errStr, "accessdenied") ||
		strings.Contains(errStr, "access denied") ||
		strings.Contains(errStr, "unauthorizedoperation") ||
		strings.Contains(errStr, "not authorized")
}

func isResourceNotFound(errStr string) bool {
	return strings.Contains(errStr, "resourcenotfound") ||
		strings.Contains(errStr, "resource not found") ||
		strings.Contains(errStr, "does not exist") ||
		strings.Contains(errStr, "not found")
}

func isThrottled(errStr string) bool {
	return strings.Contains(errStr, "throttl") ||
		strings.Contains(errStr, "toomanyrequests") ||
		strings.Contains(errStr, "rate exceeded")
}

func isProvisionedThroughputExceeded(errStr string) bool {
	return strings.Contains(errStr, "provisionedthroughputexceeded")
}
