package errors

import (
	"errors"
	"testing"
)

func TestGetSuggestion_KnownCode(t *testing.T) {
	got := GetSuggestion(ErrCodeStoreTableNotFound)
	if got == "" {
		t.Error("GetSuggestion() returned empty string for a known code")
	}
}

func TestGetSuggestion_UnknownCode(t *testing.T) {
	if got := GetSuggestion("UNKNOWN_CODE"); got != "" {
		t.Errorf("GetSuggestion() = %q, want empty string", got)
	}
}

func TestSuggestions_AllCodesHaveSuggestions(t *testing.T) {
	codes := []string{
		ErrCodeDirectoryLookupFailed,
		ErrCodeDirectoryAccessDenied,
		ErrCodeDirectoryPoolNotFound,
		ErrCodeDirectoryThrottled,
		ErrCodeUserNotFound,
		ErrCodeStoreWriteFailed,
		ErrCodeStoreAccessDenied,
		ErrCodeStoreTableNotFound,
		ErrCodeStoreThrottled,
		ErrCodeNotifyDispatchFailed,
		ErrCodeNotifyFunctionNotFound,
		ErrCodeNotifyAccessDenied,
		ErrCodeNotifyPayloadInvalid,
	}

	for _, code := range codes {
		if Suggestions[code] == "" {
			t.Errorf("no suggestion defined for code %q", code)
		}
	}
}

func TestWrapCognitoError_Nil(t *testing.T) {
	if got := WrapCognitoError(nil, "us-east-1_AbCdEfGhI"); got != nil {
		t.Errorf("WrapCognitoError(nil) = %v, want nil", got)
	}
}

func TestWrapCognitoError_Classification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "resource not found",
			err:      errors.New("ResourceNotFoundException: User pool us-east-1_AbCdEfGhI does not exist"),
			wantCode: ErrCodeDirectoryPoolNotFound,
		},
		{
			name:     "access denied",
			err:      errors.New("AccessDeniedException: not authorized to perform cognito-idp:ListUsers"),
			wantCode: ErrCodeDirectoryAccessDenied,
		},
		{
			name:     "throttled",
			err:      errors.New("TooManyRequestsException: rate exceeded"),
			wantCode: ErrCodeDirectoryThrottled,
		},
		{
			name:     "other",
			err:      errors.New("InternalErrorException: something broke"),
			wantCode: ErrCodeDirectoryLookupFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapCognitoError(tt.err, "us-east-1_AbCdEfGhI")
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %q, want %q", got.Code(), tt.wantCode)
			}
			if got.Unwrap() != tt.err {
				t.Errorf("Unwrap() = %v, want %v", got.Unwrap(), tt.err)
			}
			if got.Context()["pool"] != "us-east-1_AbCdEfGhI" {
				t.Errorf("Context()[\"pool\"] = %q", got.Context()["pool"])
			}
		})
	}
}

func TestWrapDynamoDBError_Nil(t *testing.T) {
	if got := WrapDynamoDBError(nil, "corvus-auth-tokens", "PutItem"); got != nil {
		t.Errorf("WrapDynamoDBError(nil) = %v, want nil", got)
	}
}

func TestWrapDynamoDBError_Classification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "table not found",
			err:      errors.New("ResourceNotFoundException: Requested resource not found"),
			wantCode: ErrCodeStoreTableNotFound,
		},
		{
			name:     "access denied",
			err:      errors.New("AccessDeniedException: User is not authorized to perform dynamodb:PutItem"),
			wantCode: ErrCodeStoreAccessDenied,
		},
		{
			name:     "throttled",
			err:      errors.New("ThrottlingException: Rate of requests exceeds the allowed throughput"),
			wantCode: ErrCodeStoreThrottled,
		},
		{
			name:     "provisioned throughput exceeded",
			err:      errors.New("ProvisionedThroughputExceededException: capacity exceeded"),
			wantCode: ErrCodeStoreThrottled,
		},
		{
			name:     "other",
			err:      errors.New("ValidationException: item size exceeds limit"),
			wantCode: ErrCodeStoreWriteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapDynamoDBError(tt.err, "corvus-auth-tokens", "PutItem")
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %q, want %q", got.Code(), tt.wantCode)
			}
			if got.Context()["table"] != "corvus-auth-tokens" {
				t.Errorf("Context()[\"table\"] = %q", got.Context()["table"])
			}
			if got.Context()["operation"] != "PutItem" {
				t.Errorf("Context()[\"operation\"] = %q", got.Context()["operation"])
			}
		})
	}
}

func TestWrapInvokeError_Nil(t *testing.T) {
	if got := WrapInvokeError(nil, "corvus-dev-coreBuildSecureConnectionParams"); got != nil {
		t.Errorf("WrapInvokeError(nil) = %v, want nil", got)
	}
}

func TestWrapInvokeError_Classification(t *testing.T) {
	functionName := "corvus-dev-coreGetApplicationUserProfile"

	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "function not found",
			err:      errors.New("ResourceNotFoundException: Function not found"),
			wantCode: ErrCodeNotifyFunctionNotFound,
		},
		{
			name:     "access denied",
			err:      errors.New("AccessDeniedException: not authorized to perform lambda:InvokeFunction"),
			wantCode: ErrCodeNotifyAccessDenied,
		},
		{
			name:     "other",
			err:      errors.New("ServiceException: internal failure"),
			wantCode: ErrCodeNotifyDispatchFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapInvokeError(tt.err, functionName)
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %q, want %q", got.Code(), tt.wantCode)
			}
			if got.Context()["function"] != functionName {
				t.Errorf("Context()[\"function\"] = %q", got.Context()["function"])
			}
		})
	}
}
