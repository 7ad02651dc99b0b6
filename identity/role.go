// Package identity parses the caller-supplied identity assertion: the
// assumed-role ARN and the federated authentication provider descriptor
// attached to each API Gateway request.
package identity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedIdentity indicates the assertion fails a parsing contract.
	// All more specific parse errors wrap this one.
	ErrMalformedIdentity = errors.New("malformed identity assertion")
	// ErrNoAssumedRole indicates the ARN has no assumed-role/<role>/<session> segment.
	ErrNoAssumedRole = errors.New("ARN does not contain an assumed-role segment")
	// ErrEmptyARN indicates an empty ARN was provided.
	ErrEmptyARN = errors.New("ARN cannot be empty")
)

const assumedRoleMarker = "assumed-role/"

// ExtractRoleName extracts the logical role name from an assumed-role ARN.
//
// Supported format:
//   - arn:aws:sts::123456789012:assumed-role/RoleName/session-name
//
// The role name is the path component between "assumed-role/" and the next
// slash. ARNs without a complete assumed-role segment fail with
// ErrNoAssumedRole wrapping ErrMalformedIdentity.
func ExtractRoleName(userARN string) (string, error) {
	if userARN == "" {
		return "", fmt.Errorf("%w: %w", ErrMalformedIdentity, ErrEmptyARN)
	}

	idx := strings.Index(userARN, assumedRoleMarker)
	if idx < 0 {
		return "", fmt.Errorf("%w: %w: %q", ErrMalformedIdentity, ErrNoAssumedRole, userARN)
	}

	// Format after the marker: <role-name>/<session-name>...
	rest := userARN[idx+len(assumedRoleMarker):]
	roleName, _, found := strings.Cut(rest, "/")
	if !found || roleName == "" {
		return "", fmt.Errorf("%w: %w: %q", ErrMalformedIdentity, ErrNoAssumedRole, userARN)
	}

	return roleName, nil
}
