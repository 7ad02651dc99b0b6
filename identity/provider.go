package identity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoDirectoryID indicates no user-pool identifier was found in the
	// provider descriptor.
	ErrNoDirectoryID = errors.New("provider descriptor contains no user pool identifier")
	// ErrNoSubjectID indicates no subject identifier was found in the
	// provider descriptor.
	ErrNoSubjectID = errors.New("provider descriptor contains no subject identifier")
)

// subjectMarkerLen is the length of the fixed ":CognitoSignIn:" marker the
// upstream provider emits in front of the subject UUID. The subject match
// always starts at that marker's leading colon, so exactly this many
// characters are stripped. Upstream format constant - do not change.
const subjectMarkerLen = 15

// minSubjectSeparators is the number of hyphens a UUID-shaped subject
// carries after its marker colon.
const minSubjectSeparators = 4

// DirectoryDescriptor identifies one user within one user pool of the
// external identity directory. It is derived once per request and folded
// into the session record only for authenticated connections.
type DirectoryDescriptor struct {
	// DirectoryID is the user pool identifier, e.g. "us-east-1_AbCdEfGhI".
	DirectoryID string `json:"directory_id"`
	// SubjectID is the pool-scoped subject UUID.
	SubjectID string `json:"subject_id"`
}

// ParseProviderDescriptor parses a federated authentication provider
// descriptor into its directory and subject identifiers.
//
// The descriptor embeds an upstream string format, e.g.:
//
//	cognito-idp.us-east-1.amazonaws.com/us-east-1_AbCdEfGhI,
//	cognito-idp.us-east-1.amazonaws.com/us-east-1_AbCdEfGhI:CognitoSignIn:
//	0aa01234-e1c8-4e3a-9cde-123456789012
//
// (one line on the wire). Extraction follows the upstream conventions:
// the directory id is the region-partition-digit_pool pattern extended to
// the last comma with that comma stripped; the subject id is the suffix of
// the first colon followed by a UUID shape, with the fixed marker prefix
// stripped. Both rules must be reproduced exactly - they are the contract
// with the upstream provider, not a heuristic.
func ParseProviderDescriptor(descriptor string) (DirectoryDescriptor, error) {
	directoryID, err := extractDirectoryID(descriptor)
	if err != nil {
		return DirectoryDescriptor{}, err
	}

	subjectID, err := extractSubjectID(descriptor)
	if err != nil {
		return DirectoryDescriptor{}, err
	}

	return DirectoryDescriptor{
		DirectoryID: directoryID,
		SubjectID:   subjectID,
	}, nil
}

// extractDirectoryID locates the leftmost position shaped like
// "xx-xxxx-x_" (two characters, hyphen, four characters, hyphen, one
// character, underscore) and extends the match to the last comma in the
// descriptor. The trailing comma is stripped.
func extractDirectoryID(descriptor string) (string, error) {
	lastComma := strings.LastIndexByte(descriptor, ',')

	for p := 0; p+10 <= len(descriptor); p++ {
		if descriptor[p+2] != '-' || descriptor[p+7] != '-' || descriptor[p+9] != '_' {
			continue
		}
		// The pool pattern must be followed by at least the pool suffix
		// and a comma.
		if lastComma < p+10 {
			return "", fmt.Errorf("%w: %w", ErrMalformedIdentity, ErrNoDirectoryID)
		}
		return descriptor[p:lastComma], nil
	}

	return "", fmt.Errorf("%w: %w", ErrMalformedIdentity, ErrNoDirectoryID)
}

// extractSubjectID locates the leftmost colon whose suffix still contains a
// UUID shape (four or more hyphens), takes everything from that colon to
// the end of the descriptor, and strips the fixed-length marker prefix.
func extractSubjectID(descriptor string) (string, error) {
	for c := 0; c < len(descriptor); c++ {
		if descriptor[c] != ':' {
			continue
		}
		if strings.Count(descriptor[c+1:], "-") < minSubjectSeparators {
			continue
		}
		match := descriptor[c:]
		if len(match) <= subjectMarkerLen {
			return "", fmt.Errorf("%w: %w", ErrMalformedIdentity, ErrNoSubjectID)
		}
		return match[subjectMarkerLen:], nil
	}

	return "", fmt.Errorf("%w: %w", ErrMalformedIdentity, ErrNoSubjectID)
}
