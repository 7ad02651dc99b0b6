// Package directory resolves caller profiles from the external identity
// directory (Cognito user pools) and normalizes them into the flat
// attribute map carried by session records.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	svcerrors "github.com/corvus-core/tokenservice/errors"
	"github.com/corvus-core/tokenservice/identity"
)

// ErrUserNotFound indicates the directory returned zero users for the
// subject. Fatal for the request - no retry.
var ErrUserNotFound = errors.New("no directory user matches the subject")

// cognitoAPI defines the Cognito operations used by Client.
// This interface enables testing with mock implementations.
type cognitoAPI interface {
	ListUsers(ctx context.Context, params *cognitoidentityprovider.ListUsersInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ListUsersOutput, error)
}

// Finder looks up a single directory user by its pool-scoped subject id.
type Finder interface {
	FindBySubject(ctx context.Context, descriptor identity.DirectoryDescriptor) (*types.UserType, error)
}

// Client implements Finder against the Cognito identity provider API.
// It is safe for concurrent use across overlapping requests.
type Client struct {
	client cognitoAPI
}

// NewClient creates a new directory Client using the provided AWS configuration.
func NewClient(cfg aws.Config) *Client {
	return &Client{
		client: cognitoidentityprovider.NewFromConfig(cfg),
	}
}

// newClientWithAPI creates a Client with a custom Cognito client.
// This is primarily used for testing with mock clients.
func newClientWithAPI(client cognitoAPI) *Client {
	return &Client{client: client}
}

// FindBySubject queries the directory for exactly one user whose "sub"
// attribute equals the descriptor's subject id, scoped to the descriptor's
// pool. Returns ErrUserNotFound if the pool has no matching user.
func (c *Client) FindBySubject(ctx context.Context, descriptor identity.DirectoryDescriptor) (*types.UserType, error) {
	output, err := c.client.ListUsers(ctx, &cognitoidentityprovider.ListUsersInput{
		UserPoolId: aws.String(descriptor.DirectoryID),
		Filter:     aws.String(fmt.Sprintf("sub = %q", descriptor.SubjectID)),
		Limit:      aws.Int32(1),
	})
	if err != nil {
		return nil, svcerrors.WrapCognitoError(err, descriptor.DirectoryID)
	}

	if len(output.Users) == 0 {
		return nil, fmt.Errorf("%s: %w", descriptor.SubjectID, ErrUserNotFound)
	}

	return &output.Users[0], nil
}
