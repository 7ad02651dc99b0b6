// Package session defines the denormalized session record minted for each
// issued token and its DynamoDB persistence.
package session

import (
	"github.com/corvus-core/tokenservice/identity"
)

// Connection type labels carried by the inbound assertion.
const (
	// ConnectionAuthenticated marks sessions established through the
	// federated identity provider.
	ConnectionAuthenticated = "authenticated"
	// ConnectionUnauthenticated marks guest sessions.
	ConnectionUnauthenticated = "unauthenticated"
)

// Record is the unit of persistence: one issued token and the identity
// data resolved for it. Created fresh per request, written exactly once,
// never mutated after the write. The token service itself never reads
// records back - the read path belongs to the downstream consumers.
//
// The JSON field names are the payload contract with the downstream core
// functions and must not change.
type Record struct {
	// Token is the freshly generated UUID and the sole lookup key.
	Token string `json:"token"`

	// IdentityInfo is a structured copy of the raw gateway identity
	// fields, each flattened to a string. Missing fields are empty
	// strings, never omitted.
	IdentityInfo map[string]string `json:"identity_info"`

	// RoleName is the logical role extracted from the caller's ARN.
	RoleName string `json:"role_name"`

	// PoolInfo identifies the caller's directory user. Populated if and
	// only if ConnectionType is ConnectionAuthenticated.
	PoolInfo *identity.DirectoryDescriptor `json:"user_pool_info,omitempty"`

	// Attributes is the normalized directory profile. Always populated,
	// regardless of connection type.
	Attributes map[string]string `json:"user_attributes"`

	// ConnectionType is the raw authentication mode label from the
	// assertion, or empty if the assertion carried none.
	ConnectionType string `json:"connection_type"`
}

// Authenticated reports whether the record belongs to an authenticated
// connection.
func (r *Record) Authenticated() bool {
	return r.ConnectionType == ConnectionAuthenticated
}
