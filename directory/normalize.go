package directory

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// Fixed attribute keys seeded into every normalized map. Dynamic pool
// attributes sharing one of these names overwrite the seeded value.
const (
	AttrUserCreateDate       = "user_create_date"
	AttrUserLastModifiedDate = "user_last_modified_date"
	AttrEnabled              = "enabled"
	AttrUserStatus           = "user_status"
)

// NormalizeAttributes converts a directory user record into a single flat
// attribute-name to string-value mapping. The map is seeded with the
// record's fixed fields (timestamps as floating-point seconds since epoch,
// enabled flag, status label), then overlaid with every dynamic attribute
// pair. Dynamic attributes win on name collision. Pure transform.
func NormalizeAttributes(user *types.UserType) map[string]string {
	attributes := map[string]string{
		AttrEnabled:    strconv.FormatBool(user.Enabled),
		AttrUserStatus: string(user.UserStatus),
	}

	if user.UserCreateDate != nil {
		attributes[AttrUserCreateDate] = formatEpochSeconds(user.UserCreateDate.UnixNano())
	}
	if user.UserLastModifiedDate != nil {
		attributes[AttrUserLastModifiedDate] = formatEpochSeconds(user.UserLastModifiedDate.UnixNano())
	}

	for _, attribute := range user.Attributes {
		if attribute.Name == nil || attribute.Value == nil {
			continue
		}
		attributes[*attribute.Name] = *attribute.Value
	}

	return attributes
}

// formatEpochSeconds renders nanoseconds since epoch as floating-point
// seconds in the shortest decimal form, e.g. "1735689600.25".
func formatEpochSeconds(nanos int64) string {
	return strconv.FormatFloat(float64(nanos)/1e9, 'f', -1, 64)
}
