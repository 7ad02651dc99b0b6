// Package lambda provides the Lambda handler for the token issuance service.
package lambda

import (
	"github.com/aws/aws-lambda-go/events"
)

// FixedBadIntegrationBody is the diagnostic body returned for any payload
// that is not an API Gateway v1 proxy event. The literal is part of the
// gateway contract.
const FixedBadIntegrationBody = "Not an ApiGatewayV1 request"

// identityInfoMap flattens the raw gateway identity fields into the
// string map persisted inside the session record. Every field is present;
// a field the gateway did not supply is an empty string, never omitted.
// Keys match the gateway's own JSON names.
func identityInfoMap(id events.APIGatewayRequestIdentity) map[string]string {
	return map[string]string{
		"cognitoIdentityPoolId":         id.CognitoIdentityPoolID,
		"accountId":                     id.AccountID,
		"cognitoIdentityId":             id.CognitoIdentityID,
		"caller":                        id.Caller,
		"apiKey":                        id.APIKey,
		"apiKeyId":                      id.APIKeyID,
		"accessKey":                     id.AccessKey,
		"sourceIp":                      id.SourceIP,
		"cognitoAuthenticationType":     id.CognitoAuthenticationType,
		"cognitoAuthenticationProvider": id.CognitoAuthenticationProvider,
		"userArn":                       id.UserArn,
		"userAgent":                     id.UserAgent,
		"user":                          id.User,
	}
}
