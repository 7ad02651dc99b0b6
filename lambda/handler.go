package lambda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/corvus-core/tokenservice/directory"
	svcerrors "github.com/corvus-core/tokenservice/errors"
	"github.com/corvus-core/tokenservice/identity"
	"github.com/corvus-core/tokenservice/logging"
	"github.com/corvus-core/tokenservice/notification"
	"github.com/corvus-core/tokenservice/session"
)

// Handler handles API Gateway v1 (REST) proxy requests for token issuance.
type Handler struct {
	// Config contains the directory, store, notifier, and logger collaborators.
	Config *Config
}

// NewHandler creates a new token issuance handler.
// If cfg is nil, configuration will be loaded from environment on first request.
func NewHandler(cfg ...*Config) *Handler {
	if len(cfg) > 0 && cfg[0] != nil {
		return &Handler{Config: cfg[0]}
	}
	return &Handler{}
}

// requestProbe carries the fields that discriminate gateway integration
// variants. API Gateway v1 proxy events have a top-level httpMethod, no
// version marker, and a populated requestContext.identity.
type requestProbe struct {
	Version        string `json:"version"`
	HTTPMethod     string `json:"httpMethod"`
	RequestContext struct {
		Identity json.RawMessage `json:"identity"`
	} `json:"requestContext"`
}

// HandleRequest processes a raw Lambda payload. Only API Gateway v1 proxy
// events carrying an identity context are served; any other integration
// shape yields a fixed 400 response before any side effect.
// On success the response body is the literal freshly generated token.
func (h *Handler) HandleRequest(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	// Lazy-load config from environment if not provided
	if h.Config == nil {
		cfg, err := LoadConfigFromEnv(ctx)
		if err != nil {
			return errorResponse(http.StatusInternalServerError, "Failed to load configuration: "+err.Error()), nil
		}
		h.Config = cfg
	}

	var probe requestProbe
	if err := json.Unmarshal(raw, &probe); err != nil ||
		probe.HTTPMethod == "" || probe.Version != "" || len(probe.RequestContext.Identity) == 0 {
		return errorResponse(http.StatusBadRequest, FixedBadIntegrationBody), nil
	}

	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorResponse(http.StatusBadRequest, FixedBadIntegrationBody), nil
	}

	token, err := h.issueToken(ctx, req.RequestContext.Identity)
	if err != nil {
		log.Printf("ERROR: token issuance failed: %v", err)
		return errorResponse(statusForError(err), "token issuance failed"), nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    withCORS("text/plain; charset=utf-8"),
		Body:       token,
	}, nil
}

// issueToken runs the identity-resolution and session-materialization
// pipeline for one request. Each step short-circuits on failure; nothing
// is persisted or dispatched unless extraction, lookup, and normalization
// all succeed.
func (h *Handler) issueToken(ctx context.Context, identityInfo events.APIGatewayRequestIdentity) (string, error) {
	token := uuid.NewString()

	roleName, err := identity.ExtractRoleName(identityInfo.UserArn)
	if err != nil {
		h.logIssuanceFailure(identityInfo, err)
		return "", err
	}

	// The gateway contract guarantees an authentication mode and provider
	// descriptor on every request; absence violates the input contract.
	if identityInfo.CognitoAuthenticationType == "" || identityInfo.CognitoAuthenticationProvider == "" {
		err := fmt.Errorf("%w: assertion carries no authentication context", identity.ErrMalformedIdentity)
		h.logIssuanceFailure(identityInfo, err)
		return "", err
	}

	descriptor, err := identity.ParseProviderDescriptor(identityInfo.CognitoAuthenticationProvider)
	if err != nil {
		h.logIssuanceFailure(identityInfo, err)
		return "", err
	}

	// Directory identity is resolved for every session, authenticated or
	// not; the descriptor is only recorded for authenticated ones.
	user, err := h.Config.Directory.FindBySubject(ctx, descriptor)
	if err != nil {
		h.logIssuanceFailure(identityInfo, err)
		return "", err
	}
	attributes := directory.NormalizeAttributes(user)

	record := &session.Record{
		Token:          token,
		IdentityInfo:   identityInfoMap(identityInfo),
		RoleName:       roleName,
		Attributes:     attributes,
		ConnectionType: identityInfo.CognitoAuthenticationType,
	}
	if record.Authenticated() {
		record.PoolInfo = &descriptor
	}

	// Notification failures are isolated: logged, never propagated, never
	// allowed to block persistence.
	h.dispatchNotifications(ctx, record)

	if err := h.Config.Store.Put(ctx, record); err != nil {
		h.logIssuanceFailure(identityInfo, err)
		return "", err
	}

	if h.Config.Logger != nil {
		h.Config.Logger.LogIssuance(logging.IssuanceLogEntry{
			Timestamp:      time.Now().UTC(),
			RoleName:       roleName,
			ConnectionType: record.ConnectionType,
			DirectoryID:    descriptor.DirectoryID,
			AttributeCount: len(attributes),
			Issued:         true,
		})
	}
	log.Printf("INFO: token issued role=%s connection_type=%s", roleName, record.ConnectionType)

	return token, nil
}

// dispatchNotifications evaluates the two independent feature flags and
// fires the matching downstream events. Best-effort by contract.
func (h *Handler) dispatchNotifications(ctx context.Context, record *session.Record) {
	if h.Config.Notifier == nil {
		return
	}

	if record.Authenticated() && ShouldGetApplicationUserProfile() {
		h.notify(ctx, notification.EventGetApplicationUserProfile, record)
	}
	if ShouldBuildSecureConnectionParams() {
		h.notify(ctx, notification.EventBuildSecureConnectionParams, record)
	}
}

// notify dispatches one event and routes any failure to the logging sink.
func (h *Handler) notify(ctx context.Context, eventName string, record *session.Record) {
	err := h.Config.Notifier.Notify(ctx, eventName, record)
	if err != nil {
		log.Printf("WARNING: downstream dispatch %s failed: %v", eventName, err)
	}

	if h.Config.Logger != nil {
		entry := logging.NotificationLogEntry{
			Timestamp: time.Now().UTC(),
			Event:     eventName,
			Delivered: err == nil,
		}
		if err != nil {
			entry.ErrorCode = svcerrors.GetCode(err)
			entry.Error = err.Error()
		}
		h.Config.Logger.LogNotification(entry)
	}
}

// logIssuanceFailure records a failed pipeline run in the structured log.
func (h *Handler) logIssuanceFailure(identityInfo events.APIGatewayRequestIdentity, err error) {
	if h.Config.Logger == nil {
		return
	}
	h.Config.Logger.LogIssuance(logging.IssuanceLogEntry{
		Timestamp:      time.Now().UTC(),
		ConnectionType: identityInfo.CognitoAuthenticationType,
		Issued:         false,
		ErrorCode:      svcerrors.GetCode(err),
		Error:          err.Error(),
	})
}

// statusForError maps pipeline failures to response status codes.
// Malformed assertions are the caller's fault; a missing directory user is
// a stale federated identity; everything else is a backend failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, identity.ErrMalformedIdentity):
		return http.StatusBadRequest
	case errors.Is(err, directory.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse creates an error response with the cross-origin policy applied.
func errorResponse(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    withCORS("text/plain; charset=utf-8"),
		Body:       body,
	}
}
