// Package platform adapts hosting-platform events to the romanization core.
//
// Each platform supplies a Codec that turns its inbound event into a request
// body and turns a status plus body back into its native response. Request
// handling itself lives in Adapter and is identical for every platform.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pricofy/uroman-gateway/internal/domain"
	"github.com/pricofy/uroman-gateway/internal/logging"
)

// Operations runs plain romanization requests.
type Operations interface {
	HandleRequest(ctx context.Context, req domain.Request) (domain.Result, error)
	HandleInfo(ctx context.Context) domain.Info
}

// Protocol runs JSON-RPC requests.
type Protocol interface {
	HandleRequest(ctx context.Context, raw []byte) mcp.JSONRPCMessage
}

// Services are the platform-neutral handlers shared by every adapter.
type Services struct {
	Operations Operations
	Protocol   Protocol
	Log        logging.Logger
}

// Codec converts between a platform's native event and response types and
// the core's JSON request and response bodies.
type Codec[E, R any] interface {
	Name() string
	ParseInboundEvent(event E) ([]byte, error)
	FormatResponse(status int, body any) R
}

// Adapter runs the core handlers behind a Codec.
type Adapter[E, R any] struct {
	codec Codec[E, R]
	svc   Services
	log   logging.Logger
}

// NewAdapter creates an Adapter for codec.
func NewAdapter[E, R any](codec Codec[E, R], svc Services) *Adapter[E, R] {
	return &Adapter[E, R]{
		codec: codec,
		svc:   svc,
		log:   svc.Log.WithName(codec.Name()),
	}
}

// Name returns the platform name.
func (a *Adapter[E, R]) Name() string {
	return a.codec.Name()
}

// HandleHTTP runs a plain single or batch request.
func (a *Adapter[E, R]) HandleHTTP(ctx context.Context, event E) (resp R) {
	defer a.recoverInto(&resp)

	body, err := a.codec.ParseInboundEvent(event)
	if err != nil {
		return a.fail(domain.Errorf(domain.KindMissingInput, "Invalid request body: %s", err.Error()))
	}

	var req domain.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return a.fail(domain.Errorf(domain.KindMissingInput, "Invalid request body: %s", err.Error()))
	}

	result, err := a.svc.Operations.HandleRequest(ctx, req)
	if err != nil {
		return a.fail(err)
	}
	return a.codec.FormatResponse(http.StatusOK, result)
}

// HandleProtocol runs a JSON-RPC request. Protocol failures are reported in
// the response body, so the status is always 200.
func (a *Adapter[E, R]) HandleProtocol(ctx context.Context, event E) (resp R) {
	defer a.recoverInto(&resp)

	body, err := a.codec.ParseInboundEvent(event)
	if err != nil {
		a.log.Info("unreadable protocol event", "error", err.Error())
	}
	return a.codec.FormatResponse(http.StatusOK, a.svc.Protocol.HandleRequest(ctx, body))
}

// HandleInfo describes the service.
func (a *Adapter[E, R]) HandleInfo(ctx context.Context, _ E) (resp R) {
	defer a.recoverInto(&resp)
	return a.codec.FormatResponse(http.StatusOK, a.svc.Operations.HandleInfo(ctx))
}

func (a *Adapter[E, R]) fail(err error) R {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		a.log.Error(err, "request failed", "status", status)
	}
	return a.codec.FormatResponse(status, domain.NewErrorBody(err))
}

func (a *Adapter[E, R]) recoverInto(resp *R) {
	if r := recover(); r != nil {
		err := domain.Errorf(domain.KindInternal, "%v", r)
		a.log.Error(err, "panic while handling request")
		*resp = a.codec.FormatResponse(http.StatusInternalServerError, domain.NewErrorBody(err))
	}
}

// StatusFor maps an error to the HTTP status reported by status-aware platforms.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch domain.KindOf(err) {
	case domain.KindMissingInput:
		return http.StatusBadRequest
	case domain.KindEngineFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// encodeBody serializes a response body. A body that cannot be encoded is
// replaced by an INTERNAL_ERROR body.
func encodeBody(body any) ([]byte, bool) {
	if raw, ok := body.(json.RawMessage); ok && json.Valid(raw) {
		return raw, true
	}
	out, err := json.Marshal(body)
	if err != nil {
		fallback, _ := json.Marshal(domain.NewErrorBody(fmt.Errorf("failed to encode response: %w", err)))
		return fallback, false
	}
	return out, true
}
