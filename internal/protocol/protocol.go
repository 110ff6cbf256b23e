// Package protocol implements the MCP (JSON-RPC 2.0) surface of the romanizer.
//
// Two methods are served: "tools/list" and "tools/call". Every response
// echoes the request id exactly as it arrived, including error responses
// for requests that could only be partially parsed.
package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/pricofy/uroman-gateway/internal/domain"
	"github.com/pricofy/uroman-gateway/internal/logging"
)

// JSON-RPC methods.
const (
	MethodToolsList = "tools/list"
	MethodToolsCall = "tools/call"
)

// CodeServerError is the JSON-RPC implementation-defined code used for engine failures.
const CodeServerError = -32000

// Operations is the operation handler used to execute tool calls.
type Operations interface {
	HandleSingle(ctx context.Context, text string, langCode *string) (*domain.SingleResult, error)
	HandleBatch(ctx context.Context, texts []string, langCode *string) (*domain.BatchResult, error)
}

// Request is an inbound JSON-RPC envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// CallParams are the params of a tools/call request.
type CallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolResult is the result of a successful tools/call.
type ToolResult struct {
	Content []mcp.Content `json:"content"`
	Data    any           `json:"data"`
}

// BatchItem pairs one input with its romanization.
type BatchItem struct {
	Original  string `json:"original"`
	Romanized string `json:"romanized"`
}

// BatchData is the structured payload of a romanize_batch result.
type BatchData struct {
	Originals []string    `json:"originals"`
	Romanized []string    `json:"romanized"`
	Results   []BatchItem `json:"results"`
	LangCode  *string     `json:"lang_code"`
	Count     int         `json:"count"`
}

// ErrorData is attached to every JSON-RPC error.
type ErrorData struct {
	Code domain.ErrorKind `json:"code"`
}

type textArguments struct {
	Text     string  `json:"text"`
	LangCode *string `json:"lang_code"`
}

type batchArguments struct {
	Texts    []string `json:"texts"`
	LangCode *string  `json:"lang_code"`
}

// Handler dispatches JSON-RPC requests. It keeps no state between requests.
type Handler struct {
	ops     Operations
	tools   []mcp.Tool
	schemas map[string]*jsonschema.Schema
	log     logging.Logger
}

// New creates a Handler.
func New(ops Operations, log logging.Logger) (*Handler, error) {
	tools := Tools()
	schemas, err := compileSchemas(tools)
	if err != nil {
		return nil, err
	}
	return &Handler{
		ops:     ops,
		tools:   tools,
		schemas: schemas,
		log:     log.WithName("protocol"),
	}, nil
}

// HandleToolsList returns the tool descriptors.
func (h *Handler) HandleToolsList() mcp.ListToolsResult {
	return mcp.ListToolsResult{Tools: append([]mcp.Tool(nil), h.tools...)}
}

// HandleToolCall validates arguments against the tool schema and runs the tool.
func (h *Handler) HandleToolCall(ctx context.Context, name string, arguments json.RawMessage) (*ToolResult, error) {
	schema, ok := h.schemas[name]
	if !ok {
		return nil, domain.Errorf(domain.KindUnknownOperation, "Unknown tool: %s", name)
	}

	args, err := decodeArguments(arguments)
	if err != nil {
		return nil, domain.Errorf(domain.KindMissingInput, "Invalid arguments for %s: %s", name, err.Error())
	}
	if err := schema.Validate(args); err != nil {
		return nil, domain.Errorf(domain.KindMissingInput, "Invalid arguments for %s: %s", name, validationMessage(err))
	}
	clean, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("re-encode arguments: %w", err)
	}

	switch name {
	case ToolRomanizeText:
		var a textArguments
		if err := json.Unmarshal(clean, &a); err != nil {
			return nil, domain.Errorf(domain.KindMissingInput, "Invalid arguments for %s: %s", name, err.Error())
		}
		res, err := h.ops.HandleSingle(ctx, a.Text, a.LangCode)
		if err != nil {
			return nil, err
		}
		return &ToolResult{
			Content: []mcp.Content{mcp.NewTextContent("Romanized: " + res.Romanized)},
			Data:    res,
		}, nil

	case ToolRomanizeBatch:
		var a batchArguments
		if err := json.Unmarshal(clean, &a); err != nil {
			return nil, domain.Errorf(domain.KindMissingInput, "Invalid arguments for %s: %s", name, err.Error())
		}
		res, err := h.ops.HandleBatch(ctx, a.Texts, a.LangCode)
		if err != nil {
			return nil, err
		}
		return batchResult(res), nil
	}

	return nil, domain.Errorf(domain.KindUnknownOperation, "Unknown tool: %s", name)
}

func batchResult(res *domain.BatchResult) *ToolResult {
	items := make([]BatchItem, len(res.Originals))
	lines := make([]string, len(res.Originals))
	for i, original := range res.Originals {
		items[i] = BatchItem{Original: original, Romanized: res.Romanized[i]}
		lines[i] = original + " → " + res.Romanized[i]
	}

	return &ToolResult{
		Content: []mcp.Content{mcp.NewTextContent("Romanized:\n" + strings.Join(lines, "\n"))},
		Data: BatchData{
			Originals: res.Originals,
			Romanized: res.Romanized,
			Results:   items,
			LangCode:  res.LangCode,
			Count:     res.Count,
		},
	}
}

// decodeArguments parses tool arguments into a generic JSON value.
// Absent arguments become an empty object and null members are dropped so
// optional fields may be sent as null.
func decodeArguments(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return map[string]any{}, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	if obj, ok := v.(map[string]any); ok {
		for k, val := range obj {
			if val == nil {
				delete(obj, k)
			}
		}
	}
	return v, nil
}

// HandleRequest processes one raw JSON-RPC request and always returns a
// response envelope: *mcp.JSONRPCResponse or *mcp.JSONRPCError.
func (h *Handler) HandleRequest(ctx context.Context, raw []byte) (resp mcp.JSONRPCMessage) {
	id := extractID(raw)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			h.log.Error(err, "panic during dispatch")
			resp = errorResponse(id, mcp.INTERNAL_ERROR, err.Error(), domain.KindInternal)
		}
	}()

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		if !json.Valid(raw) {
			return errorResponse(id, mcp.PARSE_ERROR, "Parse error: "+err.Error(), domain.KindUnknownMethod)
		}
		return errorResponse(id, mcp.INVALID_REQUEST, "Invalid request: "+err.Error(), domain.KindUnknownMethod)
	}

	h.log.Debug("dispatching", "method", req.Method)

	switch req.Method {
	case MethodToolsList:
		return successResponse(id, h.HandleToolsList())

	case MethodToolsCall:
		var params CallParams
		if len(req.Params) > 0 && !bytes.Equal(bytes.TrimSpace(req.Params), []byte("null")) {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				return errorResponse(id, mcp.INVALID_PARAMS, "Invalid params: "+err.Error(), domain.KindMissingInput)
			}
		}

		result, err := h.HandleToolCall(ctx, params.Name, params.Arguments)
		if err != nil {
			kind := domain.KindOf(err)
			if kind == domain.KindInternal {
				h.log.Error(err, "tool call failed", "tool", params.Name)
			}
			return errorResponse(id, codeFor(kind), err.Error(), kind)
		}
		return successResponse(id, result)
	}

	return errorResponse(id, mcp.METHOD_NOT_FOUND, "Unknown method: "+req.Method, domain.KindUnknownMethod)
}

// codeFor maps an error kind to its JSON-RPC error code.
func codeFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindMissingInput:
		return mcp.INVALID_PARAMS
	case domain.KindUnknownOperation, domain.KindUnknownMethod:
		return mcp.METHOD_NOT_FOUND
	case domain.KindEngineFailure:
		return CodeServerError
	default:
		return mcp.INTERNAL_ERROR
	}
}

// extractID pulls the raw id out of anything that parses as a JSON object.
func extractID(raw []byte) json.RawMessage {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil
	}
	return probe["id"]
}

func requestID(id json.RawMessage) mcp.RequestId {
	if len(id) == 0 {
		return mcp.NewRequestId(nil)
	}
	return mcp.NewRequestId(id)
}

func successResponse(id json.RawMessage, result any) *mcp.JSONRPCResponse {
	return &mcp.JSONRPCResponse{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      requestID(id),
		Result:  result,
	}
}

func errorResponse(id json.RawMessage, code int, message string, kind domain.ErrorKind) *mcp.JSONRPCError {
	return &mcp.JSONRPCError{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      requestID(id),
		Error: mcp.JSONRPCErrorDetails{
			Code:    code,
			Message: message,
			Data:    ErrorData{Code: kind},
		},
	}
}
