package platform

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// GatewayCodec speaks the API Gateway proxy integration format.
type GatewayCodec struct {
	AllowedOrigin string
}

// NewGateway creates an adapter for API Gateway proxy events.
func NewGateway(svc Services, allowedOrigin string) *Adapter[events.APIGatewayProxyRequest, events.APIGatewayProxyResponse] {
	return NewAdapter[events.APIGatewayProxyRequest, events.APIGatewayProxyResponse](GatewayCodec{AllowedOrigin: allowedOrigin}, svc)
}

// Name implements Codec.
func (GatewayCodec) Name() string {
	return string(KindGateway)
}

// ParseInboundEvent returns the proxied body, decoding base64 when flagged.
// An empty body is treated as an empty object.
func (GatewayCodec) ParseInboundEvent(event events.APIGatewayProxyRequest) ([]byte, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 body: %w", err)
		}
		body = string(decoded)
	}
	if strings.TrimSpace(body) == "" {
		return []byte("{}"), nil
	}
	return []byte(body), nil
}

// FormatResponse implements Codec.
func (c GatewayCodec) FormatResponse(status int, body any) events.APIGatewayProxyResponse {
	out, ok := encodeBody(body)
	if !ok {
		status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(c.AllowedOrigin),
		Body:       string(out),
	}
}

func corsHeaders(origin string) map[string]string {
	if origin == "" {
		origin = "*"
	}
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  origin,
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
}
