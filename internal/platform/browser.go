package platform

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBodyBytes bounds browser request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// BrowserResponse is a buffered HTTP response.
type BrowserResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Write sends the response to w.
func (r *BrowserResponse) Write(w http.ResponseWriter) error {
	for k, vs := range r.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(r.StatusCode)
	if len(r.Body) == 0 {
		return nil
	}
	_, err := w.Write(r.Body)
	return err
}

// BrowserCodec serves functions called from browsers over plain HTTP.
type BrowserCodec struct {
	AllowedOrigin string
	MaxBodyBytes  int64
}

// Browser is the browser adapter plus CORS preflight handling.
type Browser struct {
	*Adapter[*http.Request, *BrowserResponse]
	codec BrowserCodec
}

// NewBrowser creates a browser adapter.
func NewBrowser(svc Services, codec BrowserCodec) *Browser {
	if codec.MaxBodyBytes <= 0 {
		codec.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Browser{
		Adapter: NewAdapter[*http.Request, *BrowserResponse](codec, svc),
		codec:   codec,
	}
}

// Preflight answers a CORS OPTIONS request.
func (b *Browser) Preflight() *BrowserResponse {
	return &BrowserResponse{
		StatusCode: http.StatusNoContent,
		Header:     b.codec.header(),
	}
}

// Name implements Codec.
func (BrowserCodec) Name() string {
	return string(KindBrowser)
}

// ParseInboundEvent reads the request body up to the size limit.
// An empty body is treated as an empty object.
func (c BrowserCodec) ParseInboundEvent(r *http.Request) ([]byte, error) {
	if r == nil || r.Body == nil {
		return []byte("{}"), nil
	}
	defer r.Body.Close()

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("body exceeds %d bytes", limit)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return []byte("{}"), nil
	}
	return body, nil
}

// FormatResponse implements Codec.
func (c BrowserCodec) FormatResponse(status int, body any) *BrowserResponse {
	out, ok := encodeBody(body)
	if !ok {
		status = http.StatusInternalServerError
	}
	return &BrowserResponse{
		StatusCode: status,
		Header:     c.header(),
		Body:       out,
	}
}

func (c BrowserCodec) header() http.Header {
	h := make(http.Header)
	for k, v := range corsHeaders(c.AllowedOrigin) {
		h.Set(k, v)
	}
	return h
}
