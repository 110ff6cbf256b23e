package platform

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a hosting platform.
type Kind string

// Supported and known platforms.
const (
	KindGateway Kind = "gateway"
	KindDirect  Kind = "direct"
	KindBrowser Kind = "browser"
	KindEdge    Kind = "edge"
)

// ErrUnsupportedPlatform is wrapped by every UnsupportedError.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// UnsupportedError reports a platform that cannot host the engine.
type UnsupportedError struct {
	Platform Kind
	Reasons  []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("platform %q cannot host the romanization engine: %s", e.Platform, strings.Join(e.Reasons, "; "))
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedPlatform
}

// ParseKind resolves a configured platform name. Known platforms that cannot
// host the engine return an *UnsupportedError.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindGateway, KindDirect, KindBrowser:
		return k, nil
	case KindEdge:
		return "", edgeUnsupported()
	default:
		return "", fmt.Errorf("unknown platform %q (want gateway, direct or browser)", s)
	}
}
