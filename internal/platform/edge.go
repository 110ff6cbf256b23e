package platform

import "net/http"

func edgeUnsupported() *UnsupportedError {
	return &UnsupportedError{
		Platform: KindEdge,
		Reasons: []string{
			"worker bundles are capped at 10MB but the engine ships 13-15MB of static data",
			"the runtime lacks the regex module the engine depends on",
		},
	}
}

// NewEdge always fails: edge workers cannot load the engine. The failure
// happens here, at construction, and never inside a request.
func NewEdge(Services) (*Adapter[*http.Request, *BrowserResponse], error) {
	return nil, edgeUnsupported()
}
