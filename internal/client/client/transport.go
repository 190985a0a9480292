package client

import (
	"net/http"

	"github.com/dmitrijs2005/corpchat/internal/common"
)

// authTransport is the one place where outbound API requests get their
// credential. The token source is consulted on every request.
type authTransport struct {
	tokens TokenSource
	next   http.RoundTripper
}

func newAuthTransport(tokens TokenSource, next http.RoundTripper) *authTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &authTransport{tokens: tokens, next: next}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var credential string
	if t.tokens != nil {
		credential = t.tokens.Credential()
	}
	if credential == "" {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set(common.AuthorizationHeaderName, common.AuthorizationValue(credential))
	return t.next.RoundTrip(r)
}
