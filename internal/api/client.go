package api

import (
	"net/http"
)

// ClientType says who is calling the home endpoint: a browser wanting the
// status page, or a VPN client wanting its raw config.
type ClientType string

const (
	ClientWeb ClientType = "web"
	ClientVPN ClientType = "vpn"
)

// ClassifyClient inspects the request and decides the client type. Passed
// around as an explicit value, never stashed on shared request state.
// Detection is header-based for now; smarter fingerprinting can slot in here.
func ClassifyClient(r *http.Request) ClientType {
	if r.Header.Get("X-Client-Type") == string(ClientVPN) {
		return ClientVPN
	}
	return ClientWeb
}
