package server

import (
	"net"
	"net/http"
	"strconv"
)

// StartHTTPServer blocks serving the handler on host:port.
func StartHTTPServer(host string, port int, handler http.Handler) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	return http.ListenAndServe(addr, handler)
}
