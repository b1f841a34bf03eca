package server

import "time"

// writeTimeout only bounds writes on the connection. Handlers are cut off by
// the request timeout in the router, which must stay below it so the error
// response still reaches the client.
const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
