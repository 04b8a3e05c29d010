// Package rest exposes the ticket check, paragraph analysis and paragraph reconnect
// endpoints. The notebook, authorization and authentication services they use are
// supplied by the host as interfaces.
package rest
