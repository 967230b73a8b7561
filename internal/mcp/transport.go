// Package mcp provides a JSON-RPC client transport for Model Context Protocol
// servers and a named registry of such transports.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Transport is a connection to one MCP server
type Transport interface {
	// Connect probes the server. It reports false without error when the server
	// answered with a non-200 success status.
	Connect(ctx context.Context) (bool, error)
	// Send issues a JSON-RPC call and returns the raw result member
	Send(ctx context.Context, method string, params any) (json.RawMessage, error)
	Disconnect()
	IsConnected() bool
	Name() string
	URL() string
}

// ErrNotRegistered is matched by NotRegisteredError
var ErrNotRegistered = errors.New("mcp transport not registered")

// RPCError is the error member of a JSON-RPC response
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("MCP server error: %s (code: %d)", e.Message, e.Code)
}

// NotRegisteredError is returned when a transport name is unknown
type NotRegisteredError struct {
	Name        string
	Suggestions []string
}

func (e *NotRegisteredError) Error() string {
	msg := fmt.Sprintf("MCP transport [%s] is not registered.", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" Did you mean %s?", joinQuoted(e.Suggestions))
	}
	return msg
}

// Is implements errors.Is
func (e *NotRegisteredError) Is(target error) bool {
	return target == ErrNotRegistered
}

func joinQuoted(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "[" + n + "]"
	}
	return strings.Join(quoted, ", ")
}
