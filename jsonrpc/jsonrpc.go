// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package jsonrpc holds the JSON-RPC 2.0 message and error types shared by
// the pipeline and its host runtime.
package jsonrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// An ID is a JSON-RPC request identifier: a string or an integer.
//
// IDs are opaque correlation tokens. The pipeline propagates them unchanged
// through every level of delegation, so a response can be matched to its
// originating top-level request even after several levels of nested calls.
type ID struct {
	raw any // string, int64, or nil for the zero ID
}

// StringID returns an ID holding the given string.
func StringID(s string) ID { return ID{raw: s} }

// Int64ID returns an ID holding the given integer.
func Int64ID(n int64) ID { return ID{raw: n} }

// IsValid reports whether the ID carries a value.
func (id ID) IsValid() bool { return id.raw != nil }

// Raw returns the underlying value: a string, an int64, or nil.
func (id ID) Raw() any { return id.raw }

func (id ID) String() string {
	switch v := id.raw.(type) {
	case string:
		return strconv.Quote(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return "<nil>"
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.raw == nil {
		return []byte("null"), nil
	}
	return json.Marshal(id.raw)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		id.raw = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		id.raw = s
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		id.raw = n
		return nil
	}
	return fmt.Errorf("invalid request ID %s", data)
}

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// An Error is a protocol-level JSON-RPC error.
//
// Tool-level failures (bad arguments, domain errors) are never represented
// as an Error; they travel inside a successful tools/call result with the
// isError flag set.
type Error struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// ErrMethodNotFound signals that no handler in the remaining pipeline
// recognizes a request kind or tool name. Wrap it with fmt.Errorf("%w: ...")
// to attach the unresolved capability.
var ErrMethodNotFound = &Error{Code: CodeMethodNotFound, Message: "method not found"}

// IsMethodNotFound reports whether err is a method-not-found protocol error,
// possibly wrapped.
func IsMethodNotFound(err error) bool {
	var je *Error
	return errors.As(err, &je) && je.Code == CodeMethodNotFound
}

// AsError converts err into an *Error suitable for a JSON-RPC response,
// preserving an existing protocol error (even when wrapped) and demoting
// everything else to an internal error.
func AsError(err error) *Error {
	var je *Error
	if errors.As(err, &je) {
		// Wrapping may have added context; keep the full message.
		return &Error{Code: je.Code, Message: err.Error(), Data: je.Data}
	}
	return &Error{Code: CodeInternalError, Message: err.Error()}
}

// A Message is a single JSON-RPC 2.0 message: a request, a notification
// (no ID), or a response (result or error set).
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *ID             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Version is the JSON-RPC protocol version carried by every message.
const Version = "2.0"

// IsResponse reports whether the message is a response rather than a
// request or notification.
func (m *Message) IsResponse() bool {
	return m.Method == "" && (m.Result != nil || m.Error != nil)
}
