// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package jsonrpc

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`"abc"`, StringID("abc")},
		{`42`, Int64ID(42)},
		{`null`, ID{}},
	}
	for _, tt := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Errorf("unmarshal %s: %v", tt.in, err)
			continue
		}
		if id != tt.want {
			t.Errorf("unmarshal %s = %v, want %v", tt.in, id, tt.want)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`1.5`), &id); err == nil {
		t.Error("fractional ID accepted")
	}
}

func TestIsMethodNotFoundSeesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("%w: unknown tool %q", ErrMethodNotFound, "mean")
	if !IsMethodNotFound(err) {
		t.Error("wrapped method-not-found not detected")
	}
	if IsMethodNotFound(fmt.Errorf("boom")) {
		t.Error("plain error detected as method-not-found")
	}
}

func TestAsError(t *testing.T) {
	wrapped := fmt.Errorf("%w: unknown tool %q", ErrMethodNotFound, "mean")
	je := AsError(wrapped)
	if je.Code != CodeMethodNotFound {
		t.Errorf("code = %d, want %d", je.Code, CodeMethodNotFound)
	}
	if je.Message != wrapped.Error() {
		t.Errorf("message = %q, want the full wrapped message", je.Message)
	}

	je = AsError(fmt.Errorf("boom"))
	if je.Code != CodeInternalError {
		t.Errorf("code for plain error = %d, want %d", je.Code, CodeInternalError)
	}
}

func TestMessageIsResponse(t *testing.T) {
	id := Int64ID(1)
	res := &Message{JSONRPC: Version, ID: &id, Result: json.RawMessage(`{}`)}
	if !res.IsResponse() {
		t.Error("result message not recognized as response")
	}
	req := &Message{JSONRPC: Version, ID: &id, Method: "ping"}
	if req.IsResponse() {
		t.Error("request recognized as response")
	}
}
