// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"fmt"
	"strings"
)

// A ToolDeclarer reports the tool names a handler answers itself.
type ToolDeclarer interface {
	DeclaredTools() []string
}

// A ToolRequirer reports the tool names a handler invokes downstream while
// computing its own tools.
type ToolRequirer interface {
	RequiredTools() []string
}

// Verify checks, at composition time, that every handler's required tools
// are declared by a handler positioned later in the sequence. Without it a
// misordered pipeline still assembles and only fails at call time with a
// method-not-found error.
//
// Handlers that implement neither interface are ignored.
func Verify(handlers []Handler) error {
	available := make(map[string]bool)
	var missing []string
	for i := len(handlers) - 1; i >= 0; i-- {
		if r, ok := handlers[i].(ToolRequirer); ok {
			for _, name := range r.RequiredTools() {
				if !available[name] {
					missing = append(missing, fmt.Sprintf("handler %d requires tool %q, declared by no later handler", i, name))
				}
			}
		}
		if d, ok := handlers[i].(ToolDeclarer); ok {
			for _, name := range d.DeclaredTools() {
				available[name] = true
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("pipeline dependency check failed:\n%s", strings.Join(missing, "\n"))
	}
	return nil
}
