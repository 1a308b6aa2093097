// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import "github.com/google/jsonschema-go/jsonschema"

// A Tool describes one named, schema-described operation offered by a
// handler in the pipeline. Tools are constructed once, when their handler is
// built, and are immutable afterwards.
type Tool struct {
	// Name uniquely identifies the tool within its handler's own
	// declarations. Uniqueness across the whole pipeline is a documented
	// contract, not an enforced invariant: the tools/list merge does not
	// deduplicate names.
	Name string `json:"name"`
	// Title is an optional human-readable display name.
	Title string `json:"title,omitempty"`
	// Description explains what the tool does, for human or model consumption.
	Description string `json:"description,omitempty"`
	// InputSchema describes the accepted argument shape.
	InputSchema *jsonschema.Schema `json:"inputSchema"`
	// OutputSchema optionally describes the structured result shape.
	OutputSchema *jsonschema.Schema `json:"outputSchema,omitempty"`
	// Annotations carry optional display hints. They are purely descriptive
	// and never consumed by dispatch logic.
	Annotations *ToolAnnotations `json:"annotations,omitempty"`
	Meta        Meta             `json:"_meta,omitempty"`
}

// ToolAnnotations are optional hints about a tool's behavior.
type ToolAnnotations struct {
	Title           string `json:"title,omitempty"`
	ReadOnlyHint    bool   `json:"readOnlyHint,omitempty"`
	DestructiveHint *bool  `json:"destructiveHint,omitempty"`
	IdempotentHint  bool   `json:"idempotentHint,omitempty"`
	OpenWorldHint   *bool  `json:"openWorldHint,omitempty"`
}
