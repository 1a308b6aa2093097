// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"encoding/json"
	"fmt"
)

// A Content is one block of a tool result: a [TextContent] or a
// [StreamContent].
type Content interface {
	MarshalJSON() ([]byte, error)
	fromWire(*wireContent)
}

// TextContent is inline textual content. Numeric tool results are carried as
// the plain string form of the number in a single text block.
type TextContent struct {
	Text        string
	Meta        Meta
	Annotations *Annotations
}

func (c *TextContent) MarshalJSON() ([]byte, error) {
	// Custom wire format so the required "text" field is present even when empty.
	wire := struct {
		Type        string       `json:"type"`
		Text        string       `json:"text"`
		Meta        Meta         `json:"_meta,omitempty"`
		Annotations *Annotations `json:"annotations,omitempty"`
	}{
		Type:        "text",
		Text:        c.Text,
		Meta:        c.Meta,
		Annotations: c.Annotations,
	}
	return json.Marshal(wire)
}

func (c *TextContent) fromWire(wire *wireContent) {
	c.Text = wire.Text
	c.Meta = wire.Meta
	c.Annotations = wire.Annotations
}

// StreamContent refers to content delivered out of band on the client
// stream. It carries no inline payload and therefore never satisfies the
// numeric-result contract used by synthetic tools.
type StreamContent struct {
	// StreamID identifies the out-of-band stream the payload was written to.
	StreamID string
	MIMEType string
	Meta     Meta
}

func (c *StreamContent) MarshalJSON() ([]byte, error) {
	wire := struct {
		Type     string `json:"type"`
		StreamID string `json:"streamId"`
		MIMEType string `json:"mimeType,omitempty"`
		Meta     Meta   `json:"_meta,omitempty"`
	}{
		Type:     "stream",
		StreamID: c.StreamID,
		MIMEType: c.MIMEType,
		Meta:     c.Meta,
	}
	return json.Marshal(wire)
}

func (c *StreamContent) fromWire(wire *wireContent) {
	c.StreamID = wire.StreamID
	c.MIMEType = wire.MIMEType
	c.Meta = wire.Meta
}

// Optional annotations for content blocks.
type Annotations struct {
	// Audience describes who the intended consumer of the block is.
	Audience []Role `json:"audience,omitempty"`
	// LastModified is an ISO 8601 timestamp of the last modification.
	LastModified string `json:"lastModified,omitempty"`
	// Priority indicates how important the block is: 1 means effectively
	// required, 0 means entirely optional.
	Priority float64 `json:"priority,omitempty"`
}

// Role is the sender or recipient of a message: "user" or "assistant".
type Role string

// wireContent is the wire format shared by all content blocks. The Type
// field distinguishes them.
type wireContent struct {
	Type        string       `json:"type"`
	Text        string       `json:"text,omitempty"`     // TextContent
	StreamID    string       `json:"streamId,omitempty"` // StreamContent
	MIMEType    string       `json:"mimeType,omitempty"` // StreamContent
	Meta        Meta         `json:"_meta,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

func contentsFromWire(wires []*wireContent) ([]Content, error) {
	blocks := make([]Content, 0, len(wires))
	for _, wire := range wires {
		block, err := contentFromWire(wire)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func contentFromWire(wire *wireContent) (Content, error) {
	if wire == nil {
		return nil, fmt.Errorf("nil content")
	}
	switch wire.Type {
	case "text":
		v := new(TextContent)
		v.fromWire(wire)
		return v, nil
	case "stream":
		v := new(StreamContent)
		v.fromWire(wire)
		return v, nil
	}
	return nil, fmt.Errorf("unrecognized content type %q", wire.Type)
}
