// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"io"
)

// The per-request ambient state (client stream, session identity) rides on
// the context.Context shared by reference across the whole pipeline. No
// handler owns it exclusively; treat it as read/forward-only.

type clientStreamKey struct{}

// WithClientStream returns a context carrying the client's outbound stream.
// The host sets it once per connection; handlers may read it, never replace
// it mid-request.
func WithClientStream(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, clientStreamKey{}, w)
}

// ClientStreamFromContext returns the client stream set by the host, if any.
func ClientStreamFromContext(ctx context.Context) (io.Writer, bool) {
	w, ok := ctx.Value(clientStreamKey{}).(io.Writer)
	return w, ok
}
