// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package json provides internal JSON utilities.
//
// Marshalling is routed through segmentio/encoding, which is wire-compatible
// with encoding/json.
package json

import segjson "github.com/segmentio/encoding/json"

func Marshal(v any) ([]byte, error) {
	return segjson.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return segjson.Unmarshal(data, v)
}
