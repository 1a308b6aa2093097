// Copyright 2025 The MCP Chain Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package host runs a handler pipeline behind a newline-delimited JSON-RPC
// stream, typically stdin/stdout. The host owns the session lifecycle
// (initialize, ping) and translates between wire messages and the typed
// requests the pipeline dispatches on.
package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mcpchain/mcpchain/chain"
	internaljson "github.com/mcpchain/mcpchain/internal/json"
	"github.com/mcpchain/mcpchain/jsonrpc"
	"github.com/mcpchain/mcpchain/mcp"
)

// protocolVersion is the MCP protocol revision the host negotiates.
const protocolVersion = "2025-06-18"

// maxLineBytes bounds a single wire message. Tool results carrying large
// payloads fit comfortably; anything beyond this is a protocol violation.
const maxLineBytes = 8 << 20

// Options configure a Server.
type Options struct {
	// Name and Version identify the server in the initialize response.
	Name    string
	Version string
	// Logger receives session and per-message events. Nil discards them.
	Logger *slog.Logger
}

// A Server drives one pipeline over one connection.
type Server struct {
	head    chain.Downstream
	name    string
	version string
	logger  *slog.Logger

	mu sync.Mutex // guards writes to the connection
	w  io.Writer
}

// NewServer returns a server dispatching into head.
func NewServer(head chain.Downstream, opts Options) *Server {
	if opts.Name == "" {
		opts.Name = "mcpchain"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		head:    head,
		name:    opts.Name,
		version: opts.Version,
		logger:  opts.Logger,
	}
}

// Run serves newline-delimited JSON-RPC messages from r, writing responses
// to w, until r is exhausted, a read fails, or ctx is canceled. Messages the
// peer sends concurrently are processed strictly in order.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	s.mu.Lock()
	s.w = w
	s.mu.Unlock()

	ctx = chain.WithClientStream(ctx, &lockedWriter{s: s})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	s.logger.Info("session started", "server", s.name, "version", s.version)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		s.handleLine(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading connection: %w", err)
	}
	s.logger.Info("session ended")
	return nil
}

func (s *Server) handleLine(ctx context.Context, line []byte) {
	var msg jsonrpc.Message
	if err := internaljson.Unmarshal(line, &msg); err != nil {
		s.writeError(nil, &jsonrpc.Error{Code: jsonrpc.CodeParseError, Message: fmt.Sprintf("parse error: %v", err)})
		return
	}
	if msg.JSONRPC != jsonrpc.Version {
		s.writeError(msg.ID, &jsonrpc.Error{Code: jsonrpc.CodeInvalidRequest, Message: "unsupported jsonrpc version"})
		return
	}

	switch {
	case msg.IsResponse():
		s.handleResponse(ctx, &msg)
	case msg.ID == nil:
		s.handleNotification(ctx, &msg)
	default:
		s.handleRequest(ctx, &msg)
	}
}

func (s *Server) handleRequest(ctx context.Context, msg *jsonrpc.Message) {
	id := *msg.ID
	switch msg.Method {
	case "initialize":
		s.writeResult(id, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    s.name,
				"version": s.version,
			},
		})
		return
	case "ping":
		s.writeResult(id, map[string]any{})
		return
	}

	req, err := requestFromWire(msg)
	if err != nil {
		s.writeError(msg.ID, &jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: err.Error()})
		return
	}

	res, err := s.head.HandleRequest(ctx, id, req)
	if err != nil {
		s.logger.Warn("request failed", "method", msg.Method, "id", id.String(), "err", err)
		s.writeError(msg.ID, jsonrpc.AsError(err))
		return
	}
	s.writeResult(id, res)
}

func (s *Server) handleNotification(ctx context.Context, msg *jsonrpc.Message) {
	s.head.HandleNotification(ctx, &mcp.Notification{Method: msg.Method, Params: msg.Params})
}

// handleResponse forwards a peer response for a server-initiated request.
// The pipeline sees it as an opaque result; correlation is the recipient's
// concern.
func (s *Server) handleResponse(ctx context.Context, msg *jsonrpc.Message) {
	var id jsonrpc.ID
	if msg.ID != nil {
		id = *msg.ID
	}
	var res mcp.Result
	var err error
	if msg.Error != nil {
		err = msg.Error
	} else {
		res = &mcp.OpaqueResult{Raw: msg.Result}
	}
	s.head.HandleResponse(ctx, id, res, err)
}

func requestFromWire(msg *jsonrpc.Message) (mcp.Request, error) {
	switch msg.Method {
	case mcp.MethodListTools:
		params := new(mcp.ListToolsParams)
		if len(msg.Params) > 0 {
			if err := internaljson.Unmarshal(msg.Params, params); err != nil {
				return nil, fmt.Errorf("invalid tools/list params: %v", err)
			}
		}
		return &mcp.ListToolsRequest{Params: params}, nil
	case mcp.MethodCallTool:
		params := new(mcp.CallToolParamsRaw)
		if len(msg.Params) == 0 {
			return nil, errors.New("missing tools/call params")
		}
		if err := internaljson.Unmarshal(msg.Params, params); err != nil {
			return nil, fmt.Errorf("invalid tools/call params: %v", err)
		}
		if params.Name == "" {
			return nil, errors.New("missing tool name")
		}
		return &mcp.CallToolRequest{Params: params}, nil
	default:
		return &mcp.OpaqueRequest{RequestMethod: msg.Method, Params: msg.Params}, nil
	}
}

func (s *Server) writeResult(id jsonrpc.ID, result any) {
	encoded, err := internaljson.Marshal(result)
	if err != nil {
		s.writeError(&id, &jsonrpc.Error{Code: jsonrpc.CodeInternalError, Message: fmt.Sprintf("encoding result: %v", err)})
		return
	}
	s.writeMessage(&jsonrpc.Message{JSONRPC: jsonrpc.Version, ID: &id, Result: encoded})
}

func (s *Server) writeError(id *jsonrpc.ID, jerr *jsonrpc.Error) {
	s.writeMessage(&jsonrpc.Message{JSONRPC: jsonrpc.Version, ID: id, Error: jerr})
}

func (s *Server) writeMessage(msg *jsonrpc.Message) {
	encoded, err := internaljson.Marshal(msg)
	if err != nil {
		s.logger.Error("encoding message", "err", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(append(encoded, '\n')); err != nil {
		s.logger.Error("writing message", "err", err)
	}
}

// lockedWriter lets handlers emit server-initiated traffic without
// interleaving bytes with in-flight responses.
type lockedWriter struct {
	s *Server
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.s.mu.Lock()
	defer lw.s.mu.Unlock()
	return lw.s.w.Write(p)
}
