// Package mcp provides an MCP (Model Context Protocol) server adapter for Legalis.
// It enables AI assistants like Claude to answer questions grounded in the
// indexed legal corpus.
package mcp

import "errors"

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("mcp: ask service is required")

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
