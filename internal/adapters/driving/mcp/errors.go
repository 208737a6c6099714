// Package mcp provides an MCP (Model Context Protocol) server adapter
// for the study assistant. It lets AI coding assistants ask questions
// against the uploaded documents and manage them.
package mcp

import "errors"

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("mcp: assistant service is required")
