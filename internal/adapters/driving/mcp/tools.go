package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask_question tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the uploaded documents"`
	Model    string `json:"model,omitempty" jsonschema:"optional Ollama model override, e.g. tinyllama"`
}

// AskOutput is the output schema for the ask_question tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput cites one retrieved chunk.
type SourceOutput struct {
	Source string `json:"source"`
	Chunk  int    `json:"chunk"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput describes one recorded upload.
type DocumentOutput struct {
	Filename   string    `json:"filename"`
	Chunks     int       `json:"chunks"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadInput is the input schema for the upload_document tool.
type UploadInput struct {
	Path string `json:"path" jsonschema:"filesystem path of the PDF to ingest"`
}

// UploadOutput is the output schema for the upload_document tool.
type UploadOutput struct {
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using the uploaded study documents",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents available for answering questions",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_document",
		Description: "Ingest a PDF from the local filesystem",
	}, s.handleUpload)
}

// handleAsk handles the ask_question tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Ask(ctx, input.Question, input.Model)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Sources: make([]SourceOutput, len(answer.Sources)),
	}
	for i, src := range answer.Sources {
		output.Sources[i] = SourceOutput{Source: src.Source, Chunk: src.Chunk}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Assistant.Documents(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i, doc := range docs {
		output.Documents[i] = DocumentOutput{
			Filename:   doc.Filename,
			Chunks:     doc.Chunks,
			UploadedAt: doc.UploadedAt,
		}
	}

	return nil, output, nil
}

// handleUpload handles the upload_document tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, UploadOutput{}, fmt.Errorf("reading %s: %w", input.Path, err)
	}

	receipt, err := s.ports.Assistant.Upload(ctx, filepath.Base(input.Path), data)
	if err != nil {
		return nil, UploadOutput{}, err
	}

	return nil, UploadOutput{Filename: receipt.Filename, Chunks: receipt.Chunks}, nil
}
