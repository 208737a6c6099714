package mcp

import (
	"context"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driving"
)

var _ driving.AssistantService = (*mockAssistantService)(nil)

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer        domain.Answer
	askErr        error
	askedQuestion string
	askedModel    string

	receipt      domain.UploadReceipt
	uploadErr    error
	uploadedName string
	uploadedData []byte

	documents []domain.DocumentInfo
	docsErr   error

	health domain.Health

	models    []domain.ModelInfo
	modelsErr error

	clearErr error
}

func (m *mockAssistantService) Ask(_ context.Context, question, model string) (domain.Answer, error) {
	m.askedQuestion = question
	m.askedModel = model
	return m.answer, m.askErr
}

func (m *mockAssistantService) Upload(_ context.Context, filename string, data []byte) (domain.UploadReceipt, error) {
	m.uploadedName = filename
	m.uploadedData = data
	return m.receipt, m.uploadErr
}

func (m *mockAssistantService) Documents(context.Context) ([]domain.DocumentInfo, error) {
	return m.documents, m.docsErr
}

func (m *mockAssistantService) Health(context.Context) domain.Health {
	return m.health
}

func (m *mockAssistantService) Models(context.Context) ([]domain.ModelInfo, error) {
	return m.models, m.modelsErr
}

func (m *mockAssistantService) Clear(context.Context) error {
	return m.clearErr
}
