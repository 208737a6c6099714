package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/ports/driving"
)

var _ driving.AssistantService = (*mockAssistant)(nil)

// mockAssistant is a canned implementation of driving.AssistantService.
type mockAssistant struct {
	answer        domain.Answer
	askErr        error
	askedQuestion string
	askedModel    string

	receipt      domain.UploadReceipt
	uploadErr    error
	uploadedName string

	health domain.Health

	models    []domain.ModelInfo
	modelsErr error

	documents []domain.DocumentInfo
	docsErr   error

	clearErr error
	cleared  bool
}

func (m *mockAssistant) Ask(_ context.Context, question, model string) (domain.Answer, error) {
	m.askedQuestion = question
	m.askedModel = model
	return m.answer, m.askErr
}

func (m *mockAssistant) Upload(_ context.Context, filename string, _ []byte) (domain.UploadReceipt, error) {
	m.uploadedName = filename
	return m.receipt, m.uploadErr
}

func (m *mockAssistant) Clear(context.Context) error {
	m.cleared = true
	return m.clearErr
}

func (m *mockAssistant) Health(context.Context) domain.Health {
	return m.health
}

func (m *mockAssistant) Models(context.Context) ([]domain.ModelInfo, error) {
	return m.models, m.modelsErr
}

func (m *mockAssistant) Documents(context.Context) ([]domain.DocumentInfo, error) {
	return m.documents, m.docsErr
}

// executeCommand runs the root command against a mock assistant and
// captures its combined output.
func executeCommand(t *testing.T, assistant driving.AssistantService, args ...string) (string, error) {
	t.Helper()

	oldService := assistantService
	assistantService = assistant
	t.Cleanup(func() { assistantService = oldService })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}
