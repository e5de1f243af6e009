package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Aasthak07/QuillStack-AI/internal/docgen"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (*docgen.Result, error) {
	args := m.Called(ctx, prompt)
	if res, ok := args.Get(0).(*docgen.Result); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}
