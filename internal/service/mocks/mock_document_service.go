package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Aasthak07/QuillStack-AI/internal/export"
	"github.com/Aasthak07/QuillStack-AI/internal/model"
	"github.com/Aasthak07/QuillStack-AI/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Generate(ctx context.Context, r io.Reader, filename string) (*service.GenerateResult, error) {
	args := m.Called(ctx, r, filename)
	if res, ok := args.Get(0).(*service.GenerateResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, limit, offset int) (*service.DocumentListResult, error) {
	args := m.Called(ctx, limit, offset)
	if res, ok := args.Get(0).(*service.DocumentListResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if doc, ok := args.Get(0).(*model.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, id, content string) (*model.Document, error) {
	args := m.Called(ctx, id, content)
	if doc, ok := args.Get(0).(*model.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) Regenerate(ctx context.Context, id string, alternative bool) (*service.GenerateResult, error) {
	args := m.Called(ctx, id, alternative)
	if res, ok := args.Get(0).(*service.GenerateResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentService) Export(ctx context.Context, id string, format export.Format) (*export.File, error) {
	args := m.Called(ctx, id, format)
	if f, ok := args.Get(0).(*export.File); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}
