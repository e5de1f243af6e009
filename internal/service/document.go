package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Aasthak07/QuillStack-AI/internal/docgen"
	"github.com/Aasthak07/QuillStack-AI/internal/export"
	"github.com/Aasthak07/QuillStack-AI/internal/intake"
	"github.com/Aasthak07/QuillStack-AI/internal/model"
	"github.com/Aasthak07/QuillStack-AI/internal/repository"
	"github.com/Aasthak07/QuillStack-AI/internal/storage"
)

var (
	ErrIDRequired                 = errors.New("id is required")
	ErrNotFound                   = errors.New("document not found")
	ErrContentRequired            = errors.New("content is required")
	ErrOutputTooShort             = errors.New("generated documentation is too short or empty")
	ErrOriginalContentUnavailable = errors.New("original code not available for regeneration")
)

// GenerationMetrics summarizes a generated document for API responses.
type GenerationMetrics struct {
	WordCount         int    `json:"wordCount"`
	CodeLines         int    `json:"codeLines"`
	Language          string `json:"language"`
	EstimatedReadTime string `json:"estimatedReadTime"`
}

// GenerateResult is the outcome of a successful generation pipeline run.
type GenerateResult struct {
	Document  *model.Document
	ModelUsed string
	Attempts  int
	Truncated bool
	Metrics   GenerationMetrics
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the documentation pipeline use cases.
type DocumentService interface {
	// Generate runs the full pipeline for an uploaded source file: intake,
	// archival to object storage, prompt build, model generation with retry
	// and fallback, post-processing, and persistence.
	Generate(ctx context.Context, r io.Reader, filename string) (*GenerateResult, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Update replaces a document's content with a manual edit and bumps
	// its version.
	Update(ctx context.Context, id, content string) (*model.Document, error)

	// Regenerate re-runs generation from the stored original source,
	// optionally with the alternative prompt style, and bumps the version.
	Regenerate(ctx context.Context, id string, alternative bool) (*GenerateResult, error)

	// Delete removes a document and its archived source.
	Delete(ctx context.Context, id string) error

	// Export renders a document's content in the requested format.
	Export(ctx context.Context, id string, format export.Format) (*export.File, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	in    *intake.Intake
	store storage.Storage
	gen   docgen.TextGenerator
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(in *intake.Intake, store storage.Storage, gen docgen.TextGenerator, repo repository.DocumentRepository) DocumentService {
	return &documentService{in: in, store: store, gen: gen, repo: repo}
}

func (s *documentService) Generate(ctx context.Context, r io.Reader, filename string) (*GenerateResult, error) {
	src, err := s.in.Accept(r, filename)
	if err != nil {
		return nil, err
	}

	// Archive the original source before any model work so a stored
	// document always has a retrievable upload.
	ext := filepath.Ext(src.Filename)
	key := filepath.ToSlash(filepath.Join("sources", uuid.New().String()+ext))
	if _, err := s.store.Put(ctx, key, strings.NewReader(src.Content), storage.PutObjectOptions{
		Size:        int64(len(src.Content)),
		ContentType: "text/plain; charset=utf-8",
		Metadata: map[string]string{
			"original-filename": src.Filename,
		},
	}); err != nil {
		return nil, fmt.Errorf("archive source: %w", err)
	}

	prompt := docgen.BuildPrompt(docgen.StyleStandard, src.Filename, src.Content)
	res, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.cleanupObject(ctx, key)
		return nil, err
	}
	if len(strings.TrimSpace(res.Text)) < docgen.MinDocumentationChars {
		s.cleanupObject(ctx, key)
		return nil, ErrOutputTooShort
	}

	content := docgen.PostProcess(res.Text, src.Filename)
	now := time.Now().UTC()
	doc := &model.Document{
		ID:              uuid.New().String(),
		Filename:        src.Filename,
		Content:         content,
		OriginalContent: src.Content,
		Language:        docgen.DetectLanguage(src.Filename),
		StoragePath:     key,
		Version:         model.InitialVersion,
		WordCount:       len(strings.Fields(content)),
		CodeLines:       len(strings.Split(src.Content, "\n")),
		GeneratedAt:     now,
		LastModified:    now,
		CreatedAt:       now,
	}

	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: drop the archived source so storage does not leak.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	return &GenerateResult{
		Document:  stored,
		ModelUsed: res.ModelUsed,
		Attempts:  res.Attempts,
		Truncated: src.Truncated,
		Metrics:   buildMetrics(stored),
	}, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Update applies a manual content edit and bumps the trailing version segment.
func (s *documentService) Update(ctx context.Context, id, content string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated, err := s.repo.UpdateContent(ctx, id, content, model.NextVersion(doc.Version), time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Regenerate re-runs the model on the stored original source. The stored
// document is left untouched when generation fails.
func (s *documentService) Regenerate(ctx context.Context, id string, alternative bool) (*GenerateResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.OriginalContent == "" {
		return nil, ErrOriginalContentUnavailable
	}

	style := docgen.StyleStandard
	if alternative {
		style = docgen.StyleAlternative
	}
	prompt := docgen.BuildPrompt(style, doc.Filename, doc.OriginalContent)

	res, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(res.Text)) < docgen.MinDocumentationChars {
		return nil, ErrOutputTooShort
	}

	content := docgen.PostProcess(res.Text, doc.Filename)
	wordCount := len(strings.Fields(content))

	updated, err := s.repo.UpdateGenerated(ctx, id, content, model.NextVersion(doc.Version), time.Now().UTC(), wordCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &GenerateResult{
		Document:  updated,
		ModelUsed: res.ModelUsed,
		Attempts:  res.Attempts,
		Metrics:   buildMetrics(updated),
	}, nil
}

// Delete removes the archived source from storage, then deletes the record.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if doc.StoragePath != "" {
		if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

// Export renders a stored document into a downloadable file.
func (s *documentService) Export(ctx context.Context, id string, format export.Format) (*export.File, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return export.Render(format, doc.Filename, doc.Content)
}

func (s *documentService) cleanupObject(ctx context.Context, key string) {
	// Generation failed; the archived source has no document row to point
	// at it, so best effort remove it.
	_ = s.store.Delete(ctx, key)
}

func buildMetrics(doc *model.Document) GenerationMetrics {
	return GenerationMetrics{
		WordCount:         doc.WordCount,
		CodeLines:         doc.CodeLines,
		Language:          doc.Language,
		EstimatedReadTime: fmt.Sprintf("%d minutes", int(math.Ceil(float64(doc.WordCount)/200))),
	}
}
