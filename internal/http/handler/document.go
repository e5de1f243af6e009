package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Aasthak07/QuillStack-AI/internal/docgen"
	"github.com/Aasthak07/QuillStack-AI/internal/export"
	"github.com/Aasthak07/QuillStack-AI/internal/intake"
	"github.com/Aasthak07/QuillStack-AI/internal/service"
)

// GenerateDocumentation handles the upload-and-generate endpoint
// (multipart/form-data, field name: file). devMode controls whether raw
// model errors are echoed in the details field.
func GenerateDocumentation(svc service.DocumentService, devMode bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "NO_FILE_UPLOADED", "No file uploaded")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.Generate(c.UserContext(), f, fh.Filename)
		if err != nil {
			return writeGenerationError(c, err, devMode)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":   true,
			"message":   "Documentation created successfully!",
			"modelUsed": res.ModelUsed,
			"attempts":  res.Attempts,
			"truncated": res.Truncated,
			"data":      res.Document,
			"metrics":   res.Metrics,
		})
	}
}

// ListDocuments returns documents with limit/offset paging.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetDocument returns a single document by ID.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

type updateDocumentRequest struct {
	Content string `json:"content"`
}

// UpdateDocument applies a manual content edit.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req updateDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := svc.Update(c.UserContext(), id, req.Content)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrContentRequired):
				return writeError(c, fiber.StatusBadRequest, "CONTENT_REQUIRED", "content is required")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

type regenerateRequest struct {
	UseAlternativePrompt bool `json:"useAlternativePrompt"`
}

// RegenerateDocument re-runs generation from the stored original source.
func RegenerateDocument(svc service.DocumentService, devMode bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req regenerateRequest
		// Body is optional; default is the standard prompt.
		_ = c.BodyParser(&req)

		res, err := svc.Regenerate(c.UserContext(), id, req.UseAlternativePrompt)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			case errors.Is(err, service.ErrOriginalContentUnavailable):
				return writeError(c, fiber.StatusBadRequest, "ORIGINAL_CONTENT_UNAVAILABLE", "Original code not available for regeneration")
			}
			return writeGenerationError(c, err, devMode)
		}

		return c.JSON(fiber.Map{
			"success":   true,
			"message":   "Documentation regenerated successfully!",
			"modelUsed": res.ModelUsed,
			"attempts":  res.Attempts,
			"data":      res.Document,
			"metrics":   res.Metrics,
		})
	}
}

// DeleteDocument removes a document and its archived source.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type exportRequest struct {
	Format string `json:"format"`
}

// ExportDocument renders a document in the requested format and sends it as
// an attachment. The format comes from the path parameter when present,
// otherwise from the POST body; plain GET exports markdown.
func ExportDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		formatStr := c.Params("format")
		if formatStr == "" {
			formatStr = "markdown"
			if c.Method() == fiber.MethodPost {
				var req exportRequest
				if err := c.BodyParser(&req); err != nil {
					return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
				}
				formatStr = req.Format
			}
		}

		format, err := export.ParseFormat(formatStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", "Unsupported format")
		}

		f, err := svc.Export(c.UserContext(), id, format)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentType, f.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+f.Name)
		return c.Send(f.Data)
	}
}

// writeGenerationError maps pipeline failures onto error responses. Intake
// problems are client errors; model and persistence failures are 500s.
func writeGenerationError(c *fiber.Ctx, err error, devMode bool) error {
	details := ""
	if devMode {
		details = err.Error()
	}

	var genErr *docgen.GenerationError
	switch {
	case errors.Is(err, intake.ErrNoFile):
		return writeError(c, fiber.StatusBadRequest, "NO_FILE_UPLOADED", "No file uploaded")
	case errors.Is(err, intake.ErrEmptyFile):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_FILE", "File appears to be empty")
	case errors.Is(err, intake.ErrUnsupportedType):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "Unsupported file type")
	case errors.As(err, &genErr):
		return writeErrorDetails(c, fiber.StatusInternalServerError, "GENERATION_FAILED",
			genErr.Reason().UserMessage(), details)
	case errors.Is(err, service.ErrOutputTooShort):
		return writeErrorDetails(c, fiber.StatusInternalServerError, "OUTPUT_TOO_SHORT",
			"Generated documentation was insufficient. Please try with a different file.", details)
	default:
		return writeErrorDetails(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"internal server error", details)
	}
}
