package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Aasthak07/QuillStack-AI/internal/docgen"
	"github.com/Aasthak07/QuillStack-AI/internal/export"
	"github.com/Aasthak07/QuillStack-AI/internal/intake"
	"github.com/Aasthak07/QuillStack-AI/internal/model"
	"github.com/Aasthak07/QuillStack-AI/internal/service"
	serviceMocks "github.com/Aasthak07/QuillStack-AI/internal/service/mocks"
)

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	part.Write([]byte(content))
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateDocumentation(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/docs/upload", GenerateDocumentation(mockSvc, true))

	t.Run("success", func(t *testing.T) {
		body, contentType := multipartUpload(t, "hello.py", `print("hi")`)

		res := &service.GenerateResult{
			Document: &model.Document{
				ID:       uuid.New().String(),
				Filename: "hello.py",
				Language: "Python",
				Version:  "1.0",
			},
			ModelUsed: "gemini-2.0-flash",
			Attempts:  1,
			Metrics: service.GenerationMetrics{
				WordCount:         55,
				CodeLines:         1,
				Language:          "Python",
				EstimatedReadTime: "1 minutes",
			},
		}
		mockSvc.On("Generate", mock.Anything, mock.Anything, "hello.py").Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, "Documentation created successfully!", result["message"])
		assert.Equal(t, "gemini-2.0-flash", result["modelUsed"])
		metrics := result["metrics"].(map[string]any)
		assert.Equal(t, "Python", metrics["language"])
		assert.Equal(t, "1 minutes", metrics["estimatedReadTime"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NO_FILE_UPLOADED", res.Error.Code)
	})

	t.Run("unsupported type", func(t *testing.T) {
		body, contentType := multipartUpload(t, "image.png", "binary")
		mockSvc.On("Generate", mock.Anything, mock.Anything, "image.png").
			Return(nil, intake.ErrUnsupportedType).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNSUPPORTED_FILE_TYPE", res.Error.Code)
	})

	t.Run("empty file", func(t *testing.T) {
		body, contentType := multipartUpload(t, "hello.py", "")
		mockSvc.On("Generate", mock.Anything, mock.Anything, "hello.py").
			Return(nil, intake.ErrEmptyFile).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "EMPTY_FILE", res.Error.Code)
	})

	t.Run("generation failure reports reason and dev details", func(t *testing.T) {
		body, contentType := multipartUpload(t, "hello.py", `print("hi")`)
		genErr := &docgen.GenerationError{
			PrimaryModel:  "gemini-2.0-flash",
			FallbackModel: "gemini-2.5-flash",
			Primary:       &docgen.ModelError{Model: "gemini-2.0-flash", Reason: docgen.ReasonTransientNetwork, Err: errors.New("timeout")},
			Fallback:      &docgen.ModelError{Model: "gemini-2.5-flash", Reason: docgen.ReasonQuotaExceeded, Err: errors.New("quota")},
		}
		mockSvc.On("Generate", mock.Anything, mock.Anything, "hello.py").Return(nil, genErr).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "GENERATION_FAILED", res.Error.Code)
		assert.Equal(t, "API quota exceeded. Please try again later.", res.Error.Message)
		assert.Contains(t, res.Error.Details, "Primary:")
		assert.Contains(t, res.Error.Details, "Fallback:")
	})

	t.Run("output too short", func(t *testing.T) {
		body, contentType := multipartUpload(t, "hello.py", `print("hi")`)
		mockSvc.On("Generate", mock.Anything, mock.Anything, "hello.py").
			Return(nil, service.ErrOutputTooShort).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "OUTPUT_TOO_SHORT", res.Error.Code)
	})
}

func TestGenerateDocumentation_NoDetailsInProduction(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/docs/upload", GenerateDocumentation(mockSvc, false))

	body, contentType := multipartUpload(t, "hello.py", `print("hi")`)
	genErr := &docgen.GenerationError{
		PrimaryModel:  "gemini-2.0-flash",
		FallbackModel: "gemini-2.5-flash",
		Primary:       errors.New("timeout"),
		Fallback:      errors.New("quota"),
	}
	mockSvc.On("Generate", mock.Anything, mock.Anything, "hello.py").Return(nil, genErr).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, _ := app.Test(req)

	var res errorPayload
	json.NewDecoder(resp.Body).Decode(&res)
	assert.Empty(t, res.Error.Details)
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/docs", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.DocumentListResult{
			Items: []model.Document{{ID: uuid.New().String(), Filename: "hello.py"}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs?limit=10&offset=0", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/docs?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_LIMIT", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/docs/:id", GetDocument(mockSvc))

	docID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, docID).
			Return(&model.Document{ID: docID, Filename: "hello.py"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/"+docID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, docID, result.ID)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/docs/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_ID", body.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		missing := uuid.New().String()
		mockSvc.On("Get", mock.Anything, missing).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/"+missing, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Put("/api/docs/:id", UpdateDocument(mockSvc))

	docID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, docID, "edited").
			Return(&model.Document{ID: docID, Content: "edited", Version: "1.1"}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/docs/"+docID,
			strings.NewReader(`{"content":"edited"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "1.1", result.Version)
	})

	t.Run("empty content", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, docID, "").
			Return(nil, service.ErrContentRequired).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/docs/"+docID,
			strings.NewReader(`{"content":""}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "CONTENT_REQUIRED", body.Error.Code)
	})
}

func TestRegenerateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/docs/:id/regenerate", RegenerateDocument(mockSvc, false))

	docID := uuid.New().String()

	t.Run("alternative prompt flag is forwarded", func(t *testing.T) {
		res := &service.GenerateResult{
			Document:  &model.Document{ID: docID, Version: "1.1"},
			ModelUsed: "gemini-2.0-flash",
			Attempts:  1,
		}
		mockSvc.On("Regenerate", mock.Anything, docID, true).Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs/"+docID+"/regenerate",
			strings.NewReader(`{"useAlternativePrompt":true}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Documentation regenerated successfully!", result["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("no body defaults to standard prompt", func(t *testing.T) {
		res := &service.GenerateResult{
			Document: &model.Document{ID: docID, Version: "1.1"},
		}
		mockSvc.On("Regenerate", mock.Anything, docID, false).Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs/"+docID+"/regenerate", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("original content unavailable", func(t *testing.T) {
		mockSvc.On("Regenerate", mock.Anything, docID, false).
			Return(nil, service.ErrOriginalContentUnavailable).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs/"+docID+"/regenerate", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "ORIGINAL_CONTENT_UNAVAILABLE", body.Error.Code)
	})
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/api/docs/:id", DeleteDocument(mockSvc))

	docID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, docID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/docs/"+docID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		missing := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, missing).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/docs/"+missing, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestExportDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/docs/:id/export", ExportDocument(mockSvc))
	app.Get("/api/docs/:id/export/:format", ExportDocument(mockSvc))
	app.Post("/api/docs/:id/export", ExportDocument(mockSvc))

	docID := uuid.New().String()

	t.Run("GET always exports markdown", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, docID, export.FormatMarkdown).
			Return(&export.File{Name: "hello.py.md", ContentType: "text/markdown", Data: []byte("# doc")}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/"+docID+"/export", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/markdown", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "hello.py.md")
	})

	t.Run("POST honors the requested format", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, docID, export.FormatPDF).
			Return(&export.File{Name: "hello.py.pdf", ContentType: "application/pdf", Data: []byte("%PDF-")}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs/"+docID+"/export",
			strings.NewReader(`{"format":"pdf"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	})

	t.Run("GET with a format path parameter", func(t *testing.T) {
		mockSvc.On("Export", mock.Anything, docID, export.FormatHTML).
			Return(&export.File{Name: "hello.py.html", ContentType: "text/html", Data: []byte("<h1>doc</h1>")}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/"+docID+"/export/html", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html", resp.Header.Get("Content-Type"))
	})

	t.Run("unsupported format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/docs/"+docID+"/export",
			strings.NewReader(`{"format":"rtf"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "UNSUPPORTED_FORMAT", body.Error.Code)
	})
}

func TestSignUp(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/api/users/signup", SignUp(mockSvc))

	t.Run("success", func(t *testing.T) {
		res := &service.AuthResult{
			Token: "signed-token",
			User:  &model.User{ID: uuid.New().String(), Name: "Jane", Email: "jane@example.com"},
		}
		mockSvc.On("SignUp", mock.Anything, "Jane", "jane@example.com", "s3cret").Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/users/signup",
			strings.NewReader(`{"name":"Jane","email":"jane@example.com","password":"s3cret"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result service.AuthResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "signed-token", result.Token)
	})

	t.Run("email taken", func(t *testing.T) {
		mockSvc.On("SignUp", mock.Anything, "Jane", "jane@example.com", "s3cret").
			Return(nil, service.ErrEmailTaken).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/users/signup",
			strings.NewReader(`{"name":"Jane","email":"jane@example.com","password":"s3cret"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "EMAIL_EXISTS", body.Error.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		mockSvc.On("SignUp", mock.Anything, "", "", "").
			Return(nil, service.ErrMissingCredentials).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/users/signup", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/api/users/login", Login(mockSvc))

	t.Run("success", func(t *testing.T) {
		res := &service.AuthResult{Token: "signed-token", User: &model.User{ID: uuid.New().String()}}
		mockSvc.On("Login", mock.Anything, "jane@example.com", "s3cret").Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/users/login",
			strings.NewReader(`{"email":"jane@example.com","password":"s3cret"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "jane@example.com", "wrong").
			Return(nil, service.ErrInvalidCredentials).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/users/login",
			strings.NewReader(`{"email":"jane@example.com","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
	})
}

func TestAdminLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/api/users/admin-login", AdminLogin(mockSvc))

	t.Run("non-admin rejected", func(t *testing.T) {
		mockSvc.On("AdminLogin", mock.Anything, "jane@example.com", "s3cret").
			Return(nil, service.ErrAdminRequired).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/users/admin-login",
			strings.NewReader(`{"email":"jane@example.com","password":"s3cret"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "ADMIN_REQUIRED", body.Error.Code)
	})
}

func TestAdminStats(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Get("/api/admin/stats", AdminStats(mockSvc))

	mockSvc.On("Stats", mock.Anything).
		Return(&service.AdminStats{TotalUsers: 10, AdminUsers: 2, RegularUsers: 8}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var stats service.AdminStats
	json.NewDecoder(resp.Body).Decode(&stats)
	assert.Equal(t, 10, stats.TotalUsers)
	assert.Equal(t, 8, stats.RegularUsers)
}

func TestAdminUpdateUser(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Put("/api/admin/users/:id", AdminUpdateUser(mockSvc))

	userID := uuid.New().String()

	t.Run("promote to admin", func(t *testing.T) {
		mockSvc.On("UpdateUser", mock.Anything, userID, mock.MatchedBy(func(u service.UserUpdate) bool {
			return u.IsAdmin != nil && *u.IsAdmin && u.Name == nil && u.Email == nil
		})).Return(&model.User{ID: userID, IsAdmin: true}, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/admin/users/"+userID,
			strings.NewReader(`{"isAdmin":true}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		missing := uuid.New().String()
		mockSvc.On("UpdateUser", mock.Anything, missing, mock.Anything).
			Return(nil, service.ErrUserNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/admin/users/"+missing,
			strings.NewReader(`{"isAdmin":true}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminDeleteUser(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Delete("/api/admin/users/:id", AdminDeleteUser(mockSvc))

	userID := uuid.New().String()
	mockSvc.On("DeleteUser", mock.Anything, userID).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+userID, nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})

	app.Get("/unauthorized", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("unexpected")
	})

	t.Run("unauthorized keeps middleware message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/unauthorized", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
		assert.Equal(t, "invalid or expired token", body.Error.Message)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	})

	t.Run("unknown route is NOT_FOUND", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
	})
}
