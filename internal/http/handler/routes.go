package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/Aasthak07/QuillStack-AI/internal/http/middleware"
	"github.com/Aasthak07/QuillStack-AI/internal/service"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	DB       *sql.DB
	Docs     service.DocumentService
	Users    service.UserService
	Verifier middleware.TokenVerifier
	DevMode  bool
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	// Serve the OpenAPI document and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(deps.DB))
	app.Get("/healthz", LivenessProbe())

	requireAuth := middleware.RequireAuth(deps.Verifier)
	requireAdmin := middleware.RequireAdmin(deps.Users)

	// Account routes
	users := app.Group("/api/users")
	users.Post("/signup", SignUp(deps.Users))
	users.Post("/login", Login(deps.Users))
	users.Post("/admin-login", AdminLogin(deps.Users))

	// Registered before the guarded admin group so the admin guard does not
	// apply to the login itself.
	app.Post("/api/admin/login", AdminLogin(deps.Users))

	// Documentation pipeline routes
	docs := app.Group("/api/docs", requireAuth)
	docs.Post("/upload", GenerateDocumentation(deps.Docs, deps.DevMode))
	docs.Get("/", ListDocuments(deps.Docs))
	docs.Get("/:id", GetDocument(deps.Docs))
	docs.Put("/:id", UpdateDocument(deps.Docs))
	docs.Post("/:id/regenerate", RegenerateDocument(deps.Docs, deps.DevMode))
	docs.Delete("/:id", requireAdmin, DeleteDocument(deps.Docs))
	docs.Get("/:id/export", ExportDocument(deps.Docs))
	docs.Get("/:id/export/:format", ExportDocument(deps.Docs))
	docs.Post("/:id/export", ExportDocument(deps.Docs))

	// Admin routes; the admin flag is re-checked against the DB per request.
	admin := app.Group("/api/admin", requireAuth, requireAdmin)
	admin.Get("/check", AdminCheck(deps.Users))
	admin.Get("/stats", AdminStats(deps.Users))
	admin.Get("/users", AdminListUsers(deps.Users))
	admin.Get("/users/:id", AdminGetUser(deps.Users))
	admin.Put("/users/:id", AdminUpdateUser(deps.Users))
	admin.Delete("/users/:id", AdminDeleteUser(deps.Users))
}
