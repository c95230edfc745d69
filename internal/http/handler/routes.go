package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"studenthub/internal/service"
	"studenthub/internal/store"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything interesting lives in the service.
func RegisterRoutes(app *fiber.App, st store.MaterialStore, svc service.MaterialService) {
	// Serve OpenAPI spec and Swagger UI
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
  <title>StudentHub API Docs</title>
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

	app.Get("/health", HealthCheck(st))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/materials", ListMaterials(svc))
	api.Post("/upload", UploadMaterial(svc))
	api.Delete("/materials/:type/:index", DeleteMaterial(svc))
	api.Get("/download/:type/:index", DownloadMaterial(svc))
}

// HealthCheck reports whether the record store document is readable.
func HealthCheck(st store.MaterialStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if _, err := st.Read(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListMaterials returns the full document with both collections.
func ListMaterials(svc service.MaterialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lib, err := svc.Library(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(lib)
	}
}

// UploadMaterial accepts a multipart submission (file + metadata fields) and
// creates a new catalog record.
func UploadMaterial(svc service.MaterialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.UploadInput{
			Type:        c.FormValue("type"),
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Subject:     c.FormValue("subject"),
			Exam:        c.FormValue("exam"),
			Year:        c.FormValue("year"),
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "no file uploaded")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()
		in.Filename = fh.Filename
		in.File = f
		in.Size = fh.Size

		item, err := svc.Upload(c.UserContext(), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFileRequired):
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "no file uploaded")
			case errors.Is(err, service.ErrMissingField):
				return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "type and title are required")
			case errors.Is(err, service.ErrInvalidType):
				return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", "invalid type")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Uploaded successfully",
			"item":    item,
		})
	}
}

// DeleteMaterial removes the record at (type, index) and its binary.
func DeleteMaterial(svc service.MaterialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		materialType := c.Params("type")
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid index")
		}

		if _, err := svc.Delete(c.UserContext(), materialType, index); err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidType):
				return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", "invalid type")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "item not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(fiber.Map{
			"message": "Deleted successfully",
			"type":    materialType,
			"index":   index,
		})
	}
}

// DownloadMaterial counts the download and redirects to the stored binary.
func DownloadMaterial(svc service.MaterialService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		materialType := c.Params("type")
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid index")
		}

		url, err := svc.Download(c.UserContext(), materialType, index)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidType):
				return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", "invalid type")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "item not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Redirect(url, fiber.StatusFound)
	}
}
