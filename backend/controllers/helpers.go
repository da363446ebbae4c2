package controllers

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"examprep/backend/cache"
	"examprep/backend/middleware"
	"examprep/backend/storage"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponded signals that the helper already wrote the response.
var errResponded = errors.New("response written")

func finish(err error) error {
	if errors.Is(err, errResponded) {
		return nil
	}
	return err
}

// parseBody decodes and validates the request into dst, writing the 400
// itself on failure.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		_ = utils.BadRequest(c, "Cannot parse request body")
		return errResponded
	}
	if err := utils.Validate.Struct(dst); err != nil {
		_ = utils.ValidationError(c, err)
		return errResponded
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

func identityID(c *fiber.Ctx) uuid.UUID {
	if identity := middleware.CurrentIdentity(c); identity != nil {
		return identity.ID
	}
	return uuid.Nil
}

// formFile returns the named file part, or nil when the form has none.
// Bodies that are not multipart carry no file and are left to BodyParser.
func formFile(c *fiber.Ctx, name string) (*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	if files := form.File[name]; len(files) > 0 {
		return files[0], nil
	}
	return nil, nil
}

func isMultipart(c *fiber.Ctx) bool {
	ctype := strings.ToLower(c.Get(fiber.HeaderContentType))
	return strings.HasPrefix(ctype, fiber.MIMEMultipartForm)
}

// uploadFile validates the part against policy and stores it under category.
// Rejections are answered with 400 here.
func uploadFile(c *fiber.Ctx, uploader storage.Uploader, logger *log.Logger, header *multipart.FileHeader, policy storage.Policy, category string) (string, error) {
	file, err := storage.ValidateUpload(header, policy)
	if errors.Is(err, storage.ErrNoFile) {
		_ = utils.BadRequest(c, "No file uploaded")
		return "", errResponded
	}
	var uploadErr *storage.UploadError
	if errors.As(err, &uploadErr) {
		_ = utils.BadRequest(c, "File upload error", uploadErr.Reason)
		return "", errResponded
	}
	if err != nil {
		_ = utils.InternalServerError(c, logger, "Failed to read uploaded file", err)
		return "", errResponded
	}

	url, err := uploader.Upload(c.UserContext(), category, file.Name, file.ContentType, file.Data)
	if err != nil {
		_ = utils.InternalServerError(c, logger, "Failed to upload file", err)
		return "", errResponded
	}
	return url, nil
}

// cachedList serves key from the catalog, falling back to load and
// repopulating. Cache failures are logged and otherwise ignored.
func cachedList[T any](ctx context.Context, catalog cache.Catalog, logger *log.Logger, key string, load func() (T, error)) (T, error) {
	var value T
	found, err := catalog.Get(ctx, key, &value)
	if err != nil {
		logger.Printf("catalog get %s: %v", key, err)
	}
	if found {
		return value, nil
	}

	value, err = load()
	if err != nil {
		return value, err
	}
	if err := catalog.Set(ctx, key, value); err != nil {
		logger.Printf("catalog set %s: %v", key, err)
	}
	return value, nil
}

func invalidate(ctx context.Context, catalog cache.Catalog, logger *log.Logger, keys []string) {
	if err := catalog.Invalidate(ctx, keys...); err != nil {
		logger.Printf("catalog invalidate: %v", err)
	}
}
