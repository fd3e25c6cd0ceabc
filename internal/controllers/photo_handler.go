package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/internal/auth"
	"alumni-directory/internal/middleware"
	"alumni-directory/internal/models"
	"alumni-directory/internal/photostore"
	"alumni-directory/internal/services"
)

// PhotoUploadResult is the stored metadata plus where to fetch the binary.
type PhotoUploadResult struct {
	models.Photo
	URL string `json:"url"`
}

// parseTags accepts a JSON array or a comma separated list.
func parseTags(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var tags []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			return nil, errors.New("Tags must be a JSON array of strings")
		}
	} else {
		tags = strings.Split(raw, ",")
	}
	out := tags[:0]
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// UploadPhotoHandler godoc
// @Summary Upload a photo
// @Description Stores an image and records its metadata. Alumni may only upload as themselves.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Image file (jpeg, png, gif)"
// @Param Alumni_id formData string false "Uploader Alumni_id (defaults to the caller)"
// @Param Event_id formData string false "Event the photo belongs to"
// @Param Tags formData string false "Comma separated tags or a JSON array"
// @Success 201 {object} PhotoUploadResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /upload-photo [post]
func UploadPhotoHandler(svc *services.Services, photoBaseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromLocals(c)
		if claims == nil {
			return respondError(c, auth.ErrAuthRequired)
		}

		file, err := c.FormFile("photo")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "No file uploaded"})
		}

		alumniID := strings.TrimSpace(c.FormValue("Alumni_id"))
		if alumniID == "" {
			alumniID = claims.AlumniID
		}
		if !claims.IsAdmin() && alumniID != claims.AlumniID {
			return respondError(c, auth.ErrAccessDenied)
		}

		tags, err := parseTags(c.FormValue("Tags"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}

		body, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "unable to read uploaded file"})
		}
		defer body.Close()

		photo, err := svc.Photos.Upload(c.UserContext(), services.UploadRequest{
			AlumniID:     alumniID,
			EventID:      strings.TrimSpace(c.FormValue("Event_id")),
			Tags:         tags,
			FileName:     file.Filename,
			DeclaredType: file.Header.Get(fiber.HeaderContentType),
			Size:         file.Size,
			Body:         body,
		})
		if err != nil {
			return respondError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(PhotoUploadResult{
			Photo: *photo,
			URL:   strings.TrimRight(photoBaseURL, "/") + "/" + photo.FileID.Hex(),
		})
	}
}

// GetPhotoHandler godoc
// @Summary Download a photo
// @Tags photos
// @Produce image/jpeg
// @Produce image/png
// @Produce image/gif
// @Param fileId path string true "Stored file id"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /photo/{fileId} [get]
func GetPhotoHandler(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileID, err := bson.ObjectIDFromHex(c.Params("fileId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid file id"})
		}

		// The download stream outlives this handler; fasthttp closes it once sent.
		rc, file, err := svc.Photos.Open(context.Background(), fileID)
		if errors.Is(err, photostore.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "File not found"})
		}
		if err != nil {
			return respondError(c, &services.StorageError{Op: "open", Err: err})
		}

		c.Set(fiber.HeaderContentType, file.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", file.Name))
		return c.SendStream(rc, int(file.Size))
	}
}

// DeletePhotoHandler godoc
// @Summary Delete a photo
// @Description Removes the stored binary and then its metadata. Only the uploader or an admin may delete.
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param fileId path string true "Stored file id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /photo/{fileId} [delete]
func DeletePhotoHandler(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileID, err := bson.ObjectIDFromHex(c.Params("fileId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid file id"})
		}
		ctx := c.UserContext()

		photo, err := svc.Photos.ByFileID(ctx, fileID)
		if err != nil {
			return respondError(c, err)
		}
		switch claims := middleware.ClaimsFromLocals(c); {
		case photo != nil:
			if _, err := auth.RequireOwnerOrAdmin(ctx, photo.AlumniID); err != nil {
				return respondError(c, err)
			}
		case claims == nil || !claims.IsAdmin():
			// Binaries without metadata are only visible to admins.
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "File not found"})
		}

		if err := svc.Photos.DeleteByFileID(ctx, fileID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Photo deleted successfully"})
	}
}
