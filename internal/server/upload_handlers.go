package server

import (
	"mime/multipart"

	"portfolio/internal/models"
	"portfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// uploadInput converts a parsed multipart file header into the service
// input, opening the underlying stream.
func uploadInput(header *multipart.FileHeader) (service.UploadFileInput, func(), error) {
	file, err := header.Open()
	if err != nil {
		return service.UploadFileInput{}, nil, models.NewInternalError(err)
	}
	return service.UploadFileInput{
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      file,
	}, func() { file.Close() }, nil
}

// UploadImage handles POST /api/upload/image
func (s *Server) UploadImage(c *fiber.Ctx) error {
	return s.uploadSingle(c, service.KindImage, "image")
}

// UploadVideo handles POST /api/upload/video
func (s *Server) UploadVideo(c *fiber.Ctx) error {
	return s.uploadSingle(c, service.KindVideo, "video")
}

func (s *Server) uploadSingle(c *fiber.Ctx, kind, field string) error {
	header, err := c.FormFile(field)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewUploadError("No file uploaded"))
	}

	in, closeFn, err := uploadInput(header)
	if err != nil {
		return respondError(c, err)
	}
	defer closeFn()

	stored, err := s.uploadService.Upload(callerFromCtx(c), kind, in)
	if err != nil {
		return respondError(c, err)
	}
	stored.URL = service.FileURL(c.BaseURL(), stored.Kind, stored.Filename)

	return respondData(c, fiber.StatusCreated, "File uploaded successfully", stored)
}

// UploadImages handles POST /api/upload/images
func (s *Server) UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewUploadError("No files uploaded"))
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewUploadError("No files uploaded"))
	}

	ins := make([]service.UploadFileInput, 0, len(headers))
	var closers []func()
	defer func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}()
	for _, header := range headers {
		in, closeFn, err := uploadInput(header)
		if err != nil {
			return respondError(c, err)
		}
		closers = append(closers, closeFn)
		ins = append(ins, in)
	}

	stored, err := s.uploadService.UploadMany(callerFromCtx(c), service.KindImage, ins, service.MaxImagesPerRequest)
	if err != nil {
		return respondError(c, err)
	}
	for i := range stored {
		stored[i].URL = service.FileURL(c.BaseURL(), stored[i].Kind, stored[i].Filename)
	}

	return respondData(c, fiber.StatusCreated, "Files uploaded successfully", stored)
}

// DeleteUpload handles DELETE /api/upload/:filename
func (s *Server) DeleteUpload(c *fiber.Ctx) error {
	filename := c.Params("filename")
	if filename == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Filename is required"))
	}

	deleted, err := s.uploadService.Delete(callerFromCtx(c), filename)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return respondError(c, models.NewNotFoundError("File"))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "File deleted successfully",
	})
}

// GetUploadInfo handles GET /api/upload/info/:filename
func (s *Server) GetUploadInfo(c *fiber.Ctx) error {
	filename := c.Params("filename")
	if filename == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Filename is required"))
	}

	stat, err := s.uploadService.Stat(callerFromCtx(c), filename)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", fiber.Map{
		"filename": stat.Filename,
		"size":     stat.Size,
		"modified": stat.Modified,
		"type":     stat.Kind,
		"url":      service.FileURL(c.BaseURL(), stat.Kind, stat.Filename),
	})
}
