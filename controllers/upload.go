package controllers

import (
	"context"
	"log"
	"mime/multipart"

	"company-board-api/services"
	"company-board-api/utils"
)

// uploadAttachment stores an optional multipart attachment. A storage
// failure is deliberately non-fatal: the owning entity is created without
// its file, so the result is logged and nil references are returned.
func uploadAttachment(ctx context.Context, storage services.FileStorage, header *multipart.FileHeader) (fileKey, fileName *string) {
	if header == nil || header.Filename == "" {
		return nil, nil
	}

	src, err := header.Open()
	if err != nil {
		log.Printf("attachment upload skipped, cannot open %q: %v", header.Filename, err)
		return nil, nil
	}
	defer src.Close()

	contentType := utils.DefaultString(header.Header.Get("Content-Type"), "application/octet-stream")
	key, err := storage.Upload(ctx, src, header.Filename, contentType)
	if err != nil {
		log.Printf("attachment upload failed for %q: %v", header.Filename, err)
		return nil, nil
	}

	name := header.Filename
	return &key, &name
}
