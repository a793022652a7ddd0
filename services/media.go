package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/shared"
)

type MediaService struct {
	context.DefaultService

	minio    *MinIOService
	postgres *PostgresService
}

const MEDIA_SVC = "media_svc"

const (
	maxCoverSize = 5 << 20   // 5 MiB
	maxAudioSize = 200 << 20 // 200 MiB

	presignedURLTTL = 24 * time.Hour
)

var coverContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var audioContentTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/mp4":  true,
	"audio/ogg":  true,
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Start() error {
	svc.minio = svc.Service(MINIO_SVC).(*MinIOService)
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// UploadBookCover stores a cover image and points the book at it. The book
// row keeps the object name; links are presigned at read time so they do not
// expire in storage.
func (svc *MediaService) UploadBookCover(bookID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if file.Size > maxCoverSize {
		return nil, shared.NewBadRequestError(nil, "cover image exceeds 5MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	if !coverContentTypes[contentType] {
		return nil, shared.NewBadRequestError(nil, "cover must be jpeg, png or webp")
	}

	objectName := fmt.Sprintf("covers/%s%s", bookID, safeExtension(file.Filename))
	resp, err := svc.upload(objectName, file, contentType)
	if err != nil {
		return nil, err
	}

	if err := svc.postgres.UpdateBook(bookID, map[string]interface{}{"cover_url": resp.ObjectName}); err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to attach cover to book")
	}
	return resp, nil
}

// UploadBookAudio stores an audiobook file and points the book at it.
func (svc *MediaService) UploadBookAudio(bookID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if file.Size > maxAudioSize {
		return nil, shared.NewBadRequestError(nil, "audio file exceeds 200MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	if !audioContentTypes[contentType] {
		return nil, shared.NewBadRequestError(nil, "audio must be mpeg, mp4 or ogg")
	}

	objectName := fmt.Sprintf("audio/%s%s", bookID, safeExtension(file.Filename))
	resp, err := svc.upload(objectName, file, contentType)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"audio_url": resp.ObjectName, "is_audiobook": true}
	if err := svc.postgres.UpdateBook(bookID, updates); err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to attach audio to book")
	}
	return resp, nil
}

func (svc *MediaService) upload(objectName string, file *multipart.FileHeader, contentType string) (*dto.MediaUploadResponse, error) {
	src, err := file.Open()
	if err != nil {
		return nil, shared.NewBadRequestError(err, "failed to read uploaded file")
	}
	defer src.Close()

	info, err := svc.minio.UploadFile(objectName, src, file.Size, contentType)
	if err != nil {
		return nil, shared.NewInternalError(err, "failed to store file")
	}

	url, err := svc.minio.GetFileURL(objectName, presignedURLTTL)
	if err != nil {
		return nil, shared.NewInternalError(err, "failed to generate file URL")
	}

	log.WithFields(log.Fields{"object": objectName, "size": info.Size}).Info("Media uploaded")

	return &dto.MediaUploadResponse{
		ObjectName: objectName,
		URL:        url,
		Size:       info.Size,
	}, nil
}

func safeExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".mp3", ".m4a", ".ogg", ".mp4":
		return ext
	default:
		return ""
	}
}
