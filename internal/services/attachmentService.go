package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"

	"github.com/hackhub/hackhub/internal/models"
	"github.com/hackhub/hackhub/internal/store"
)

var ErrAttachmentNotFound = errors.New("attachment not found")

// AttachmentService stores submission files in object storage and records
// their metadata on the owning submission.
type AttachmentService struct {
	store  store.Store
	minio  *minio.Client
	bucket string
}

func NewAttachmentService(st store.Store, client *minio.Client, bucket string) *AttachmentService {
	return &AttachmentService{store: st, minio: client, bucket: bucket}
}

// Upload attaches the multipart "file" field to the user's submission on the
// given project. The user must have submitted first.
func (s *AttachmentService) Upload(c *fiber.Ctx, projectID, userID string) (models.Attachment, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.Attachment{}, errors.New("failed to retrieve file")
	}

	project, err := s.store.GetProject(c.Context(), projectID)
	if err != nil {
		return models.Attachment{}, err
	}
	idx := project.SubmissionIndex(userID)
	if idx < 0 {
		return models.Attachment{}, ErrSubmissionNotFound
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.Attachment{}, errors.New("failed to open file")
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return models.Attachment{}, errors.New("failed to read file")
	}

	objectName := fmt.Sprintf("%s_%s_%s", projectID, userID, fileHeader.Filename)
	_, err = s.minio.PutObject(
		c.Context(),
		s.bucket,
		objectName,
		bytes.NewReader(fileBytes),
		int64(len(fileBytes)),
		minio.PutObjectOptions{ContentType: fileHeader.Header.Get("Content-Type")},
	)
	if err != nil {
		return models.Attachment{}, errors.New("failed to upload file to storage: " + err.Error())
	}

	attachment := models.Attachment{
		Name:       fileHeader.Filename,
		Object:     objectName,
		Size:       fileHeader.Size,
		UploadedAt: time.Now(),
	}
	project.Submissions[idx].Attachments = append(project.Submissions[idx].Attachments, attachment)

	if err := s.store.ReplaceProject(c.Context(), project); err != nil {
		// Best-effort cleanup of the orphaned object
		go func() {
			s.minio.RemoveObject(context.Background(), s.bucket, objectName, minio.RemoveObjectOptions{})
		}()
		return models.Attachment{}, err
	}

	return attachment, nil
}

// PresignedURL returns a time-limited download link for one of the user's
// submission attachments, looked up by file name.
func (s *AttachmentService) PresignedURL(ctx context.Context, projectID, userID, name string, expiry time.Duration) (string, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	idx := project.SubmissionIndex(userID)
	if idx < 0 {
		return "", ErrSubmissionNotFound
	}

	for _, attachment := range project.Submissions[idx].Attachments {
		if attachment.Name == name {
			url, err := s.minio.PresignedGetObject(ctx, s.bucket, attachment.Object, expiry, nil)
			if err != nil {
				return "", fmt.Errorf("failed to generate download link: %w", err)
			}
			return url.String(), nil
		}
	}
	return "", ErrAttachmentNotFound
}
