package service

import (
	"context"
	"fmt"
	"time"

	"collectible-documenter-be/internal/pkg/apperr"
	"collectible-documenter-be/internal/pkg/logger"
	"collectible-documenter-be/pkg/blob"
)

// SignedURLTTL is how long a minted image URL stays readable.
const SignedURLTTL = time.Hour

const (
	SideFront = "front"
	SideBack  = "back"
)

func ValidSide(side string) bool {
	return side == SideFront || side == SideBack
}

type IImageService interface {
	// SaveImage stores the image and returns its signed URL. In local mode
	// nothing is uploaded and the input bytes come back unchanged.
	SaveImage(ctx context.Context, email string, itemID int, side string, data []byte) (string, []byte, error)
	// DeleteImages attempts to remove both sides of a deleted item. A
	// failed delete is reported so the cleanup consumer can Nack and retry.
	DeleteImages(ctx context.Context, email string, itemID int) error
}

type imageService struct {
	store     blob.Store
	container string
	localMode bool
	logger    logger.ILogger
}

func NewImageService(store blob.Store, container string, localMode bool, log logger.ILogger) IImageService {
	return &imageService{
		store:     store,
		container: container,
		localMode: localMode,
		logger:    log,
	}
}

func imageBlobKey(email string, itemID int, side string) string {
	return fmt.Sprintf("%s/%d_%s.png", email, itemID, side)
}

func (s *imageService) SaveImage(ctx context.Context, email string, itemID int, side string, data []byte) (string, []byte, error) {
	if !ValidSide(side) {
		return "", nil, apperr.Validation("side must be front or back")
	}

	if s.localMode || s.store == nil {
		return "", data, nil
	}

	key := imageBlobKey(email, itemID, side)
	if err := s.store.Upload(ctx, s.container, key, data, "image/png"); err != nil {
		return "", nil, apperr.Transport("image upload failed", err)
	}

	url, err := s.store.SignedURL(ctx, s.container, key, SignedURLTTL)
	if err != nil {
		return "", nil, apperr.Transport("failed to sign image url", err)
	}
	return url, nil, nil
}

func (s *imageService) DeleteImages(ctx context.Context, email string, itemID int) error {
	if s.localMode || s.store == nil {
		return nil
	}

	// Both sides are attempted before reporting the first failure, so one
	// bad delete never strands the other blob.
	var firstErr error
	for _, side := range []string{SideFront, SideBack} {
		if err := s.store.Delete(ctx, s.container, imageBlobKey(email, itemID, side)); err != nil {
			s.logger.Warn("image", "Failed to delete image blob", map[string]interface{}{
				"email":   email,
				"item_id": itemID,
				"side":    side,
				"error":   err.Error(),
			})
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
