package service

import (
	"context"
	"encoding/json"

	"collectible-documenter-be/internal/dto"
	"collectible-documenter-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type ICleanupService interface {
	Consume(ctx context.Context) error
}

// cleanupService drains the item.deleted topic and removes the deleted
// item's image blobs. Best-effort: a failed delete is logged, never
// surfaced to the user who deleted the item.
type cleanupService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	imageService IImageService
	logger       logger.ILogger
}

func NewCleanupService(
	pubSub *gochannel.GoChannel,
	topicName string,
	imageService IImageService,
	log logger.ILogger,
) ICleanupService {
	return &cleanupService{
		pubSub:       pubSub,
		topicName:    topicName,
		imageService: imageService,
		logger:       log,
	}
}

func (cs *cleanupService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *cleanupService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ItemDeletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("cleanup", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("cleanup", "Removing image blobs for deleted item", map[string]interface{}{
		"email":   payload.Email,
		"item_id": payload.ItemId,
	})

	if err := cs.imageService.DeleteImages(ctx, payload.Email, payload.ItemId); err != nil {
		cs.logger.Error("cleanup", "Image cleanup failed", map[string]interface{}{
			"email":   payload.Email,
			"item_id": payload.ItemId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
