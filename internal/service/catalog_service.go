package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"collectible-documenter-be/internal/dto"
	"collectible-documenter-be/internal/entity"
	"collectible-documenter-be/internal/mapper"
	"collectible-documenter-be/internal/pkg/apperr"
	"collectible-documenter-be/internal/pkg/logger"
	"collectible-documenter-be/internal/repository/memory"
	"collectible-documenter-be/pkg/catalog"
)

type ICatalogService interface {
	GetSession(ctx context.Context, email string) (*dto.SessionResponse, error)
	AddItem(ctx context.Context, email string, req *dto.AddItemRequest) (*dto.SessionResponse, error)
	DeleteItem(ctx context.Context, email string, id int, req *dto.DeleteItemRequest) (*dto.DeleteItemResponse, error)
	RenameItem(ctx context.Context, email string, id int, req *dto.RenameItemRequest) (*dto.SessionResponse, error)
	SetItemTags(ctx context.Context, email string, id int, req *dto.SetItemTagsRequest) (*dto.SessionResponse, error)
	SaveItemImage(ctx context.Context, email string, id int, side string, data []byte) (*dto.SaveImageResponse, []byte, error)
	TranscribeItemAudio(ctx context.Context, email string, id int, audioData []byte) (*dto.TranscribeResponse, error)
	AddTag(ctx context.Context, email string, req *dto.AddTagRequest) (*dto.SessionResponse, error)
	RemoveTag(ctx context.Context, email, name string) (*dto.SessionResponse, error)
	SetTagFilter(ctx context.Context, email string, req *dto.SetTagFilterRequest) (*dto.SessionResponse, error)
}

// catalogService runs the request cycle: get-or-hydrate session, apply the
// pure state transition, persist the whitelisted snapshot, render.
//
// A user's requests are serialized: the live session is shared by every
// in-flight request for the same email, and the catalog ops mutate it, so
// each operation holds that email's lock for its full get-mutate-persist
// span. The lock map grows with the allow-list, not with traffic.
type catalogService struct {
	sessions             *memory.SessionRepository
	stateService         IStateService
	imageService         IImageService
	transcriptionService ITranscriptionService
	publisherService     IPublisherService
	logger               logger.ILogger

	locks sync.Map // email -> *sync.Mutex
}

func NewCatalogService(
	sessions *memory.SessionRepository,
	stateService IStateService,
	imageService IImageService,
	transcriptionService ITranscriptionService,
	publisherService IPublisherService,
	log logger.ILogger,
) ICatalogService {
	return &catalogService{
		sessions:             sessions,
		stateService:         stateService,
		imageService:         imageService,
		transcriptionService: transcriptionService,
		publisherService:     publisherService,
		logger:               log,
	}
}

// lockSession acquires the per-email lock and returns its release func.
func (c *catalogService) lockSession(email string) func() {
	v, _ := c.locks.LoadOrStore(email, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// session returns the live session, hydrating a fresh one from the state
// store exactly once. While the session stays cached, later mutations are
// never overwritten by a re-load. Callers must hold the email's lock.
func (c *catalogService) session(ctx context.Context, email string) *entity.Session {
	if sess, found := c.sessions.Get(email); found {
		sess.State.EnsureItem()
		return sess
	}

	state := catalog.NewState()
	state.Hydrate(c.stateService.LoadState(ctx, email))
	state.EnsureItem()

	sess := &entity.Session{Email: email, State: state}
	c.sessions.Save(sess)
	return sess
}

// persist writes the snapshot and refreshes the cache entry's TTL.
func (c *catalogService) persist(ctx context.Context, sess *entity.Session) error {
	c.sessions.Save(sess)
	return c.stateService.SaveState(ctx, sess.Email, sess.State)
}

func (c *catalogService) render(ctx context.Context, sess *entity.Session) (*dto.SessionResponse, error) {
	if err := c.persist(ctx, sess); err != nil {
		return nil, err
	}
	return mapper.ToSessionResponse(sess), nil
}

func (c *catalogService) GetSession(ctx context.Context, email string) (*dto.SessionResponse, error) {
	defer c.lockSession(email)()
	return c.render(ctx, c.session(ctx, email))
}

func (c *catalogService) AddItem(ctx context.Context, email string, req *dto.AddItemRequest) (*dto.SessionResponse, error) {
	defer c.lockSession(email)()
	sess := c.session(ctx, email)
	id := sess.State.AddItem(req.AfterIndex)

	c.logger.Info("catalog", "Item added", map[string]interface{}{
		"email":   email,
		"item_id": id,
	})
	return c.render(ctx, sess)
}

func (c *catalogService) DeleteItem(ctx context.Context, email string, id int, req *dto.DeleteItemRequest) (*dto.DeleteItemResponse, error) {
	defer c.lockSession(email)()
	sess := c.session(ctx, email)

	// First phase: nothing mutates until the client confirms.
	if !req.Confirm {
		return &dto.DeleteItemResponse{ConfirmationRequired: true}, nil
	}

	if err := sess.State.DeleteItem(req.Index, id); err != nil {
		if errors.Is(err, catalog.ErrLastItem) || errors.Is(err, catalog.ErrItemMismatch) {
			return nil, apperr.Validation(err.Error())
		}
		return nil, err
	}

	// Image blobs for the deleted item are cleaned up in the background.
	payload, _ := json.Marshal(dto.ItemDeletedMessage{Email: email, ItemId: id})
	if err := c.publisherService.Publish(ctx, payload); err != nil {
		c.logger.Warn("catalog", "Failed to publish item.deleted", map[string]interface{}{
			"email":   email,
			"item_id": id,
			"error":   err.Error(),
		})
	}

	c.logger.Info("catalog", "Item deleted", map[string]interface{}{
		"email":   email,
		"item_id": id,
	})

	view, err := c.render(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteItemResponse{Session: view}, nil
}

func (c *catalogService) RenameItem(ctx context.Context, email string, id int, req *dto.RenameItemRequest) (*dto.SessionResponse, error) {
	defer c.lockSession(email)()
	sess := c.session(ctx, email)
	if !sess.State.SetItemName(id, req.Name) {
		return nil, apperr.NotFound("item not found")
	}
	return c.render(ctx, sess)
}

func (c *catalogService) SetItemTags(ctx context.Context, email string, id int, req *dto.SetItemTagsRequest) (*dto.SessionResponse, error) {
	defer c.lockSession(email)()
	sess := c.session(ctx, email)
	if !sess.State.SetItemTags(id, req.Tags) {
		return nil, apperr.NotFound("item not found")
	}
	return c.render(ctx, sess)
}

func (c *catalogService) SaveItemImage(ctx context.Context, email string, id int, side string, data []byte) (*dto.SaveImageResponse, []byte, error) {
	defer c.lockSession(email)()
	sess := c.session(ctx, email)
	rec, ok := sess.State.Record(id)
	if !ok {
		return nil, nil, apperr.NotFound("item not found")
	}

	url, raw, err := c.imageService.SaveImage(ctx, email, id, side, data)
	if err != nil {
		return nil, nil, err
	}

	// Local mode hands the bytes straight back and stores nothing.
	if raw != nil {
		return nil, raw, nil
	}

	switch side {
	case SideFront:
		rec.FrontImage = url
	case SideBack:
		rec.BackImage = url
	}

	if err := c.persist(ctx, sess); err != nil {
		return nil, nil, err
	}
	return &dto.SaveImageResponse{Url: url}, nil, nil
}

func (c *catalogService) TranscribeItemAudio(ctx context.Context, email string, id int, audioData []byte) (*dto.TranscribeResponse, error) {
	defer c.lockSession(email)()
	sess := c.session(ctx, email)
	rec, ok := sess.State.Record(id)
	if !ok {
		return nil, apperr.NotFound("item not found")
	}

	text, err := c.transcriptionService.Transcribe(ctx, audioData)
	if err != nil {
		return nil, err
	}

	rec.Transcript = text
	if err := c.persist(ctx, sess); err != nil {
		return nil, err
	}
	return &dto.TranscribeResponse{Transcript: text}, nil
}

func (c *catalogService) AddTag(ctx context.Context, email string, req *dto.AddTagRequest) (*dto.SessionResponse, error) {
	defer c.lockSession(email)()
	sess := c.session(ctx, email)
	sess.State.AddTag(req.Name)
	return c.render(ctx, sess)
}

func (c *catalogService) RemoveTag(ctx context.Context, email, name string) (*dto.SessionResponse, error) {
	defer c.lockSession(email)()
	sess := c.session(ctx, email)
	sess.State.RemoveTag(name)
	return c.render(ctx, sess)
}

func (c *catalogService) SetTagFilter(ctx context.Context, email string, req *dto.SetTagFilterRequest) (*dto.SessionResponse, error) {
	defer c.lockSession(email)()
	sess := c.session(ctx, email)
	sess.State.SetTagFilter(req.Selected)
	return c.render(ctx, sess)
}
