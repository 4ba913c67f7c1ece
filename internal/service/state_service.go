package service

import (
	"context"
	"encoding/json"

	"collectible-documenter-be/internal/pkg/apperr"
	"collectible-documenter-be/internal/pkg/logger"
	"collectible-documenter-be/pkg/blob"
	"collectible-documenter-be/pkg/catalog"
)

type IStateService interface {
	SaveState(ctx context.Context, email string, state *catalog.State) error
	LoadState(ctx context.Context, email string) catalog.Snapshot
}

type stateService struct {
	store     blob.Store
	container string
	localMode bool
	logger    logger.ILogger
}

func NewStateService(store blob.Store, container string, localMode bool, log logger.ILogger) IStateService {
	return &stateService{
		store:     store,
		container: container,
		localMode: localMode,
		logger:    log,
	}
}

func stateBlobKey(email string) string {
	return email + ".json"
}

// SaveState overwrites the user's blob with the whitelisted snapshot. Last
// write wins; there is no merge or conflict detection.
func (s *stateService) SaveState(ctx context.Context, email string, state *catalog.State) error {
	if s.localMode || s.store == nil {
		return nil
	}

	data, err := json.Marshal(state.Snapshot())
	if err != nil {
		return err
	}

	if err := s.store.Upload(ctx, s.container, stateBlobKey(email), data, "application/json"); err != nil {
		return apperr.Transport("failed to persist session state", err)
	}
	return nil
}

// LoadState is best-effort restore: not found, malformed JSON and transport
// errors all yield the empty snapshot, so a new session starts from
// defaults. The failure is logged at debug so it is not entirely silent.
func (s *stateService) LoadState(ctx context.Context, email string) catalog.Snapshot {
	if s.localMode || s.store == nil {
		return catalog.Snapshot{}
	}

	data, err := s.store.Download(ctx, s.container, stateBlobKey(email))
	if err != nil {
		s.logger.Debug("state", "No saved state restored", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return catalog.Snapshot{}
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Debug("state", "Saved state blob is malformed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return catalog.Snapshot{}
	}
	return snap
}
