package resources

import (
	"context"
	"errors"
	"time"

	"github.com/user/resourcebox-go/apperror"
	"github.com/user/resourcebox-go/config"
)

// Service implements resource operations on top of the storage collaborator.
// All validation happens before any storage mutation is attempted.
type Service struct {
	store          Store
	maxCellLength  int
	maxArrayLength int
}

// NewService creates a resource Service with the configured payload limits.
func NewService(store Store, cfg config.ResourceConfig) *Service {
	return &Service{
		store:          store,
		maxCellLength:  cfg.MaxCellLength,
		maxArrayLength: cfg.MaxArrayLength,
	}
}

// List returns all resources as stored. Soft-deleted rows are included:
// the listing path carries no deleted filter, unlike the deletion path.
func (s *Service) List(ctx context.Context) ([]Resource, error) {
	resources, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.NewStorageError("failed to list resources", err)
	}
	return resources, nil
}

// Create sanitizes the raw payload and inserts the resulting resource.
func (s *Service) Create(ctx context.Context, raw RawResource) (*Resource, error) {
	res, err := Sanitize(raw, s.maxCellLength, s.maxArrayLength)
	if err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, res)
	if err != nil {
		if errors.Is(err, ErrDuplicateID) {
			return nil, apperror.NewConflictError("resource id already exists", err)
		}
		return nil, apperror.NewStorageError("failed to create resource", err)
	}
	return created, nil
}

// Update sanitizes the replacement data and applies an atomic
// update-by-id of {data, modified}. A missing target is not an error:
// it returns (nil, nil) so the handler can report "no resource to edit".
func (s *Service) Update(ctx context.Context, id string, data []any) (*Resource, error) {
	clean, err := SanitizeData(data, s.maxCellLength, s.maxArrayLength)
	if err != nil {
		return nil, err
	}

	res, err := s.store.UpdateData(ctx, id, clean, time.Now().UnixMilli())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.NewStorageError("failed to update resource", err)
	}
	return res, nil
}

// SoftDelete clears the resource's data and stamps modified/deleted, but
// only when the resource is not already soft-deleted. A second call matches
// no row and returns (nil, nil), leaving the original deleted timestamp
// untouched.
func (s *Service) SoftDelete(ctx context.Context, id string) (*Resource, error) {
	res, err := s.store.SoftDelete(ctx, id, time.Now().UnixMilli())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.NewStorageError("failed to delete resource", err)
	}
	return res, nil
}
