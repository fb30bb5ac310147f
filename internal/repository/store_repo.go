package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

type documentStoreRepository struct {
	store domain.DocumentStore
	log   *logrus.Logger
}

// NewStoreRepository reads and writes the three storeInfo documents. A
// missing document reads as the zero value.
func NewStoreRepository(store domain.DocumentStore, logger *logrus.Logger) domain.StoreRepository {
	return &documentStoreRepository{
		store: store,
		log:   logger,
	}
}

func (r *documentStoreRepository) GetStoreInfo(ctx context.Context) (*domain.StoreInfo, error) {
	info := &domain.StoreInfo{}
	if err := r.load(ctx, domain.DocStoreInfo, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (r *documentStoreRepository) SaveStoreInfo(ctx context.Context, info *domain.StoreInfo) error {
	return r.save(ctx, domain.DocStoreInfo, info)
}

func (r *documentStoreRepository) GetDesignConfig(ctx context.Context) (*domain.DesignConfig, error) {
	cfg := &domain.DesignConfig{}
	if err := r.load(ctx, domain.DocDesignConfig, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *documentStoreRepository) SaveDesignConfig(ctx context.Context, cfg *domain.DesignConfig) error {
	return r.save(ctx, domain.DocDesignConfig, cfg)
}

func (r *documentStoreRepository) GetSEOHome(ctx context.Context) (*domain.SEOHome, error) {
	seo := &domain.SEOHome{}
	if err := r.load(ctx, domain.DocSEOHome, seo); err != nil {
		return nil, err
	}
	return seo, nil
}

func (r *documentStoreRepository) SaveSEOHome(ctx context.Context, seo *domain.SEOHome) error {
	return r.save(ctx, domain.DocSEOHome, seo)
}

// load decodes a document through its JSON form. Fields with the wrong type
// are skipped and the rest still decode.
func (r *documentStoreRepository) load(ctx context.Context, id string, target any) error {
	doc, err := r.store.Get(ctx, domain.CollectionStoreInfo, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.log.Debugf("Store document %s not found, using defaults", id)
			return nil
		}
		r.log.Errorf("Failed to load store document %s: %v", id, err)
		return fmt.Errorf("could not load store document %s: %w", id, err)
	}
	raw, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("could not encode store document %s: %w", id, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return fmt.Errorf("could not decode store document %s: %w", id, err)
		}
		r.log.Warnf("Store document %s has a mistyped field %q: %v", id, typeErr.Field, err)
	}
	return nil
}

func (r *documentStoreRepository) save(ctx context.Context, id string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode store document %s: %w", id, err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("could not encode store document %s: %w", id, err)
	}
	if err := r.store.Set(ctx, domain.CollectionStoreInfo, id, fields); err != nil {
		r.log.Errorf("Failed to save store document %s: %v", id, err)
		return fmt.Errorf("could not save store document %s: %w", id, err)
	}
	r.log.Infof("Store document %s saved", id)
	return nil
}
