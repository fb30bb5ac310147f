package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

type StoreUseCase interface {
	GetStoreInfo(ctx context.Context) (*domain.StoreInfo, error)
	UpdateStoreInfo(ctx context.Context, info *domain.StoreInfo) (*domain.StoreInfo, error)
	GetDesignConfig(ctx context.Context) (*domain.DesignConfig, error)
	UpdateDesignConfig(ctx context.Context, cfg *domain.DesignConfig) (*domain.DesignConfig, error)
	GetSEOHome(ctx context.Context) (*domain.SEOHome, error)
	UpdateSEOHome(ctx context.Context, seo *domain.SEOHome) (*domain.SEOHome, error)
}

type storeUseCase struct {
	storeRepo domain.StoreRepository
	log       *logrus.Logger
}

func NewStoreUseCase(repo domain.StoreRepository, logger *logrus.Logger) StoreUseCase {
	return &storeUseCase{
		storeRepo: repo,
		log:       logger,
	}
}

func (uc *storeUseCase) GetStoreInfo(ctx context.Context) (*domain.StoreInfo, error) {
	info, err := uc.storeRepo.GetStoreInfo(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to load store info: %v", err)
		return nil, err
	}
	return info, nil
}

func (uc *storeUseCase) UpdateStoreInfo(ctx context.Context, info *domain.StoreInfo) (*domain.StoreInfo, error) {
	info.StoreName = strings.TrimSpace(info.StoreName)
	if err := validateSchedule(info.Schedule); err != nil {
		uc.log.Warnf("Use Case: Rejected store info with bad schedule: %v", err)
		return nil, err
	}
	links := make([]domain.SocialLink, 0, len(info.SocialLinks))
	for _, link := range info.SocialLinks {
		if strings.TrimSpace(link.URL) != "" {
			links = append(links, link)
		}
	}
	info.SocialLinks = links

	if err := uc.storeRepo.SaveStoreInfo(ctx, info); err != nil {
		uc.log.Errorf("Use Case: Repository failed to save store info: %v", err)
		return nil, err
	}
	uc.log.Infof("Use Case: Store info for '%s' updated", info.StoreName)
	return info, nil
}

func (uc *storeUseCase) GetDesignConfig(ctx context.Context) (*domain.DesignConfig, error) {
	cfg, err := uc.storeRepo.GetDesignConfig(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to load design config: %v", err)
		return nil, err
	}
	applyDesignDefaults(cfg)
	return cfg, nil
}

func (uc *storeUseCase) UpdateDesignConfig(ctx context.Context, cfg *domain.DesignConfig) (*domain.DesignConfig, error) {
	if cfg.BannerInterval < 0 {
		uc.log.Warnf("Use Case: Rejected negative banner interval %d", cfg.BannerInterval)
		return nil, fmt.Errorf("bannerInterval must be at least 1 second: %w", domain.ErrInvalidInput)
	}
	images := make([]domain.BannerImage, 0, len(cfg.BannerImages))
	for _, img := range cfg.BannerImages {
		if strings.TrimSpace(img.URL) != "" {
			images = append(images, img)
		}
	}
	cfg.BannerImages = images
	applyDesignDefaults(cfg)

	if err := uc.storeRepo.SaveDesignConfig(ctx, cfg); err != nil {
		uc.log.Errorf("Use Case: Repository failed to save design config: %v", err)
		return nil, err
	}
	uc.log.Infof("Use Case: Design config updated with %d banner images", len(cfg.BannerImages))
	return cfg, nil
}

func (uc *storeUseCase) GetSEOHome(ctx context.Context) (*domain.SEOHome, error) {
	seo, err := uc.storeRepo.GetSEOHome(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to load home SEO: %v", err)
		return nil, err
	}
	applySEODefaults(seo)
	return seo, nil
}

func (uc *storeUseCase) UpdateSEOHome(ctx context.Context, seo *domain.SEOHome) (*domain.SEOHome, error) {
	applySEODefaults(seo)
	if err := uc.storeRepo.SaveSEOHome(ctx, seo); err != nil {
		uc.log.Errorf("Use Case: Repository failed to save home SEO: %v", err)
		return nil, err
	}
	uc.log.Info("Use Case: Home SEO updated")
	return seo, nil
}

func applyDesignDefaults(cfg *domain.DesignConfig) {
	if cfg.BannerInterval < 1 {
		cfg.BannerInterval = domain.DefaultBannerInterval
	}
	if cfg.BannerImages == nil {
		cfg.BannerImages = []domain.BannerImage{}
	}
}

func applySEODefaults(seo *domain.SEOHome) {
	if seo.TwitterCard == "" {
		seo.TwitterCard = domain.DefaultTwitterCard
	}
	if seo.Viewport == "" {
		seo.Viewport = domain.DefaultViewport
	}
}

func validateSchedule(s domain.WeeklySchedule) error {
	for _, day := range []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	} {
		hours := s.Day(day)
		for _, value := range []string{hours.Open, hours.Close} {
			if value == "" {
				continue
			}
			if _, err := time.Parse("15:04", value); err != nil {
				return fmt.Errorf("%s hours %q are not HH:MM: %w", day, value, domain.ErrInvalidInput)
			}
		}
	}
	return nil
}
