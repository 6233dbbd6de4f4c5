package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/content"
	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
)

// ContentService stores the promotional documents as permanent cache entries.
type ContentService struct {
	cache  ports.CacheStore
	logger *logrus.Logger
	now    func() time.Time
	newID  func() string
}

func NewContentService(cache ports.CacheStore, logger *logrus.Logger) *ContentService {
	return &ContentService{cache: cache, logger: logger, now: time.Now, newID: uuid.NewString}
}

// WithClock replaces time.Now for document timestamps.
func (s *ContentService) WithClock(now func() time.Time) *ContentService {
	s.now = now
	return s
}

func (s *ContentService) GetBanners(ctx context.Context) *content.Banners {
	return &content.Banners{
		Banner1: s.banners(ctx, content.SlotBanner1),
		Banner2: s.banners(ctx, content.SlotBanner2),
	}
}

func (s *ContentService) AddBanner(ctx context.Context, slot content.BannerSlot, req content.BannerRequest) (*content.Banner, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	list := s.banners(ctx, slot)
	b := content.Banner{
		ID:        s.newID(),
		ImageURL:  req.ImageURL,
		LinkHref:  req.LinkHref,
		CreatedAt: s.now().UTC(),
	}
	list = append(list, b)
	if err := s.store(ctx, string(slot), list); err != nil {
		return nil, 0, err
	}
	return &b, len(list), nil
}

func (s *ContentService) UpdateBanner(ctx context.Context, slot content.BannerSlot, id string, req content.BannerRequest) (*content.Banner, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	list := s.banners(ctx, slot)
	i := findBanner(list, id)
	if i < 0 {
		return nil, content.ErrBannerNotFound
	}
	now := s.now().UTC()
	list[i].ImageURL = req.ImageURL
	list[i].LinkHref = req.LinkHref
	list[i].UpdatedAt = &now
	if err := s.store(ctx, string(slot), list); err != nil {
		return nil, err
	}
	b := list[i]
	return &b, nil
}

func (s *ContentService) DeleteBanner(ctx context.Context, slot content.BannerSlot, id string) (*content.Banner, int, error) {
	list := s.banners(ctx, slot)
	i := findBanner(list, id)
	if i < 0 {
		return nil, 0, content.ErrBannerNotFound
	}
	removed := list[i]
	list = append(list[:i], list[i+1:]...)
	if err := s.store(ctx, string(slot), list); err != nil {
		return nil, 0, err
	}
	return &removed, len(list), nil
}

func (s *ContentService) GetVideo(ctx context.Context) *content.Video {
	v, ok := ports.Decode[content.Video](s.cache.Get(ctx, content.KeyVideo))
	if !ok {
		return nil
	}
	return &v
}

func (s *ContentService) SetVideo(ctx context.Context, youtubeURL string) (*content.Video, error) {
	v, err := content.NewVideo(youtubeURL, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, content.KeyVideo, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *ContentService) DeleteVideo(ctx context.Context) {
	s.cache.Delete(ctx, content.KeyVideo)
}

func (s *ContentService) GetSocials(ctx context.Context) []content.Social {
	socials, ok := ports.Decode[[]content.Social](s.cache.Get(ctx, content.KeySocials))
	if !ok || socials == nil {
		return []content.Social{}
	}
	return socials
}

func (s *ContentService) SetSocials(ctx context.Context, socials []content.Social) ([]content.Social, error) {
	if socials == nil {
		return nil, fmt.Errorf("%w: socials must be a list", content.ErrMissingField)
	}
	if err := content.ValidateSocials(socials); err != nil {
		return nil, err
	}
	if err := s.store(ctx, content.KeySocials, socials); err != nil {
		return nil, err
	}
	return socials, nil
}

func (s *ContentService) GetPopup(ctx context.Context) *content.Popup {
	p, ok := ports.Decode[content.Popup](s.cache.Get(ctx, content.KeyPopup))
	if !ok {
		return nil
	}
	return &p
}

func (s *ContentService) SetPopup(ctx context.Context, req content.PopupRequest) (*content.Popup, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := &content.Popup{ImageURL: req.ImageURL, LinkURL: req.LinkURL, UpdatedAt: s.now().UTC()}
	if err := s.store(ctx, content.KeyPopup, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ContentService) DeletePopup(ctx context.Context) {
	s.cache.Delete(ctx, content.KeyPopup)
}

func (s *ContentService) banners(ctx context.Context, slot content.BannerSlot) []content.Banner {
	list, ok := ports.Decode[[]content.Banner](s.cache.Get(ctx, string(slot)))
	if !ok || list == nil {
		return []content.Banner{}
	}
	return list
}

// store writes a permanent document. Only an unencodable value fails; backend
// failures degrade inside the cache.
func (s *ContentService) store(ctx context.Context, key string, v any) error {
	res := s.cache.Set(ctx, key, v, 0)
	if res.Outcome == ports.OutcomeRejected {
		return fmt.Errorf("store %s: %w", key, res.Err)
	}
	if res.Degraded() && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": key}).Warn("content saved to local cache only")
	}
	return nil
}

func findBanner(list []content.Banner, id string) int {
	for i, b := range list {
		if b.ID == id {
			return i
		}
	}
	return -1
}
