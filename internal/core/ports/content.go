package ports

import (
	"context"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/content"
)

// ContentService manages the promotional documents. Updates are
// read-modify-write without compare-and-swap: concurrent admin edits to the
// same banner slot can lose updates.
type ContentService interface {
	GetBanners(ctx context.Context) *content.Banners
	AddBanner(ctx context.Context, slot content.BannerSlot, req content.BannerRequest) (*content.Banner, int, error)
	UpdateBanner(ctx context.Context, slot content.BannerSlot, id string, req content.BannerRequest) (*content.Banner, error)
	DeleteBanner(ctx context.Context, slot content.BannerSlot, id string) (*content.Banner, int, error)

	GetVideo(ctx context.Context) *content.Video
	SetVideo(ctx context.Context, youtubeURL string) (*content.Video, error)
	DeleteVideo(ctx context.Context)

	GetSocials(ctx context.Context) []content.Social
	SetSocials(ctx context.Context, socials []content.Social) ([]content.Social, error)

	GetPopup(ctx context.Context) *content.Popup
	SetPopup(ctx context.Context, req content.PopupRequest) (*content.Popup, error)
	DeletePopup(ctx context.Context)
}
