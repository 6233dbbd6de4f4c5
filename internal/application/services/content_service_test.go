package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	impl "github.com/Nguyenkim2108/league-scheude/internal/application/services"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/content"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/cache"
	"github.com/Nguyenkim2108/league-scheude/internal/mocks"
)

func newContentService(t *testing.T) (*impl.ContentService, *mocks.RemoteStore) {
	t.Helper()
	remote := mocks.NewRemoteStore()
	clk := newTestClock()
	store := cache.NewStore(remote, nil, cache.WithClock(clk.Now))
	return impl.NewContentService(store, nil).WithClock(clk.Now), remote
}

var validBanner = content.BannerRequest{ImageURL: "https://cdn.example.com/a.png", LinkHref: "https://example.com"}

func TestContentService_BannerLifecycle(t *testing.T) {
	svc, remote := newContentService(t)
	ctx := context.Background()

	banners := svc.GetBanners(ctx)
	require.Empty(t, banners.Banner1)
	require.NotNil(t, banners.Banner2)

	b, total, err := svc.AddBanner(ctx, content.SlotBanner1, validBanner)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.NotEmpty(t, b.ID)
	require.Nil(t, b.UpdatedAt)
	require.Zero(t, remote.TTL("banner1"), "banners are permanent")

	_, total, err = svc.AddBanner(ctx, content.SlotBanner1, validBanner)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	updated, err := svc.UpdateBanner(ctx, content.SlotBanner1, b.ID, content.BannerRequest{ImageURL: "https://cdn.example.com/b.png", LinkHref: "https://example.com/b"})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/b.png", updated.ImageURL)
	require.NotNil(t, updated.UpdatedAt)

	removed, remaining, err := svc.DeleteBanner(ctx, content.SlotBanner1, b.ID)
	require.NoError(t, err)
	require.Equal(t, b.ID, removed.ID)
	require.Equal(t, 1, remaining)

	banners = svc.GetBanners(ctx)
	require.Len(t, banners.Banner1, 1)
	require.Empty(t, banners.Banner2)
}

func TestContentService_BannerErrors(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	_, _, err := svc.AddBanner(ctx, content.SlotBanner2, content.BannerRequest{ImageURL: "https://x.com/a.png"})
	require.ErrorIs(t, err, content.ErrMissingField)
	_, _, err = svc.AddBanner(ctx, content.SlotBanner2, content.BannerRequest{ImageURL: "not a url", LinkHref: "https://x.com"})
	require.ErrorIs(t, err, content.ErrInvalidURL)

	_, err = svc.UpdateBanner(ctx, content.SlotBanner2, "missing", validBanner)
	require.ErrorIs(t, err, content.ErrBannerNotFound)
	_, _, err = svc.DeleteBanner(ctx, content.SlotBanner2, "missing")
	require.ErrorIs(t, err, content.ErrBannerNotFound)
}

func TestContentService_Video(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	require.Nil(t, svc.GetVideo(ctx))

	v, err := svc.SetVideo(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Equal(t, "dQw4w9WgXcQ", v.VideoID)
	require.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", v.EmbedURL)
	require.Equal(t, "dQw4w9WgXcQ", svc.GetVideo(ctx).VideoID)

	_, err = svc.SetVideo(ctx, "https://vimeo.com/123")
	require.ErrorIs(t, err, content.ErrInvalidYouTubeURL)
	require.NotNil(t, svc.GetVideo(ctx), "failed update keeps the old video")

	svc.DeleteVideo(ctx)
	require.Nil(t, svc.GetVideo(ctx))
}

func TestContentService_VideoDeleteDenied(t *testing.T) {
	svc, remote := newContentService(t)
	remote.DenyDel = true
	ctx := context.Background()

	_, err := svc.SetVideo(ctx, "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	svc.DeleteVideo(ctx)
	require.Nil(t, svc.GetVideo(ctx))
	raw, _ := remote.Raw(content.KeyVideo)
	require.Equal(t, cache.Tombstone, raw)
}

func TestContentService_Socials(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	require.NotNil(t, svc.GetSocials(ctx))
	require.Empty(t, svc.GetSocials(ctx))

	socials := []content.Social{
		{Type: "facebook", Link: "https://facebook.com/page"},
		{Type: "phone", Link: "tel:+84123456789"},
		{Type: "email", Link: "mailto:hi@example.com"},
	}
	saved, err := svc.SetSocials(ctx, socials)
	require.NoError(t, err)
	require.Equal(t, socials, saved)
	require.Equal(t, socials, svc.GetSocials(ctx))

	_, err = svc.SetSocials(ctx, nil)
	require.ErrorIs(t, err, content.ErrMissingField)
	_, err = svc.SetSocials(ctx, []content.Social{{Type: "x", Link: "nope"}})
	require.ErrorIs(t, err, content.ErrInvalidURL)

	saved, err = svc.SetSocials(ctx, []content.Social{})
	require.NoError(t, err)
	require.Empty(t, saved)
	require.Empty(t, svc.GetSocials(ctx))
}

func TestContentService_Popup(t *testing.T) {
	svc, _ := newContentService(t)
	ctx := context.Background()

	require.Nil(t, svc.GetPopup(ctx))

	p, err := svc.SetPopup(ctx, content.PopupRequest{ImageURL: "https://cdn.example.com/p.png", LinkURL: "https://example.com/promo"})
	require.NoError(t, err)
	require.Equal(t, newTestClock().Now(), p.UpdatedAt)
	require.Equal(t, "https://example.com/promo", svc.GetPopup(ctx).LinkURL)

	_, err = svc.SetPopup(ctx, content.PopupRequest{ImageURL: "https://cdn.example.com/p.png"})
	require.ErrorIs(t, err, content.ErrMissingField)

	svc.DeletePopup(ctx)
	require.Nil(t, svc.GetPopup(ctx))
}

func TestContentService_DegradedWritesStillServe(t *testing.T) {
	svc, remote := newContentService(t)
	remote.Down = true
	ctx := context.Background()

	_, _, err := svc.AddBanner(ctx, content.SlotBanner1, validBanner)
	require.NoError(t, err)
	require.Len(t, svc.GetBanners(ctx).Banner1, 1)
}
