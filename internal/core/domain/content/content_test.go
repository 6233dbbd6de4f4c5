package content_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/content"
)

func TestParseSlot(t *testing.T) {
	s, err := content.ParseSlot("banner2")
	require.NoError(t, err)
	require.Equal(t, content.SlotBanner2, s)

	_, err = content.ParseSlot("banner3")
	require.ErrorIs(t, err, content.ErrInvalidSlot)
}

func TestParseYouTubeID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://youtube.com/watch?feature=share&v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                          "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":             "dQw4w9WgXcQ",
		"https://www.youtube.com/live/dQw4w9WgXcQ?si=abc":       "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ":                 "dQw4w9WgXcQ",
	}
	for in, want := range cases {
		got, err := content.ParseYouTubeID(in)
		if assert.NoError(t, err, in) {
			assert.Equal(t, want, got, in)
		}
	}

	for _, in := range []string{"https://vimeo.com/12345678901", "https://youtu.be/short", ""} {
		_, err := content.ParseYouTubeID(in)
		assert.ErrorIs(t, err, content.ErrInvalidYouTubeURL, in)
	}
}

func TestNewVideo(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v, err := content.NewVideo("https://youtu.be/dQw4w9WgXcQ", now)
	require.NoError(t, err)
	require.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", v.EmbedURL)
	require.Equal(t, now, v.UpdatedAt)

	_, err = content.NewVideo("", now)
	require.ErrorIs(t, err, content.ErrMissingField)
}

func TestBannerRequest_Validate(t *testing.T) {
	require.NoError(t, content.BannerRequest{ImageURL: "https://a.com/x.png", LinkHref: "http://b.com"}.Validate())
	require.ErrorIs(t, content.BannerRequest{ImageURL: "https://a.com/x.png"}.Validate(), content.ErrMissingField)
	require.ErrorIs(t, content.BannerRequest{ImageURL: "/x.png", LinkHref: "http://b.com"}.Validate(), content.ErrInvalidURL)
	require.ErrorIs(t, content.BannerRequest{ImageURL: "https://", LinkHref: "http://b.com"}.Validate(), content.ErrInvalidURL)
}

func TestPopupRequest_Validate(t *testing.T) {
	require.NoError(t, content.PopupRequest{ImageURL: "https://a.com/x.png", LinkURL: "https://b.com"}.Validate())
	require.ErrorIs(t, content.PopupRequest{LinkURL: "https://b.com"}.Validate(), content.ErrMissingField)
	require.ErrorIs(t, content.PopupRequest{ImageURL: "x", LinkURL: "https://b.com"}.Validate(), content.ErrInvalidURL)
}

func TestValidateSocials(t *testing.T) {
	require.NoError(t, content.ValidateSocials(nil))
	require.NoError(t, content.ValidateSocials([]content.Social{
		{Type: "zalo", Link: "https://zalo.me/123"},
		{Type: "phone", Link: "tel:0123"},
		{Type: "email", Link: "mailto:a@b.com"},
	}))
	require.ErrorIs(t, content.ValidateSocials([]content.Social{{Type: "fb"}}), content.ErrMissingField)
	require.ErrorIs(t, content.ValidateSocials([]content.Social{{Type: "fb", Link: "facebook.com/x"}}), content.ErrInvalidURL)
}
