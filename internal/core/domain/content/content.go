package content

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidSlot       = errors.New("type must be banner1 or banner2")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidURL        = errors.New("invalid URL")
	ErrInvalidYouTubeURL = errors.New("invalid YouTube URL")
	ErrBannerNotFound    = errors.New("banner not found")
)

// Document keys. Documents are permanent cache entries.
const (
	KeyVideo   = "video_frame"
	KeySocials = "socials"
	KeyPopup   = "popup"
)

// BannerSlot is one of the two banner positions; the slot name is also its
// cache key.
type BannerSlot string

const (
	SlotBanner1 BannerSlot = "banner1"
	SlotBanner2 BannerSlot = "banner2"
)

func ParseSlot(s string) (BannerSlot, error) {
	switch BannerSlot(s) {
	case SlotBanner1, SlotBanner2:
		return BannerSlot(s), nil
	}
	return "", ErrInvalidSlot
}

type Banner struct {
	ID        string     `json:"id"`
	ImageURL  string     `json:"image_url"`
	LinkHref  string     `json:"link_href"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type BannerRequest struct {
	ImageURL string `json:"image_url"`
	LinkHref string `json:"link_href"`
}

func (r BannerRequest) Validate() error {
	if r.ImageURL == "" || r.LinkHref == "" {
		return fmt.Errorf("%w: image_url and link_href are required", ErrMissingField)
	}
	if !IsAbsoluteURL(r.ImageURL) || !IsAbsoluteURL(r.LinkHref) {
		return ErrInvalidURL
	}
	return nil
}

// Banners is the public view of both slots.
type Banners struct {
	Banner1 []Banner `json:"banner1"`
	Banner2 []Banner `json:"banner2"`
}

type Video struct {
	YouTubeURL string    `json:"youtube_url"`
	VideoID    string    `json:"video_id"`
	EmbedURL   string    `json:"embed_url"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var youtubeRe = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?|live)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ParseYouTubeID extracts the 11 character video id.
func ParseYouTubeID(raw string) (string, error) {
	m := youtubeRe.FindStringSubmatch(raw)
	if m == nil {
		return "", ErrInvalidYouTubeURL
	}
	return m[1], nil
}

// NewVideo builds the stored video document from a YouTube URL.
func NewVideo(youtubeURL string, now time.Time) (*Video, error) {
	if youtubeURL == "" {
		return nil, fmt.Errorf("%w: youtube_url is required", ErrMissingField)
	}
	id, err := ParseYouTubeID(youtubeURL)
	if err != nil {
		return nil, err
	}
	return &Video{
		YouTubeURL: youtubeURL,
		VideoID:    id,
		EmbedURL:   "https://www.youtube.com/embed/" + id,
		UpdatedAt:  now,
	}, nil
}

type Social struct {
	Type string `json:"type"`
	Link string `json:"link"`
}

// ValidateSocials checks every entry; tel: and mailto: links skip URL checks.
func ValidateSocials(socials []Social) error {
	for _, s := range socials {
		if s.Type == "" || s.Link == "" {
			return fmt.Errorf("%w: every social needs type and link", ErrMissingField)
		}
		if strings.HasPrefix(s.Link, "tel:") || strings.HasPrefix(s.Link, "mailto:") {
			continue
		}
		if !IsAbsoluteURL(s.Link) {
			return fmt.Errorf("%w for %s: %s", ErrInvalidURL, s.Type, s.Link)
		}
	}
	return nil
}

type Popup struct {
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PopupRequest struct {
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
}

func (r PopupRequest) Validate() error {
	if r.ImageURL == "" || r.LinkURL == "" {
		return fmt.Errorf("%w: image_url and link_url are required", ErrMissingField)
	}
	if !IsAbsoluteURL(r.ImageURL) || !IsAbsoluteURL(r.LinkURL) {
		return ErrInvalidURL
	}
	return nil
}

// IsAbsoluteURL reports whether s parses with a scheme and, for http(s), a host.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return false
	}
	return true
}
