package domain

import (
	"context"
	"strings"
	"time"
)

type DayHours struct {
	Open  string `json:"open"`  // "HH:MM"
	Close string `json:"close"` // "HH:MM"
}

type WeeklySchedule struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

func (s WeeklySchedule) Day(d time.Weekday) DayHours {
	switch d {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	default:
		return s.Sunday
	}
}

type SocialLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// StoreInfo is the storeInfo/main document.
type StoreInfo struct {
	StoreName      string         `json:"storeName"`
	Subtitle       string         `json:"subtitle"`
	SEODescription string         `json:"seoDescription"`
	StoreType      string         `json:"storeType"`
	Schedule       WeeklySchedule `json:"schedule"`
	LogoURL        string         `json:"logoURL"`
	AvatarURL      string         `json:"avatarURL"`
	WhatsApp       string         `json:"whatsapp"`
	Phone          string         `json:"phone"`
	SocialLinks    []SocialLink   `json:"socialLinks"`
}

// IsOpenAt reports whether t falls inside the opening hours of its weekday.
// A day without both times is closed. A close time earlier than the open
// time means the store closes after midnight.
func (s StoreInfo) IsOpenAt(t time.Time) bool {
	hours := s.Schedule.Day(t.Weekday())
	open, okOpen := minutesOfDay(hours.Open)
	closing, okClose := minutesOfDay(hours.Close)
	if !okOpen || !okClose || open == closing {
		return false
	}
	now := t.Hour()*60 + t.Minute()
	if open < closing {
		return now >= open && now < closing
	}
	return now >= open || now < closing
}

func minutesOfDay(hhmm string) (int, bool) {
	hhmm = strings.TrimSpace(hhmm)
	if hhmm == "" {
		return 0, false
	}
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

type BannerImage struct {
	URL string `json:"url"`
}

// DesignConfig is the storeInfo/designConfig document.
type DesignConfig struct {
	BannerImages    []BannerImage `json:"bannerImages"`
	BannerInterval  int           `json:"bannerInterval"` // seconds
	BackgroundImage string        `json:"backgroundImage"`
}

const DefaultBannerInterval = 5

// SEOHome is the storeInfo/seoHome document.
type SEOHome struct {
	TitleTag           string `json:"titleTag"`
	MetaDescription    string `json:"metaDescription"`
	Keywords           string `json:"keywords"`
	Favicon            string `json:"favicon"`
	OGTitle            string `json:"ogTitle"`
	OGDescription      string `json:"ogDescription"`
	OGImage            string `json:"ogImage"`
	OGURL              string `json:"ogUrl"`
	TwitterCard        string `json:"twitterCard"`
	TwitterTitle       string `json:"twitterTitle"`
	TwitterDescription string `json:"twitterDescription"`
	TwitterImage       string `json:"twitterImage"`
	CanonicalURL       string `json:"canonicalUrl"`
	Viewport           string `json:"viewport"`
}

const (
	DefaultTwitterCard = "summary_large_image"
	DefaultViewport    = "width=device-width, initial-scale=1.0"
)

type StoreRepository interface {
	GetStoreInfo(ctx context.Context) (*StoreInfo, error)
	SaveStoreInfo(ctx context.Context, info *StoreInfo) error
	GetDesignConfig(ctx context.Context) (*DesignConfig, error)
	SaveDesignConfig(ctx context.Context, cfg *DesignConfig) error
	GetSEOHome(ctx context.Context) (*SEOHome, error)
	SaveSEOHome(ctx context.Context, seo *SEOHome) error
}
