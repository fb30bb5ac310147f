package delivery

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

func TestStoreInfoRoundTrip(t *testing.T) {
	s := newTestServer(t)

	w := s.admin(t, http.MethodPut, "/admin/store/info", map[string]any{
		"storeName": "Corner Shop",
		"whatsapp":  "+1 555 0199",
		"schedule": map[string]any{
			"monday": map[string]string{"open": "09:00", "close": "17:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.admin(t, http.MethodPut, "/admin/store/info", map[string]any{
		"schedule": map[string]any{
			"monday": map[string]string{"open": "9am", "close": "17:00"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var info domain.StoreInfo
	w = s.admin(t, http.MethodGet, "/admin/store/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope(t, w, &info)
	assert.Equal(t, "Corner Shop", info.StoreName)
	assert.Equal(t, "09:00", info.Schedule.Monday.Open)
}

func TestDesignAndSEODefaults(t *testing.T) {
	s := newTestServer(t)

	var design domain.DesignConfig
	w := s.admin(t, http.MethodGet, "/admin/store/design", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope(t, w, &design)
	assert.Equal(t, domain.DefaultBannerInterval, design.BannerInterval)

	w = s.admin(t, http.MethodPut, "/admin/store/design", map[string]any{"bannerInterval": -3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.admin(t, http.MethodPut, "/admin/store/design", map[string]any{
		"bannerInterval": 8,
		"bannerImages":   []map[string]string{{"url": "https://img.test/a.png"}, {"url": " "}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	envelope(t, w, &design)
	assert.Equal(t, 8, design.BannerInterval)
	assert.Len(t, design.BannerImages, 1)

	var seo domain.SEOHome
	w = s.admin(t, http.MethodPut, "/admin/store/seo", map[string]any{"titleTag": "Corner Shop"})
	require.Equal(t, http.StatusOK, w.Code)
	envelope(t, w, &seo)
	assert.Equal(t, domain.DefaultTwitterCard, seo.TwitterCard)
	assert.Equal(t, domain.DefaultViewport, seo.Viewport)
}

func TestPublicStore(t *testing.T) {
	s := newTestServer(t)

	w := s.admin(t, http.MethodPut, "/admin/store/info", map[string]any{
		"storeName": "Corner Shop",
		"schedule": map[string]any{
			"monday": map[string]string{"open": "09:00", "close": "17:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	logger, _ := test.NewNullLogger()
	handler := NewStoreHandler(s.stores, logger)
	router := gin.New()
	handler.RegisterRoutes(router)

	for _, tc := range []struct {
		at   time.Time
		open bool
	}{
		{time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), true},  // Monday
		{time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC), false}, // Monday evening
		{time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), false}, // Tuesday, no hours
	} {
		handler.now = func() time.Time { return tc.at }
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/store", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var public publicStore
		envelope(t, rec, &public)
		require.NotNil(t, public.Info)
		assert.Equal(t, "Corner Shop", public.Info.StoreName)
		require.NotNil(t, public.Design)
		assert.Equal(t, domain.DefaultBannerInterval, public.Design.BannerInterval)
		assert.Equal(t, tc.open, public.OpenNow, tc.at.String())
	}
}
