package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/usecase"
)

const (
	testAdminEmail    = "owner@shop.test"
	testAdminPassword = "s3cret-Pass"
	testJWTSecret     = "jwt-secret"
)

type testServer struct {
	router     *gin.Engine
	categories domain.CategoryRepository
	products   domain.ProductRepository
	stores     usecase.StoreUseCase
	token      string
	cookies    []*http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()

	docs := repository.NewMemoryDocumentStore()
	categoryRepo := repository.NewCategoryRepository(docs, logger)
	productRepo := repository.NewProductRepository(docs, logger)
	storeUseCase := usecase.NewStoreUseCase(repository.NewStoreRepository(docs, logger), logger)
	cartUseCase := usecase.NewCartUseCase(session.NewMemoryCartStore(), productRepo, storeUseCase, usecase.CartSettings{
		TTL:              time.Hour,
		FallbackWhatsApp: "+1 555 0100",
	}, logger)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	authUseCase := usecase.NewAuthUseCase(usecase.AuthSettings{
		AdminEmail:        testAdminEmail,
		AdminPasswordHash: string(hash),
		JWTSecret:         testJWTSecret,
		TokenTTL:          time.Hour,
	}, logger)

	router := gin.New()
	categoryHandler := NewCategoryHandler(usecase.NewCategoryUseCase(categoryRepo, logger), logger)
	productHandler := NewProductHandler(usecase.NewProductUseCase(productRepo, categoryRepo, logger), logger)
	storeHandler := NewStoreHandler(storeUseCase, logger)
	authHandler := NewAuthHandler(authUseCase, logger)

	NewStorefrontHandler(usecase.NewStorefrontUseCase(categoryRepo, productRepo, storeUseCase, logger), cartUseCase, logger).RegisterRoutes(router)
	NewHealthHandler(func(context.Context) bool { return true }, logger).RegisterRoutes(router)
	authHandler.RegisterRoutes(router)

	api := router.Group("/api")
	categoryHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)
	storeHandler.RegisterRoutes(api)
	NewCartHandler(cartUseCase, logger).RegisterRoutes(api)

	admin := router.Group("/admin",
		middleware.JWTMiddleware(testJWTSecret, logger),
		middleware.AdminOnly(testAdminEmail, logger),
	)
	categoryHandler.RegisterAdminRoutes(admin)
	productHandler.RegisterAdminRoutes(admin)
	storeHandler.RegisterAdminRoutes(admin)
	authHandler.RegisterAdminRoutes(admin)

	return &testServer{
		router:     router,
		categories: categoryRepo,
		products:   productRepo,
		stores:     storeUseCase,
	}
}

// do sends a request, replaying and collecting cookies like a browser.
func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req)
}

func (s *testServer) admin(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	if s.token == "" {
		w := s.do(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    testAdminEmail,
			"password": testAdminPassword,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Data usecase.AuthToken
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		s.token = resp.Data.Token
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+s.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req)
}

func (s *testServer) send(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		s.cookies = append(s.cookies, c)
	}
	return w
}

func (s *testServer) seedCategory(t *testing.T, name, parentID string) domain.CategoryRecord {
	t.Helper()
	created, err := s.categories.CreateCategory(context.Background(), &domain.CategoryRecord{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return *created
}

func (s *testServer) seedProduct(t *testing.T, title string, price float64, categoryID string) domain.ProductRecord {
	t.Helper()
	created, err := s.products.CreateProduct(context.Background(), &domain.ProductRecord{Title: title, Price: price, Category: categoryID})
	require.NoError(t, err)
	return *created
}

// envelope decodes a Response whose Data is unmarshalled into data.
func envelope(t *testing.T, w *httptest.ResponseRecorder, data any) Response {
	t.Helper()
	var resp struct {
		Status  string
		Message string
		Data    json.RawMessage
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return Response{Status: resp.Status, Message: resp.Message}
}
