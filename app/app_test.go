package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villa-client/config"
	"villa-client/models"
	"villa-client/routes"
	"villa-client/utils"
)

// testPlatform fakes the subset of the API the shell touches.
type testPlatform struct {
	villas   []models.Villa
	bookings []models.Booking
}

func (p *testPlatform) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}

		role := models.RoleGuest
		switch req.Email {
		case "admin@example.com":
			role = models.RoleAdmin
		case "owner@example.com":
			role = models.RoleOwner
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "name": "Test User", "email": req.Email, "role": role,
			"token": "tok-" + string(role),
		})
	})

	mux.HandleFunc("/api/villas", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(p.villas)
	})
	mux.HandleFunc("/api/villas/owner/my-villas", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(p.villas)
	})
	mux.HandleFunc("/api/bookings/admin-all", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(p.bookings)
	})
	mux.HandleFunc("/api/bookings/my-bookings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(p.bookings)
	})

	return mux
}

func newTestApp(t *testing.T, platform *testPlatform) (*App, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(platform.handler())
	t.Cleanup(server.Close)

	dir := t.TempDir()
	cfg := &config.Config{
		APIBaseURL:          server.URL,
		RequestTimeout:      5 * time.Second,
		RateLimitRPS:        1000,
		RateLimitBurst:      100,
		SessionFilePath:     filepath.Join(dir, "session.json"),
		PlaceholderImageURL: "https://example.com/placeholder.jpg",
		TaxRate:             0.10,
		UploadConcurrency:   2,
		ExportPath:          filepath.Join(dir, "exports"),
	}

	out := &bytes.Buffer{}
	return New(cfg, utils.NewSilentLogger(), out), out
}

func TestGuardRedirectsUnauthenticatedToLogin(t *testing.T) {
	app, out := newTestApp(t, &testPlatform{})

	require.NoError(t, app.Navigate(context.Background(), "/profile"))

	assert.Equal(t, routes.LoginPath, app.Path())
	assert.Contains(t, out.String(), "LOGIN")
}

func TestGuardForbidsGuestFromAdmin(t *testing.T) {
	app, out := newTestApp(t, &testPlatform{})
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, "guest@example.com", "secret"))

	out.Reset()
	require.NoError(t, app.Navigate(ctx, "/admin"))

	assert.Equal(t, routes.ForbiddenPath, app.Path())
	assert.Contains(t, out.String(), "You do not have access to that page.")
}

func TestGuardForbidsOwnerFromAdmin(t *testing.T) {
	app, _ := newTestApp(t, &testPlatform{})
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, "owner@example.com", "secret"))

	require.NoError(t, app.Navigate(ctx, "/admin"))
	assert.Equal(t, routes.ForbiddenPath, app.Path())
}

func TestLoginWrongPasswordShowsMessageAndStaysPut(t *testing.T) {
	app, out := newTestApp(t, &testPlatform{})
	ctx := context.Background()
	require.NoError(t, app.Navigate(ctx, routes.LoginPath))

	err := app.Login(ctx, "guest@example.com", "wrong")

	require.Error(t, err)
	assert.Contains(t, out.String(), "Invalid credentials")
	assert.Equal(t, routes.LoginPath, app.Path(), "a failed login must not navigate")
	assert.Nil(t, app.Session())
}

func TestLoginRedirectsByRole(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"guest@example.com", "/homepage"},
		{"owner@example.com", "/owner"},
		{"admin@example.com", "/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			app, _ := newTestApp(t, &testPlatform{})
			require.NoError(t, app.Login(context.Background(), tt.email, "secret"))
			assert.Equal(t, tt.want, app.Path())
		})
	}
}

func TestLogoutClearsSessionAndGuardsAgain(t *testing.T) {
	app, _ := newTestApp(t, &testPlatform{})
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, "guest@example.com", "secret"))
	require.NotNil(t, app.Session())

	require.NoError(t, app.Logout(ctx))

	assert.Equal(t, "/", app.Path())
	assert.Nil(t, app.Session())

	require.NoError(t, app.Navigate(ctx, "/homepage"))
	assert.Equal(t, routes.LoginPath, app.Path())
}

func TestOurVillaEmptyState(t *testing.T) {
	app, out := newTestApp(t, &testPlatform{})

	require.NoError(t, app.Navigate(context.Background(), "/our-villa"))

	assert.Contains(t, out.String(), "No approved villas found matching your criteria.")
}

func TestOurVillaShowsOnlyApproved(t *testing.T) {
	platform := &testPlatform{villas: []models.Villa{
		{ID: 1, Name: "Villa Sari", Location: "Ubud", Price: 1_000_000, Status: models.VillaApproved},
		{ID: 2, Name: "Villa Draft", Location: "Kuta", Price: 800_000, Status: models.VillaPending},
	}}
	app, out := newTestApp(t, platform)

	require.NoError(t, app.Navigate(context.Background(), "/our-villa"))

	assert.Contains(t, out.String(), "Villa Sari")
	assert.NotContains(t, out.String(), "Villa Draft")
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	app, out := newTestApp(t, &testPlatform{})

	require.NoError(t, app.Navigate(context.Background(), "/no-such-page"))

	assert.Equal(t, routes.NotFoundPath, app.Path())
	assert.Contains(t, out.String(), "Page not found.")
}

func TestPathShowsConcreteLocation(t *testing.T) {
	app, _ := newTestApp(t, &testPlatform{})
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, "guest@example.com", "secret"))

	// The platform has no villa 7; the page renders its not-found message,
	// but the location is still the page the user navigated to.
	require.NoError(t, app.Navigate(ctx, "/villa-detail/7"))
	assert.Equal(t, "/villa-detail/7", app.Path())

	require.NoError(t, app.Navigate(ctx, "/villa-detail/7/"))
	assert.Equal(t, "/villa-detail/7", app.Path(), "trailing slash is normalized away")
}

func TestExportInvoiceWritesCSV(t *testing.T) {
	platform := &testPlatform{bookings: []models.Booking{{
		ID: 5, VillaID: 7, FirstName: "Ayu", LastName: "Guest",
		Email: "ayu@example.com", Duration: "2 Nights",
		CheckInDate: "2026-09-01", CheckOutDate: "2026-09-03",
		TotalPrice: 2_200_000, Tax: 200_000, Status: models.BookingConfirmed,
	}}}
	app, out := newTestApp(t, platform)
	ctx := context.Background()
	require.NoError(t, app.Login(ctx, "guest@example.com", "secret"))

	require.NoError(t, app.ExportInvoice(ctx, 5))

	path := filepath.Join(app.cfg.ExportPath, "invoice-5.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ayu Guest")
	assert.Contains(t, out.String(), "Invoice saved to")
}
