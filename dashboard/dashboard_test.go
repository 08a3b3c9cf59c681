package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villa-client/api"
	"villa-client/config"
	"villa-client/models"
	"villa-client/utils"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// fakeBackend is an in-memory villa platform for dashboard tests.
type fakeBackend struct {
	mu       sync.Mutex
	villas   []models.Villa
	bookings []models.Booking

	deleted     []int64
	requests    []string // method+path log, in arrival order
	failUploads map[string]bool
	nextVillaID int64
}

func (f *fakeBackend) record(r *http.Request) {
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/villas", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r)
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(f.villas)
		case http.MethodPost:
			var req models.NewVillaRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.nextVillaID++
			villa := models.Villa{
				ID: f.nextVillaID, Name: req.Name, Location: req.Location,
				Price: req.Price, MainImage: req.MainImage,
				Images: models.StringList(req.Images), Features: models.StringList(req.Features),
				Guests: req.Guests, Status: models.VillaPending,
			}
			f.villas = append(f.villas, villa)
			json.NewEncoder(w).Encode(villa)
		}
	})

	mux.HandleFunc("/api/villas/owner/my-villas", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r)
		json.NewEncoder(w).Encode(f.villas)
	})

	mux.HandleFunc("/api/villas/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r)
		rest := strings.TrimPrefix(r.URL.Path, "/api/villas/")
		switch {
		case r.Method == http.MethodPut && strings.HasSuffix(rest, "/status"):
			var body struct {
				Status models.VillaStatus `json:"status"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			id := strings.TrimSuffix(rest, "/status")
			for i := range f.villas {
				if idOf(f.villas[i].ID) == id {
					f.villas[i].Status = body.Status
				}
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		case r.Method == http.MethodDelete:
			for i := range f.villas {
				if idOf(f.villas[i].ID) == rest {
					f.deleted = append(f.deleted, f.villas[i].ID)
					f.villas = append(f.villas[:i], f.villas[i+1:]...)
					break
				}
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
		}
	})

	mux.HandleFunc("/api/bookings/admin-all", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r)
		json.NewEncoder(w).Encode(f.bookings)
	})

	mux.HandleFunc("/api/bookings/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r)
		rest := strings.TrimPrefix(r.URL.Path, "/api/bookings/")
		if r.Method == http.MethodPut && strings.HasSuffix(rest, "/status") {
			var body struct {
				Status models.BookingStatus `json:"status"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			id := strings.TrimSuffix(rest, "/status")
			for i := range f.bookings {
				if idOf(f.bookings[i].ID) == id {
					f.bookings[i].Status = body.Status
				}
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}
	})

	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseMultipartForm(4 << 20)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "bad upload"})
			return
		}
		_, header, err := r.FormFile("image")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "missing image field"})
			return
		}
		if f.failUploads[header.Filename] {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "storage unavailable"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"imageUrl": "/uploads/" + header.Filename})
	})

	return mux
}

func idOf(id int64) string {
	return strconv.FormatInt(id, 10)
}

func newTestClient(t *testing.T, backend *fakeBackend) *api.Client {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)
	cfg := &config.Config{
		APIBaseURL:     server.URL,
		RequestTimeout: 5 * time.Second,
		RateLimitRPS:   1000,
		RateLimitBurst: 100,
	}
	return api.NewClient(cfg, staticToken("tok"), utils.NewSilentLogger())
}

func seedVillas() []models.Villa {
	return []models.Villa{
		{ID: 1, Name: "Villa Sari", Status: models.VillaPending},
		{ID: 2, Name: "Villa Biru", Status: models.VillaApproved},
		{ID: 3, Name: "Villa Batu", Status: models.VillaRejected},
		{ID: 4, Name: "Villa Uma", Status: models.VillaPending},
	}
}

func TestAdminVillaFilterDefaultsToPending(t *testing.T) {
	backend := &fakeBackend{villas: seedVillas()}
	admin := NewAdmin(newTestClient(t, backend), utils.NewSilentLogger())

	require.NoError(t, admin.FetchVillas(context.Background()))

	assert.Equal(t, string(models.VillaPending), admin.VillaFilter())
	names := villaNames(admin.Villas())
	assert.Equal(t, []string{"Villa Sari", "Villa Uma"}, names)
}

func TestAdminVillaFilterSwitches(t *testing.T) {
	backend := &fakeBackend{villas: seedVillas()}
	admin := NewAdmin(newTestClient(t, backend), utils.NewSilentLogger())
	require.NoError(t, admin.FetchVillas(context.Background()))

	admin.SetVillaFilter(FilterAll)
	assert.Len(t, admin.Villas(), 4)

	admin.SetVillaFilter(string(models.VillaApproved))
	assert.Equal(t, []string{"Villa Biru"}, villaNames(admin.Villas()))

	admin.SetVillaFilter(string(models.VillaRejected))
	assert.Equal(t, []string{"Villa Batu"}, villaNames(admin.Villas()))
}

func TestAdminApproveVillaRefetches(t *testing.T) {
	backend := &fakeBackend{villas: seedVillas()}
	admin := NewAdmin(newTestClient(t, backend), utils.NewSilentLogger())
	ctx := context.Background()
	require.NoError(t, admin.FetchVillas(ctx))

	require.NoError(t, admin.ApproveVilla(ctx, 1))

	// The local list reflects the server's state, not a client-side patch.
	admin.SetVillaFilter(string(models.VillaApproved))
	assert.Equal(t, []string{"Villa Sari", "Villa Biru"}, villaNames(admin.Villas()))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Contains(t, backend.requests, "PUT /api/villas/1/status")
}

func TestAdminRejectVilla(t *testing.T) {
	backend := &fakeBackend{villas: seedVillas()}
	admin := NewAdmin(newTestClient(t, backend), utils.NewSilentLogger())
	ctx := context.Background()
	require.NoError(t, admin.FetchVillas(ctx))

	require.NoError(t, admin.RejectVilla(ctx, 4))

	admin.SetVillaFilter(string(models.VillaRejected))
	assert.Equal(t, []string{"Villa Batu", "Villa Uma"}, villaNames(admin.Villas()))
}

func TestAdminBookingTransitions(t *testing.T) {
	backend := &fakeBackend{bookings: []models.Booking{
		{ID: 10, FirstName: "Ayu", Status: models.BookingPending},
		{ID: 11, FirstName: "Ketut", Status: models.BookingPending},
	}}
	admin := NewAdmin(newTestClient(t, backend), utils.NewSilentLogger())
	ctx := context.Background()
	require.NoError(t, admin.FetchBookings(ctx))

	require.NoError(t, admin.ApproveBooking(ctx, 10))
	require.NoError(t, admin.RejectBooking(ctx, 11))

	bookings := admin.Bookings()
	require.Len(t, bookings, 2)
	assert.Equal(t, models.BookingConfirmed, bookings[0].Status)
	assert.Equal(t, models.BookingCancelled, bookings[1].Status)
}

func TestVillaActionEnabled(t *testing.T) {
	tests := []struct {
		status  models.VillaStatus
		target  models.VillaStatus
		enabled bool
	}{
		{models.VillaPending, models.VillaApproved, true},
		{models.VillaPending, models.VillaRejected, true},
		{models.VillaApproved, models.VillaApproved, false},
		{models.VillaApproved, models.VillaRejected, true},
		{models.VillaRejected, models.VillaRejected, false},
		{models.VillaRejected, models.VillaApproved, true},
	}
	for _, tt := range tests {
		got := VillaActionEnabled(models.Villa{Status: tt.status}, tt.target)
		assert.Equal(t, tt.enabled, got, "%s -> %s", tt.status, tt.target)
	}
}

func TestBookingActionEnabled(t *testing.T) {
	tests := []struct {
		status  models.BookingStatus
		target  models.BookingStatus
		enabled bool
	}{
		{models.BookingPending, models.BookingConfirmed, true},
		{models.BookingPending, models.BookingCancelled, true},
		{models.BookingConfirmed, models.BookingConfirmed, false},
		{models.BookingConfirmed, models.BookingCancelled, true},
		{models.BookingCancelled, models.BookingCancelled, false},
	}
	for _, tt := range tests {
		got := BookingActionEnabled(models.Booking{Status: tt.status}, tt.target)
		assert.Equal(t, tt.enabled, got, "%s -> %s", tt.status, tt.target)
	}
}

func validVillaForm() models.NewVillaRequest {
	return models.NewVillaRequest{
		Name:        "Villa Taman",
		Location:    "Canggu",
		Description: "Two-storey villa near the beach",
		Price:       1_500_000,
		Guests:      4,
		Features:    []string{"Free Wifi", "Pool"},
	}
}

func TestOwnerAddVillaUploadsMainBeforeCreate(t *testing.T) {
	backend := &fakeBackend{}
	owner := NewOwner(newTestClient(t, backend), utils.NewSilentLogger(), 2)

	villa, err := owner.AddVilla(context.Background(), validVillaForm(),
		&ImageUpload{Name: "main.jpg", Content: strings.NewReader("img")},
		[]ImageUpload{
			{Name: "a.jpg", Content: strings.NewReader("a")},
			{Name: "b.jpg", Content: strings.NewReader("b")},
		})

	require.NoError(t, err)
	assert.Equal(t, "/uploads/main.jpg", villa.MainImage)
	assert.Equal(t, models.VillaPending, villa.Status)
	assert.Len(t, villa.Images, 2)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Equal(t, "POST /api/upload", backend.requests[0], "main image uploads before anything else")
	assert.Equal(t, "POST /api/villas", backend.requests[len(backend.requests)-1])
}

func TestOwnerAddVillaToleratesExtraUploadFailure(t *testing.T) {
	backend := &fakeBackend{failUploads: map[string]bool{"broken.jpg": true}}
	owner := NewOwner(newTestClient(t, backend), utils.NewSilentLogger(), 2)

	villa, err := owner.AddVilla(context.Background(), validVillaForm(),
		&ImageUpload{Name: "main.jpg", Content: strings.NewReader("img")},
		[]ImageUpload{
			{Name: "ok.jpg", Content: strings.NewReader("a")},
			{Name: "broken.jpg", Content: strings.NewReader("b")},
		})

	require.NoError(t, err, "one failed secondary upload must not abort the submission")
	assert.Equal(t, models.StringList{"/uploads/ok.jpg"}, villa.Images)
}

func TestOwnerAddVillaRequiresMainImage(t *testing.T) {
	backend := &fakeBackend{}
	owner := NewOwner(newTestClient(t, backend), utils.NewSilentLogger(), 2)

	_, err := owner.AddVilla(context.Background(), validVillaForm(), nil, nil)
	require.Error(t, err)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Empty(t, backend.requests, "nothing reaches the server without a main image")
}

func TestOwnerAddVillaValidatesForm(t *testing.T) {
	backend := &fakeBackend{}
	owner := NewOwner(newTestClient(t, backend), utils.NewSilentLogger(), 2)

	form := validVillaForm()
	form.Name = ""
	_, err := owner.AddVilla(context.Background(), form,
		&ImageUpload{Name: "main.jpg", Content: strings.NewReader("img")}, nil)
	require.Error(t, err)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Empty(t, backend.requests)
}

func TestOwnerDeleteDeclined(t *testing.T) {
	backend := &fakeBackend{villas: seedVillas()}
	owner := NewOwner(newTestClient(t, backend), utils.NewSilentLogger(), 2)

	deleted, err := owner.Delete(context.Background(), 1, func(int64) bool { return false })
	require.NoError(t, err)
	assert.False(t, deleted)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Empty(t, backend.deleted, "a declined confirm leaves the record untouched")
}

func TestOwnerDeleteConfirmed(t *testing.T) {
	backend := &fakeBackend{villas: seedVillas()}
	owner := NewOwner(newTestClient(t, backend), utils.NewSilentLogger(), 2)

	deleted, err := owner.Delete(context.Background(), 1, func(int64) bool { return true })
	require.NoError(t, err)
	assert.True(t, deleted)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, []int64{1}, backend.deleted)
}

func TestOwnerEditIsStubbed(t *testing.T) {
	owner := NewOwner(newTestClient(t, &fakeBackend{}), utils.NewSilentLogger(), 2)
	assert.ErrorIs(t, owner.Edit(1), ErrEditNotImplemented)
}

func TestOwnerMyVillas(t *testing.T) {
	backend := &fakeBackend{villas: seedVillas()}
	owner := NewOwner(newTestClient(t, backend), utils.NewSilentLogger(), 2)

	villas, err := owner.MyVillas(context.Background())
	require.NoError(t, err)
	assert.Len(t, villas, 4)
}

func villaNames(villas []models.Villa) []string {
	names := make([]string, 0, len(villas))
	for _, v := range villas {
		names = append(names, v.Name)
	}
	return names
}
