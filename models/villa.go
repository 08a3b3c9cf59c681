package models

// VillaStatus is the admin-controlled approval state gating public visibility.
type VillaStatus string

const (
	VillaPending  VillaStatus = "Pending"
	VillaApproved VillaStatus = "Approved"
	VillaRejected VillaStatus = "Rejected"
)

// Villa is a server-owned listing record. The client holds transient copies
// only; every mutation is a round trip.
type Villa struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	MainImage   string      `json:"mainImage"`
	Images      StringList  `json:"images"`
	Features    StringList  `json:"features"`
	Beds        int         `json:"beds"`
	Bathrooms   int         `json:"bathrooms"`
	Area        string      `json:"area"`
	Pool        int         `json:"pool"`
	Guests      int         `json:"guests"`
	Floor       int         `json:"floor"`
	Status      VillaStatus `json:"status"`
	OwnerID     int64       `json:"ownerId"`
}

// NewVillaRequest is the owner submission payload for POST /api/villas.
// The server stores it with status Pending.
type NewVillaRequest struct {
	Name        string   `json:"villaName" validate:"required"`
	Location    string   `json:"address" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Guests      int      `json:"guests" validate:"required,gt=0"`
	MainImage   string   `json:"mainImage"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
	Beds        int      `json:"beds"`
	Bathrooms   int      `json:"bathrooms"`
	Area        string   `json:"area"`
	Pool        int      `json:"pool"`
	Floor       int      `json:"floor"`
}

// VillaFilters are the query parameters accepted by GET /api/villas.
// Zero values mean "not set".
type VillaFilters struct {
	Search   string
	Location string
	MinPrice float64
	MaxPrice float64
	Limit    int
}

// Merge overlays the non-zero fields of other onto a copy of f. Filter
// changes are partial updates, never a replace.
func (f VillaFilters) Merge(other VillaFilters) VillaFilters {
	if other.Search != "" {
		f.Search = other.Search
	}
	if other.Location != "" {
		f.Location = other.Location
	}
	if other.MinPrice > 0 {
		f.MinPrice = other.MinPrice
	}
	if other.MaxPrice > 0 {
		f.MaxPrice = other.MaxPrice
	}
	if other.Limit > 0 {
		f.Limit = other.Limit
	}
	return f
}
