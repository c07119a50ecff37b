package catalog

import "time"

// Service is a hospital service listed on the public site.
type Service struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ambulance is an ambulance service listing with contact and location data.
type Ambulance struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Phone          string    `json:"phone"`
	Location       string    `json:"location,omitempty"`
	Latitude       string    `json:"latitude,omitempty"`
	Longitude      string    `json:"longitude,omitempty"`
	Available247   bool      `json:"available_24_7"`
	AmbulanceCount int       `json:"ambulance_count"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EyeProduct is an item in the eye-care product catalog.
type EyeProduct struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand,omitempty"`
	Price         string    `json:"price,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	IsAvailable   bool      `json:"is_available"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
