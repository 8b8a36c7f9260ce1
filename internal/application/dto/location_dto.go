package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"` // branch | warehouse | safe | consignment
	Address  string  `json:"address"`
	ParentID *string `json:"parent_location_id"`
}

// UpdateLocationRequest solo metadatos; tipo y padre no se tocan.
type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Address   string    `json:"address,omitempty"`
	ParentID  *string   `json:"parent_location_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
