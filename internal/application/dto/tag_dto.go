package dto

import "time"

// AssignTagRequest entrada para asignar una etiqueta física a una pieza.
type AssignTagRequest struct {
	ItemID    string `json:"item_id"`
	TagString string `json:"tag_string"`
}

// TagResponse salida de una etiqueta asignada.
type TagResponse struct {
	TagString  string    `json:"tag_string"`
	ItemID     string    `json:"item_id"`
	AssignedBy string    `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
}
