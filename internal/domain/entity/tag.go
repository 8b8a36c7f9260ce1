package entity

import "time"

// Tag vincula una etiqueta física (código de barras o RFID) a una pieza.
// La cadena es única en todo el registro y nunca se recicla.
type Tag struct {
	TagString  string
	ItemID     string
	AssignedBy string
	AssignedAt time.Time
}
