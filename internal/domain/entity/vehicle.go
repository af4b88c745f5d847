package entity

import "time"

// Vehicle representa un bus de la flota. VIN es la llave natural, inmutable.
// Las órdenes de trabajo referencian vehículos por VIN; no los poseen.
type Vehicle struct {
	VIN       string
	Name      string
	Make      string
	Model     string
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}
