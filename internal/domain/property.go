package domain

import "time"

type PropertyKind string

const (
	PropertyKindApartment  PropertyKind = "APARTMENT"
	PropertyKindHouse      PropertyKind = "HOUSE"
	PropertyKindParking    PropertyKind = "PARKING"
	PropertyKindCommercial PropertyKind = "COMMERCIAL"
	PropertyKindOther      PropertyKind = "OTHER"
)

type Property struct {
	ID          int32        `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	City        string       `json:"city"`
	PostalCode  string       `json:"postal_code"`
	Kind        PropertyKind `json:"kind"`
	SurfaceM2   float64      `json:"surface_m2"`
	Description string       `json:"description"`
	CreatedOn   time.Time    `json:"created_on"`
	UpdatedOn   time.Time    `json:"updated_on"`
}
