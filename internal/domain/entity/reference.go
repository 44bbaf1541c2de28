package entity

// Datos de referencia globales: no pertenecen a ningún usuario.

// SalePoint metadatos de un punto de venta: mapea id_sp_ a región, ciudad y código postal.
type SalePoint struct {
	IDSp         string
	RegionCode   int
	CityWithType string
	PostalCode   string
}

// OrganizationRegion mapea el INN de una organización a su código de región.
type OrganizationRegion struct {
	INN        string
	RegionCode int
}
