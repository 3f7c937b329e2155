package model

// Product is a sellable catalog item. Its lifecycle is independent from
// shift sessions: deleting one only affects the active session's stock log.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name" validate:"required"`
	Unit  string  `json:"unit" validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

// DefaultCatalog returns the seed products used when the catalog slot is
// missing or unreadable at startup.
func DefaultCatalog() []Product {
	return []Product{
		{ID: "1", Name: "Bia Sài Gòn (Két)", Unit: "Két", Price: 250000},
		{ID: "2", Name: "Nước ngọt (Thùng)", Unit: "Thùng", Price: 180000},
		{ID: "3", Name: "Gạo ST25 (Túi 5kg)", Unit: "Túi", Price: 160000},
	}
}
