package domain

import "time"

type Category struct {
	ID            string
	Name          string
	Icon          string
	Subcategories []string
}

// Saree is a catalog record. The catalog is loaded once at startup and is
// read-only for the life of the process.
type Saree struct {
	ID            string
	Name          string
	Category      string
	Subcategory   string
	Price         int // rupees
	OriginalPrice int // rupees, >= Price
	Occasion      string
	Fabric        string
	Colors        []string
	Rating        float64 // 0..5
	Reviews       int
	DateAdded     time.Time
	IsNew         bool
	IsBestSeller  bool
	Image         string
}
