package services

import (
	"sort"
	"strings"

	"renusboutique/internal/domain"
	"renusboutique/internal/repos"
)

type SortKey string

const (
	SortFeatured   SortKey = "featured"
	SortBestSeller SortKey = "best-seller"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortRating     SortKey = "rating"
)

var SortOptions = []struct {
	ID    SortKey
	Label string
}{
	{SortFeatured, "Featured"},
	{SortBestSeller, "Best Sellers"},
	{SortPriceLow, "Price: Low to High"},
	{SortPriceHigh, "Price: High to Low"},
	{SortNewest, "Newest First"},
	{SortOldest, "Oldest First"},
	{SortRating, "Highest Rated"},
}

func ValidSortKey(s string) (SortKey, bool) {
	for _, opt := range SortOptions {
		if string(opt.ID) == s {
			return opt.ID, true
		}
	}
	return "", false
}

// PriceBand is a named price interval with inclusive bounds. Max < 0 means
// unbounded above.
type PriceBand struct {
	ID    string
	Label string
	Min   int
	Max   int
}

var PriceBands = []PriceBand{
	{"all", "All Prices", 0, -1},
	{"under-3000", "Under ₹3,000", 0, 3000},
	{"3000-5000", "₹3,000 - ₹5,000", 3000, 5000},
	{"5000-10000", "₹5,000 - ₹10,000", 5000, 10000},
	{"10000-25000", "₹10,000 - ₹25,000", 10000, 25000},
	{"above-25000", "Above ₹25,000", 25000, -1},
}

func priceBand(id string) (PriceBand, bool) {
	for _, b := range PriceBands {
		if b.ID == id {
			return b, true
		}
	}
	return PriceBand{}, false
}

var Occasions = []string{"All", "Wedding", "Party", "Festival", "Casual", "Daily", "Work", "Reception"}

var Fabrics = []string{"All", "Pure Silk", "Banarasi Silk", "Cotton", "Georgette", "Crepe", "Net", "Velvet"}

// Criteria selects the visible slice of the catalog. Zero values are not
// meaningful; use DefaultCriteria for the unconstrained view.
type Criteria struct {
	Category string // "all", a category id, or "category-subcategory"
	Price    string // price band id
	Occasion string // "All" = unconstrained
	Fabric   string // "All" = unconstrained; matched as substring
}

func DefaultCriteria() Criteria {
	return Criteria{Category: "all", Price: "all", Occasion: "All", Fabric: "All"}
}

func subcatSlug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

// ComputeVisible filters then sorts the catalog. Pure: the input slice is
// never reordered or mutated, and identical inputs give identical output.
func ComputeVisible(catalog []domain.Saree, cr Criteria, sortBy SortKey) []domain.Saree {
	filtered := make([]domain.Saree, 0, len(catalog))

	var cat, subcat string
	if cr.Category != "all" {
		if i := strings.Index(cr.Category, "-"); i >= 0 {
			cat, subcat = cr.Category[:i], cr.Category[i+1:]
		} else {
			cat = cr.Category
		}
	}
	band, haveBand := priceBand(cr.Price)
	if cr.Price == "all" {
		haveBand = false
	}

	for _, s := range catalog {
		if cat != "" {
			if s.Category != cat {
				continue
			}
			if subcat != "" && subcatSlug(s.Subcategory) != subcat {
				continue
			}
		}
		if haveBand {
			if s.Price < band.Min {
				continue
			}
			if band.Max >= 0 && s.Price > band.Max {
				continue
			}
		}
		if cr.Occasion != "All" && !strings.EqualFold(s.Occasion, cr.Occasion) {
			continue
		}
		if cr.Fabric != "All" &&
			!strings.Contains(strings.ToLower(s.Fabric), strings.ToLower(cr.Fabric)) {
			continue
		}
		filtered = append(filtered, s)
	}

	sort.SliceStable(filtered, lessFunc(filtered, sortBy))
	return filtered
}

func lessFunc(s []domain.Saree, sortBy SortKey) func(i, j int) bool {
	switch sortBy {
	case SortPriceLow:
		return func(i, j int) bool { return s[i].Price < s[j].Price }
	case SortPriceHigh:
		return func(i, j int) bool { return s[i].Price > s[j].Price }
	case SortNewest:
		return func(i, j int) bool { return s[i].DateAdded.After(s[j].DateAdded) }
	case SortOldest:
		return func(i, j int) bool { return s[i].DateAdded.Before(s[j].DateAdded) }
	case SortRating:
		return func(i, j int) bool { return s[i].Rating > s[j].Rating }
	case SortBestSeller:
		return func(i, j int) bool {
			if s[i].IsBestSeller != s[j].IsBestSeller {
				return s[i].IsBestSeller
			}
			return s[i].Reviews > s[j].Reviews
		}
	default: // featured: best sellers, then new arrivals, then rating
		return func(i, j int) bool {
			if s[i].IsBestSeller != s[j].IsBestSeller {
				return s[i].IsBestSeller
			}
			if s[i].IsNew != s[j].IsNew {
				return s[i].IsNew
			}
			return s[i].Rating > s[j].Rating
		}
	}
}

// View is what the presentation layer consumes.
type View struct {
	Sarees   []domain.Saree
	Total    int
	Filtered int
}

// CatalogService holds the catalog loaded at startup. The slice is treated
// as immutable from here on.
type CatalogService struct {
	sarees []domain.Saree
	cats   []domain.Category
}

func NewCatalogService(sarees *repos.SareeRepo, cats *repos.CategoryRepo) (*CatalogService, error) {
	all, err := sarees.ListAll()
	if err != nil {
		return nil, err
	}
	cs, err := cats.List()
	if err != nil {
		return nil, err
	}
	return &CatalogService{sarees: all, cats: cs}, nil
}

func (s *CatalogService) Visible(cr Criteria, sortBy SortKey) View {
	visible := ComputeVisible(s.sarees, cr, sortBy)
	return View{Sarees: visible, Total: len(s.sarees), Filtered: len(visible)}
}

func (s *CatalogService) Categories() []domain.Category { return s.cats }

// KnownCategory reports whether the selector names a seeded category, with
// or without a subcategory suffix.
func (s *CatalogService) KnownCategory(selector string) bool {
	if selector == "all" {
		return true
	}
	for _, c := range s.cats {
		if selector == c.ID || strings.HasPrefix(selector, c.ID+"-") {
			return true
		}
	}
	return false
}

// Title renders the heading for a category selector: "All Sarees",
// "Silk Collection", "Kanchipuram Collection".
func (s *CatalogService) Title(selector string) string {
	if selector == "all" || selector == "" {
		return "All Sarees"
	}
	name := selector
	if i := strings.Index(selector, "-"); i >= 0 {
		name = selector[i+1:]
	}
	words := strings.Split(name, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ") + " Collection"
}
