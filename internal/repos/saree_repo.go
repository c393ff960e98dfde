package repos

import (
	"encoding/json"
	"time"

	"renusboutique/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SareeRepo struct{ db *sqlx.DB }

func NewSareeRepo(db *sqlx.DB) *SareeRepo { return &SareeRepo{db: db} }

type sareeRow struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	Category      string  `db:"category"`
	Subcategory   string  `db:"subcategory"`
	Price         int     `db:"price"`
	OriginalPrice int     `db:"original_price"`
	Occasion      string  `db:"occasion"`
	Fabric        string  `db:"fabric"`
	ColorsJSON    string  `db:"colors_json"`
	Rating        float64 `db:"rating"`
	Reviews       int     `db:"reviews"`
	DateAdded     string  `db:"date_added"`
	IsNew         bool    `db:"is_new"`
	IsBestSeller  bool    `db:"is_best_seller"`
	Image         string  `db:"image"`
}

// ListAll loads the whole catalog in insertion order. Called once at startup;
// the result is owned by the catalog service afterwards.
func (r *SareeRepo) ListAll() ([]domain.Saree, error) {
	var rows []sareeRow
	err := r.db.Select(&rows, `
  SELECT
    id, name, category, COALESCE(subcategory,'') AS subcategory,
    price, original_price, occasion, fabric,
    COALESCE(colors_json,'[]') AS colors_json,
    rating, reviews, date_added, is_new, is_best_seller,
    COALESCE(image,'') AS image
  FROM sarees
  ORDER BY rowid
`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Saree, 0, len(rows))
	for _, row := range rows {
		s := domain.Saree{
			ID:            row.ID,
			Name:          row.Name,
			Category:      row.Category,
			Subcategory:   row.Subcategory,
			Price:         row.Price,
			OriginalPrice: row.OriginalPrice,
			Occasion:      row.Occasion,
			Fabric:        row.Fabric,
			Rating:        row.Rating,
			Reviews:       row.Reviews,
			IsNew:         row.IsNew,
			IsBestSeller:  row.IsBestSeller,
			Image:         row.Image,
		}
		if t, err := time.Parse(time.RFC3339, row.DateAdded); err == nil {
			s.DateAdded = t
		}
		_ = json.Unmarshal([]byte(row.ColorsJSON), &s.Colors)
		out = append(out, s)
	}
	return out, nil
}
