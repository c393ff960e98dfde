package repos

import (
	"encoding/json"

	"renusboutique/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var rows []struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Icon     string `db:"icon"`
		SubsJSON string `db:"subcategories_json"`
	}
	err := r.db.Select(&rows, `
  SELECT id, name, COALESCE(icon,'') AS icon,
         COALESCE(subcategories_json,'[]') AS subcategories_json
  FROM categories
  ORDER BY rowid
`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		c := domain.Category{ID: row.ID, Name: row.Name, Icon: row.Icon}
		_ = json.Unmarshal([]byte(row.SubsJSON), &c.Subcategories)
		out = append(out, c)
	}
	return out, nil
}
