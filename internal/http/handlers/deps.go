package handlers

import (
	"renusboutique/internal/config"
	"renusboutique/internal/repos"
	"renusboutique/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	HomeHandler *HomeHandler
	AuthHandler *AuthHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) (*Deps, error) {
	sareeRepo := repos.NewSareeRepo(db)
	catRepo := repos.NewCategoryRepo(db)

	catalogSvc, err := services.NewCatalogService(sareeRepo, catRepo)
	if err != nil {
		return nil, err
	}

	return &Deps{
		HomeHandler: &HomeHandler{Catalog: catalogSvc},
		AuthHandler: &AuthHandler{Auth: auth},
	}, nil
}
