package api

import (
	"newstv/internal/catalog"
	"newstv/internal/domain"
)

type StateResponse struct {
	Filter domain.Filter       `json:"filter"`
	State  domain.StatePayload `json:"state"`
}

type CountryRequest struct {
	Code string `json:"code" binding:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CatalogResponse struct {
	Countries  []catalog.Country  `json:"countries"`
	Categories []catalog.Category `json:"categories"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
