package gym

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type ModalityInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

func (in *ModalityInput) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return httperr.ErrValidation("name")
	}
	if !in.Price.IsPositive() {
		return httperr.ErrValidation("price")
	}
	return nil
}

func SortModalities(ms []models.Modality) {
	sort.SliceStable(ms, func(i, j int) bool {
		return strings.ToLower(ms[i].Name) < strings.ToLower(ms[j].Name)
	})
}
