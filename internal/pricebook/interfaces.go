package pricebook

import (
	"context"

	"cenar/internal/model"
)

// Service is the backend contract as consumed by the rest of the
// application. *Client is the real implementation; MockService exists
// for tests.
type Service interface {
	MatchBulk(ctx context.Context, descriptions []string, kind model.PriceKind, threshold float64) (map[string]*model.MatchResult, error)
	LaborSuggestions(ctx context.Context, materialName string) ([]model.LaborSuggestion, error)
	ItemDetails(ctx context.Context, itemID int64) (*model.ItemDetails, error)
	DeleteItem(ctx context.Context, itemID int64) error
	AddItem(ctx context.Context, item model.CatalogItem) (*model.CatalogItem, error)
	Search(ctx context.Context, query string) ([]model.SearchHit, error)
	ItemHistory(ctx context.Context, itemID int64) ([]model.PricePoint, error)
	HistoryByName(ctx context.Context, description string) (*model.ItemHistory, error)
	Status(ctx context.Context) model.BackendStatus

	AdminItems(ctx context.Context) ([]model.CatalogItem, error)
	AdminSync(ctx context.Context, items []model.CatalogItem) error
	AdminBatchDelete(ctx context.Context, itemIDs []int64) error
	Aliases(ctx context.Context) ([]model.Alias, error)
	AliasBatchDelete(ctx context.Context, aliasIDs []int64) error
	ResetDatabase(ctx context.Context) error

	Learn(ctx context.Context, query string, itemID int64) error
}

var _ Service = (*Client)(nil)
