package pricebook

import (
	"context"
	"sync"

	"cenar/internal/model"
)

// MockService is a hand-written Service implementation for tests. Every
// method defers to the corresponding func field when set and records its
// call either way.
type MockService struct {
	MatchBulkFunc        func(ctx context.Context, descriptions []string, kind model.PriceKind, threshold float64) (map[string]*model.MatchResult, error)
	LaborSuggestionsFunc func(ctx context.Context, materialName string) ([]model.LaborSuggestion, error)
	ItemDetailsFunc      func(ctx context.Context, itemID int64) (*model.ItemDetails, error)
	DeleteItemFunc       func(ctx context.Context, itemID int64) error
	AddItemFunc          func(ctx context.Context, item model.CatalogItem) (*model.CatalogItem, error)
	SearchFunc           func(ctx context.Context, query string) ([]model.SearchHit, error)
	ItemHistoryFunc      func(ctx context.Context, itemID int64) ([]model.PricePoint, error)
	StatusFunc           func(ctx context.Context) model.BackendStatus
	AdminItemsFunc       func(ctx context.Context) ([]model.CatalogItem, error)
	AdminSyncFunc        func(ctx context.Context, items []model.CatalogItem) error
	AdminBatchDeleteFunc func(ctx context.Context, itemIDs []int64) error
	AliasesFunc          func(ctx context.Context) ([]model.Alias, error)
	AliasBatchDeleteFunc func(ctx context.Context, aliasIDs []int64) error
	ResetDatabaseFunc    func(ctx context.Context) error
	LearnFunc            func(ctx context.Context, query string, itemID int64) error

	MatchBulkCalls [][]string
	MatchKinds     []model.PriceKind
	SyncedBatches  [][]model.CatalogItem
	DeletedItemIDs [][]int64
	DeletedAliases [][]int64
	LearnedQueries []string
	LearnedItemIDs []int64
	ResetCount     int

	mu sync.Mutex
}

// NewMockService creates an empty mock.
func NewMockService() *MockService {
	return &MockService{}
}

// MatchBulk implements Service.
func (m *MockService) MatchBulk(ctx context.Context, descriptions []string, kind model.PriceKind, threshold float64) (map[string]*model.MatchResult, error) {
	m.mu.Lock()
	m.MatchBulkCalls = append(m.MatchBulkCalls, append([]string(nil), descriptions...))
	m.MatchKinds = append(m.MatchKinds, kind)
	m.mu.Unlock()

	if m.MatchBulkFunc != nil {
		return m.MatchBulkFunc(ctx, descriptions, kind, threshold)
	}
	return map[string]*model.MatchResult{}, nil
}

// LaborSuggestions implements Service.
func (m *MockService) LaborSuggestions(ctx context.Context, materialName string) ([]model.LaborSuggestion, error) {
	if m.LaborSuggestionsFunc != nil {
		return m.LaborSuggestionsFunc(ctx, materialName)
	}
	return nil, nil
}

// ItemDetails implements Service.
func (m *MockService) ItemDetails(ctx context.Context, itemID int64) (*model.ItemDetails, error) {
	if m.ItemDetailsFunc != nil {
		return m.ItemDetailsFunc(ctx, itemID)
	}
	return &model.ItemDetails{ID: itemID}, nil
}

// DeleteItem implements Service.
func (m *MockService) DeleteItem(ctx context.Context, itemID int64) error {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, itemID)
	}
	return nil
}

// AddItem implements Service.
func (m *MockService) AddItem(ctx context.Context, item model.CatalogItem) (*model.CatalogItem, error) {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, item)
	}
	return &item, nil
}

// Search implements Service.
func (m *MockService) Search(ctx context.Context, query string) ([]model.SearchHit, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, nil
}

// ItemHistory implements Service.
func (m *MockService) ItemHistory(ctx context.Context, itemID int64) ([]model.PricePoint, error) {
	if m.ItemHistoryFunc != nil {
		return m.ItemHistoryFunc(ctx, itemID)
	}
	return nil, nil
}

// HistoryByName implements Service.
func (m *MockService) HistoryByName(ctx context.Context, description string) (*model.ItemHistory, error) {
	hits, err := m.Search(ctx, description)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, &StatusError{Code: 404, Body: "not found"}
	}
	history, err := m.ItemHistory(ctx, hits[0].ID)
	if err != nil {
		return nil, err
	}
	return &model.ItemHistory{ItemName: hits[0].Name, History: history}, nil
}

// Status implements Service.
func (m *MockService) Status(ctx context.Context) model.BackendStatus {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	return model.BackendStatus{Status: "online"}
}

// AdminItems implements Service.
func (m *MockService) AdminItems(ctx context.Context) ([]model.CatalogItem, error) {
	if m.AdminItemsFunc != nil {
		return m.AdminItemsFunc(ctx)
	}
	return nil, nil
}

// AdminSync implements Service.
func (m *MockService) AdminSync(ctx context.Context, items []model.CatalogItem) error {
	m.mu.Lock()
	m.SyncedBatches = append(m.SyncedBatches, append([]model.CatalogItem(nil), items...))
	m.mu.Unlock()

	if m.AdminSyncFunc != nil {
		return m.AdminSyncFunc(ctx, items)
	}
	return nil
}

// AdminBatchDelete implements Service.
func (m *MockService) AdminBatchDelete(ctx context.Context, itemIDs []int64) error {
	m.mu.Lock()
	m.DeletedItemIDs = append(m.DeletedItemIDs, append([]int64(nil), itemIDs...))
	m.mu.Unlock()

	if m.AdminBatchDeleteFunc != nil {
		return m.AdminBatchDeleteFunc(ctx, itemIDs)
	}
	return nil
}

// Aliases implements Service.
func (m *MockService) Aliases(ctx context.Context) ([]model.Alias, error) {
	if m.AliasesFunc != nil {
		return m.AliasesFunc(ctx)
	}
	return nil, nil
}

// AliasBatchDelete implements Service.
func (m *MockService) AliasBatchDelete(ctx context.Context, aliasIDs []int64) error {
	m.mu.Lock()
	m.DeletedAliases = append(m.DeletedAliases, append([]int64(nil), aliasIDs...))
	m.mu.Unlock()

	if m.AliasBatchDeleteFunc != nil {
		return m.AliasBatchDeleteFunc(ctx, aliasIDs)
	}
	return nil
}

// ResetDatabase implements Service.
func (m *MockService) ResetDatabase(ctx context.Context) error {
	m.mu.Lock()
	m.ResetCount++
	m.mu.Unlock()

	if m.ResetDatabaseFunc != nil {
		return m.ResetDatabaseFunc(ctx)
	}
	return nil
}

// Learn implements Service.
func (m *MockService) Learn(ctx context.Context, query string, itemID int64) error {
	m.mu.Lock()
	m.LearnedQueries = append(m.LearnedQueries, query)
	m.LearnedItemIDs = append(m.LearnedItemIDs, itemID)
	m.mu.Unlock()

	if m.LearnFunc != nil {
		return m.LearnFunc(ctx, query, itemID)
	}
	return nil
}

var _ Service = (*MockService)(nil)
