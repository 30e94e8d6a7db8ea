package service

import (
	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/models"
	applyfilters "gymlink-api/internal/workers/search/apply-filters"
)

// DirectoryService serves the plain listing, lookup and filter option views.
type DirectoryService struct {
	catalog *catalog.Catalog
}

func NewDirectoryService(cat *catalog.Catalog) *DirectoryService {
	return &DirectoryService{catalog: cat}
}

func (s *DirectoryService) List(filter models.ListFilter) []models.BusinessRecord {
	return applyfilters.ApplyList(filter, s.catalog.All())
}

func (s *DirectoryService) Get(id int) (models.BusinessRecord, error) {
	record, ok := s.catalog.ByID(id)
	if !ok {
		return models.BusinessRecord{}, errors.NewBusinessNotFoundError(id)
	}
	return record, nil
}

func (s *DirectoryService) FilterOptions() models.FilterOptions {
	return s.catalog.FilterOptions()
}

// CatalogSize is used by readiness checks.
func (s *DirectoryService) CatalogSize() int {
	return s.catalog.Len()
}
