package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fulldump/virtualtable/configuration"
	"github.com/fulldump/virtualtable/registry"
)

type Service struct {
	tables   *registry.Registry[*Table]
	defaults configuration.Table
	metrics  *Metrics
}

func NewService(tables *registry.Registry[*Table], defaults configuration.Table) *Service {
	return &Service{
		tables:   tables,
		defaults: defaults,
		metrics:  NewMetrics(),
	}
}

// CreateTable registers an empty table. Options left at zero take the
// configured defaults.
func (s *Service) CreateTable(name string, options *TableOptions) (*Table, error) {

	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "/:") {
		return nil, ErrInvalidName
	}

	if options == nil {
		options = &TableOptions{}
	}
	o := options.withDefaults(s.defaults)

	t := newTable(name, o, s.metrics)
	entry, err := s.tables.Create(name, t)
	if errors.Is(err, registry.ErrAlreadyExists) {
		return nil, ErrTableAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("create table '%s': %w", name, err)
	}
	t.mutex.Lock()
	t.id = entry.Id
	t.createdAt = entry.CreatedAt
	t.mutex.Unlock()
	s.metrics.Tables.Inc()

	return t, nil
}

func (s *Service) GetTable(name string) (*Table, error) {
	entry, err := s.tables.Get(name)
	if errors.Is(err, registry.ErrNotFound) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

func (s *Service) ListTables() []*Table {
	result := []*Table{}
	for _, entry := range s.tables.List() {
		result = append(result, entry.Value)
	}
	return result
}

func (s *Service) DropTable(name string) error {
	err := s.tables.Drop(name)
	if errors.Is(err, registry.ErrNotFound) {
		return ErrTableNotFound
	}
	if err != nil {
		return err
	}
	s.metrics.Tables.Dec()
	s.metrics.forget(name)
	return nil
}

func (s *Service) Gatherer() prometheus.Gatherer {
	return s.metrics.registry
}
