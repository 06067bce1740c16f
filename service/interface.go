package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var ErrTableNotFound = errors.New("table not found")
var ErrTableAlreadyExists = errors.New("table already exists")
var ErrInvalidName = errors.New("invalid table name")
var ErrMissingKey = errors.New("document without key")
var ErrInvalidDocument = errors.New("invalid document")
var ErrInvalidFilter = errors.New("invalid filter")
var ErrUnavailable = errors.New("temporary unavailable")

type Servicer interface {
	CreateTable(name string, options *TableOptions) (*Table, error)
	GetTable(name string) (*Table, error)
	ListTables() []*Table
	DropTable(name string) error
	Gatherer() prometheus.Gatherer
}
