package apitablev1

import (
	"context"
	"net/http"

	"github.com/fulldump/virtualtable/service"
)

type createTableRequest struct {
	Name string `json:"name"`
	service.TableOptions
}

func createTable(ctx context.Context, w http.ResponseWriter, input *createTableRequest) (*TableResponse, error) {

	s := GetServicer(ctx)

	table, err := s.CreateTable(input.Name, &input.TableOptions)
	if err != nil {
		return nil, err
	}

	info := table.Info()
	w.WriteHeader(http.StatusCreated)
	return &info, nil
}
