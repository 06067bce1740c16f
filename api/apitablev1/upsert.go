package apitablev1

import (
	"context"

	"github.com/fulldump/virtualtable/metrics"
	"github.com/fulldump/virtualtable/service"
)

type upsertRequest struct {
	Rows     []service.Document `json:"rows"`
	Viewport *metrics.Viewport  `json:"viewport,omitempty"`
}

func upsert(ctx context.Context, input *upsertRequest) (*UpdateResponse, error) {

	table, err := currentTable(ctx)
	if err != nil {
		return nil, err
	}

	u, err := table.Upsert(input.Rows, input.Viewport)
	if err != nil {
		return nil, err
	}

	return newUpdateResponse(u), nil
}
