package apitablev1

import (
	"context"

	"github.com/fulldump/virtualtable/metrics"
	"github.com/fulldump/virtualtable/service"
)

type queryRequest struct {
	Filter   map[string]any    `json:"filter"`
	Sort     service.Sort      `json:"sort"`
	Viewport *metrics.Viewport `json:"viewport,omitempty"`
}

func query(ctx context.Context, input *queryRequest) (*UpdateResponse, error) {

	table, err := currentTable(ctx)
	if err != nil {
		return nil, err
	}

	u, err := table.Query(input.Filter, input.Sort, input.Viewport)
	if err != nil {
		return nil, err
	}

	return newUpdateResponse(u), nil
}
