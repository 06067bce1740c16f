package apitablev1

import (
	"context"

	"github.com/fulldump/virtualtable/metrics"
)

type removeRequest struct {
	Keys     []string          `json:"keys"`
	Viewport *metrics.Viewport `json:"viewport,omitempty"`
}

func remove(ctx context.Context, input *removeRequest) (*UpdateResponse, error) {

	table, err := currentTable(ctx)
	if err != nil {
		return nil, err
	}

	u, err := table.Remove(input.Keys, input.Viewport)
	if err != nil {
		return nil, err
	}

	return newUpdateResponse(u), nil
}
