package apitablev1

import (
	"context"
)

func getTable(ctx context.Context) (*TableResponse, error) {

	table, err := currentTable(ctx)
	if err != nil {
		return nil, err
	}

	info := table.Info()
	return &info, nil
}
