package apitablev1

import (
	"context"

	"github.com/fulldump/virtualtable/service"
)

type layoutRequest struct {
	From   int  `json:"from"`
	To     int  `json:"to"`
	Fields bool `json:"fields"`
}

type LayoutResponse struct {
	ContentHeight float64             `json:"contentHeight"`
	Rows          []service.RowLayout `json:"rows"`
}

func layout(ctx context.Context, input *layoutRequest) (*LayoutResponse, error) {

	table, err := currentTable(ctx)
	if err != nil {
		return nil, err
	}

	info := table.Info()
	to := input.To
	if to <= 0 {
		to = info.Rows
	}

	return &LayoutResponse{
		ContentHeight: info.ContentHeight,
		Rows:          table.Layout(input.From, to, input.Fields),
	}, nil
}
