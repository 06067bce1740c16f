package apitablev1

import (
	"context"

	"github.com/fulldump/virtualtable/metrics"
)

type scrollRequest struct {
	Viewport metrics.Viewport `json:"viewport"`
}

type ScrollResponse struct {
	ScrollOffset  float64 `json:"scrollOffset"`
	ContentHeight float64 `json:"contentHeight"`
	WindowStart   int     `json:"windowStart"`
	WindowEnd     int     `json:"windowEnd"`
}

func scroll(ctx context.Context, input *scrollRequest) (*ScrollResponse, error) {

	table, err := currentTable(ctx)
	if err != nil {
		return nil, err
	}

	result := table.Scroll(input.Viewport)

	return &ScrollResponse{
		ScrollOffset:  result.ScrollOffset,
		ContentHeight: result.ContentHeight,
		WindowStart:   result.Window.Start,
		WindowEnd:     result.Window.End,
	}, nil
}
