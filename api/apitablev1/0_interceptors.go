package apitablev1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/virtualtable/service"
)

type contextKey string

const ContextServicerKey contextKey = "0b7e4a52-8d0c-11ef-9a6c-6f1e2d3c4b5a"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}

// currentTable resolves the {tableName} of the current request.
func currentTable(ctx context.Context) (*service.Table, error) {
	return GetServicer(ctx).GetTable(box.GetUrlParameter(ctx, "tableName"))
}
