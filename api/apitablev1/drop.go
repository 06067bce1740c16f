package apitablev1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
)

func drop(ctx context.Context, w http.ResponseWriter) error {

	s := GetServicer(ctx)

	tableName := box.GetUrlParameter(ctx, "tableName")

	err := s.DropTable(tableName)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
