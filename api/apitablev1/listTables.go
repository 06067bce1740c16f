package apitablev1

import (
	"context"
)

func listTables(ctx context.Context) []*TableResponse {

	s := GetServicer(ctx)

	result := []*TableResponse{}
	for _, t := range s.ListTables() {
		info := t.Info()
		result = append(result, &info)
	}

	return result
}
