package apitablev1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/virtualtable/service"
)

// load replaces the whole document set with a stream of JSON documents, one
// after another (NDJSON works). The table is diffed once at the end of the
// stream.
func load(ctx context.Context, r *http.Request) (*UpdateResponse, error) {

	table, err := currentTable(ctx)
	if err != nil {
		return nil, err
	}

	documents := []service.Document{}
	decoder := jsontext.NewDecoder(r.Body)
	for {
		document := service.Document{}
		err := json.UnmarshalDecode(decoder, &document)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %s", service.ErrInvalidDocument, len(documents), err.Error())
		}
		documents = append(documents, document)
	}

	u, err := table.Replace(documents, nil)
	if err != nil {
		return nil, err
	}

	return newUpdateResponse(u), nil
}
