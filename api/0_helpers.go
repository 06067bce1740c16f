package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/virtualtable/registry"
	"github.com/fulldump/virtualtable/service"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

// StatusGetter is satisfied by registry.Registry.
type StatusGetter interface {
	GetStatus() string
}

func InterceptorUnavailable(s StatusGetter) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := s.GetStatus()
			if status == registry.StatusOpening {
				box.SetError(ctx, fmt.Errorf("%w: opening", service.ErrUnavailable))
				return
			}
			if status == registry.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: closing", service.ErrUnavailable))
				return
			}
			next(ctx)
		}
	}
}

func writePrettyError(w http.ResponseWriter, status int, err error, description string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"message":     err.Error(),
			"description": description,
		},
	})
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		if err == ErrUnauthorized {
			writePrettyError(w, http.StatusUnauthorized, err, "user is not authenticated")
			return
		}

		if err == box.ErrResourceNotFound {
			writePrettyError(w, http.StatusNotFound, err, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String()))
			return
		}

		if err == box.ErrMethodNotAllowed {
			writePrettyError(w, http.StatusMethodNotAllowed, err, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method))
			return
		}

		if errors.Is(err, service.ErrTableNotFound) {
			writePrettyError(w, http.StatusNotFound, err, fmt.Sprintf("table '%s' does not exist", box.GetUrlParameter(ctx, "tableName")))
			return
		}

		if errors.Is(err, service.ErrTableAlreadyExists) {
			writePrettyError(w, http.StatusConflict, err, "choose another name or drop the existing table")
			return
		}

		if errors.Is(err, service.ErrInvalidName) ||
			errors.Is(err, service.ErrMissingKey) ||
			errors.Is(err, service.ErrInvalidDocument) ||
			errors.Is(err, service.ErrInvalidFilter) {
			writePrettyError(w, http.StatusBadRequest, err, "invalid input")
			return
		}

		if errors.Is(err, service.ErrUnavailable) {
			writePrettyError(w, http.StatusServiceUnavailable, err, "try again later")
			return
		}

		var syntaxError *json.SyntaxError
		if errors.As(err, &syntaxError) {
			writePrettyError(w, http.StatusBadRequest, err, "Malformed JSON")
			return
		}

		writePrettyError(w, http.StatusInternalServerError, err, "Unexpected error")
	}
}
