package httpapi

import (
	"errors"
	"net/http"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

type errorDTO struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

const kindInternal = "Internal"

// ToHTTPStatus maps circulation error kinds to status codes: 404 for NotFound, 400 for
// InvalidArgument, 500 for internal defects and 409 for every other business rule.
func ToHTTPStatus(err error) int {
	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
		return http.StatusConflict
	}

	kind, ok := core.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch {
	case kind == core.KindNotFound:
		return http.StatusNotFound
	case kind == core.KindInvalidArgument:
		return http.StatusBadRequest
	case kind.IsInternal():
		return http.StatusInternalServerError
	default:
		return http.StatusConflict
	}
}

func errorBody(kind, msg string) errorDTO {
	var e errorDTO
	e.Error.Kind = kind
	e.Error.Message = msg

	return e
}

func errorFromErr(err error) errorDTO {
	kind, ok := core.KindOf(err)
	if !ok {
		return errorBody(kindInternal, err.Error())
	}

	var circulationErr *core.CirculationError
	if errors.As(err, &circulationErr) && circulationErr.Reason != "" {
		return errorBody(string(kind), circulationErr.Reason)
	}

	return errorBody(string(kind), err.Error())
}
