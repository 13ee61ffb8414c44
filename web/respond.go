package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mww/dreamsquad/model"
	"github.com/unrolled/render"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Data any `json:"data"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newRender() *render.Render {
	return render.New(render.Options{
		UnEscapeHTML: true,
	})
}

func writeData(render *render.Render, w http.ResponseWriter, status int, data any) {
	render.JSON(w, status, envelope{Data: data})
}

func writeError(render *render.Render, w http.ResponseWriter, status int, code, msg string) {
	render.JSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

// writeErr maps err onto a status code and writes the error body. Errors that
// are not a *model.Error are logged and their message is hidden.
func writeErr(render *render.Render, w http.ResponseWriter, r *http.Request, err error) {
	var e *model.Error
	if !errors.As(err, &e) {
		slog.Error("unexpected error", "path", r.URL.Path, "error", err)
		writeError(render, w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case model.KindValidation:
		status = http.StatusBadRequest
	case model.KindConstraint:
		status = http.StatusConflict
	case model.KindNotFound:
		status = http.StatusNotFound
	case model.KindDependency:
		status = http.StatusBadGateway
		slog.Warn("dependency failure", "path", r.URL.Path, "error", err)
	}
	writeError(render, w, status, e.Code, e.Message)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return model.ValidationError("invalid request body: %v", err)
	}
	return nil
}

func int64Param(r *http.Request, name string) (int64, error) {
	v := chi.URLParam(r, name)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, model.ValidationError("invalid %s: '%s'", name, v)
	}
	return id, nil
}
