package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"alhyra_organics/internal/approval"
	"alhyra_organics/internal/cart"
	"alhyra_organics/internal/models"

	"go.uber.org/zap"
)

const (
	sessionUserID = "authenticatedUserID"
	sessionRole   = "userRole"
	sessionName   = "userName"
	sessionEmail  = "userEmail"
	sessionCart   = "cart"
	sessionReview = "review"
)

type envelope map[string]any

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Error("server error",
		zap.String("method", r.Method),
		zap.String("uri", r.URL.RequestURI()),
		zap.Error(err),
		zap.ByteString("trace", debug.Stack()),
	)
	app.errorJSON(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func (app *application) clientError(w http.ResponseWriter, status int) {
	app.errorJSON(w, status, http.StatusText(status))
}

func (app *application) notFound(w http.ResponseWriter) {
	app.clientError(w, http.StatusNotFound)
}

func (app *application) errorJSON(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, envelope{"error": message})
}

func (app *application) writeJSON(w http.ResponseWriter, status int, data any) {
	js, err := json.Marshal(data)
	if err != nil {
		app.logger.Error("encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(js, '\n'))
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxErr.Offset)
		case errors.As(err, &typeErr):
			return fmt.Errorf("body contains the wrong type for field %q", typeErr.Field)
		default:
			return fmt.Errorf("body could not be read: %w", err)
		}
	}
	return nil
}

func (app *application) isAuthenticated(r *http.Request) bool {
	return app.session.Exists(r.Context(), sessionUserID)
}

func (app *application) isAdmin(r *http.Request) bool {
	return app.session.GetString(r.Context(), sessionRole) == string(models.RoleAdmin)
}

func (app *application) currentUserID(r *http.Request) string {
	return app.session.GetString(r.Context(), sessionUserID)
}

func (app *application) getCart(r *http.Request) *cart.Cart {
	c, _ := app.session.Get(r.Context(), sessionCart).(cart.Cart)
	return &c
}

func (app *application) putCart(r *http.Request, c *cart.Cart) {
	app.session.Put(r.Context(), sessionCart, *c)
}

// getReview returns the admin's open review, or an empty one for orderID if
// the open review belongs to a different order.
func (app *application) getReview(r *http.Request, orderID string) approval.Review {
	rev, ok := app.session.Get(r.Context(), sessionReview).(approval.Review)
	if !ok || rev.OrderID != orderID {
		return approval.Review{OrderID: orderID}
	}
	return rev
}

func (app *application) putReview(r *http.Request, rev approval.Review) {
	app.session.Put(r.Context(), sessionReview, rev)
}
