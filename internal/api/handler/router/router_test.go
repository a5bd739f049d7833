package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestRouter_AddRoutes(t *testing.T) {
	var order []string
	track := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:   "/v1/workspaces/:workspace_id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
			_, _ = w.Write([]byte(httprouter.ParamsFromContext(r.Context()).ByName("workspace_id")))
		}),
		Middlewares: []func(http.Handler) http.Handler{track("primeiro"), track("segundo")},
	}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/workspaces/ws-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ws-1", rec.Body.String())
	assert.Equal(t, []string{"primeiro", "segundo", "handler"}, order)
}

func TestRouter_RotaInexistente(t *testing.T) {
	rt := New()

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nada", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
