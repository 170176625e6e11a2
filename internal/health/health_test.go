package health

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	apitest "github.com/Decentr-net/go-api/test"
)

func TestSetupRouter(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	fail := PingFunc(func(context.Context) error { return errors.New("db is down") })

	tt := []struct {
		name    string
		pingers []Pinger

		rcode int
		rdata string
	}{
		{
			name:  "no pingers",
			rcode: http.StatusOK,
			rdata: `{"version":"dev","commit":"unknown"}`,
		},
		{
			name:    "healthy",
			pingers: []Pinger{ok, ok},
			rcode:   http.StatusOK,
			rdata:   `{"version":"dev","commit":"unknown"}`,
		},
		{
			name:    "unhealthy",
			pingers: []Pinger{ok, fail},
			rcode:   http.StatusInternalServerError,
			rdata:   `{"error":"db is down","version":"dev","commit":"unknown"}`,
		},
	}

	for i := range tt {
		tc := tt[i]
		t.Run(tc.name, func(t *testing.T) {
			b, w, r := apitest.NewAPITestParameters(http.MethodGet, "health", nil)

			router := chi.NewRouter()
			SetupRouter(router, tc.pingers...)

			router.ServeHTTP(w, r)

			assert.Equal(t, tc.rcode, w.Code)
			assert.Equal(t, tc.rdata, w.Body.String())
			if tc.rcode != http.StatusOK {
				assert.Contains(t, b.String(), "health check failed")
			}
		})
	}
}
