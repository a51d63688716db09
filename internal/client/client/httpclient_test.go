package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecopoints/ecopoints/internal/client/models"
	"github.com/ecopoints/ecopoints/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 5*time.Second)
}

func TestHTTPClient_LoginStoresToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/login":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NotEmpty(t, r.Header.Get(common.RequestIDHeaderName))
			w.Write([]byte(`{"token":"h.p.s"}`))
		case "/user/u1":
			assert.Equal(t, "h.p.s", r.Header.Get(common.AuthHeaderName),
				"authenticated calls must send the raw token")
			w.Write([]byte(`{"_id":"u1","username":"eco","points":120}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	token, err := c.Login(context.Background(), models.Credentials{Email: "abc@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "h.p.s", token)

	user, err := c.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 120, user.Points)
}

func TestHTTPClient_LoginCredentialsRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"credenciais inválidas"}`))
	})

	_, err := c.Login(context.Background(), models.Credentials{Email: "abc@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrCredentialsRejected)
}

func TestHTTPClient_RegisterDuplicate(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantField string
	}{
		{"email collision", `E11000 duplicate key error collection: users index: email_1`, "email"},
		{"cpf collision", `E11000 duplicate key error collection: users index: cpf_1`, "cpf"},
		{"unknown index", `E11000 duplicate key error collection: users index: other_1`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"message":"` + tc.message + `"}`))
			})

			_, err := c.Register(context.Background(), models.Registration{})
			require.ErrorIs(t, err, ErrDuplicateRecord)

			var dup *DuplicateError
			require.ErrorAs(t, err, &dup)
			assert.Equal(t, tc.wantField, dup.Field)
		})
	}
}

func TestHTTPClient_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	})

	_, err := c.GetUser(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_ProductsEmptyCatalog(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Não existem produtos cadastrados"}`))
	})

	products, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestHTTPClient_ProductsOtherErrorSurfaces(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	})

	_, err := c.Products(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestHTTPClient_LogsEmptyHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"nenhum log encontrado"}`))
	})

	logs, err := c.Logs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestHTTPClient_StatusViewsDegradeToEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	})

	pending, err := c.PendingLogs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, pending)

	redeemed, err := c.RedeemedLogs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, redeemed)
}

func TestHTTPClient_MarkLogRedeemed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/log/l1", r.URL.Path)
		w.Write([]byte(`{"_id":"l1","redeemed":true}`))
	})

	entry, err := c.MarkLogRedeemed(context.Background(), "l1")
	require.NoError(t, err)
	require.NotNil(t, entry.Redeemed)
	assert.True(t, *entry.Redeemed)
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	_, err := c.GetUser(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrUnavailable)
}
