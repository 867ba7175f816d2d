package usuarios

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/usuarios-console/internal/httpclient"
	"github.com/Checker-Finance/usuarios-console/internal/session"
	"github.com/Checker-Finance/usuarios-console/pkg/model"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(context.Context) (string, error) { return s.token, s.err }

func newTestClient(t *testing.T, tokens session.TokenSource, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	return NewClient(zap.NewNop(), nil, server.Client(), server.URL+"/api/", tokens), server
}

func TestClient_ListarUsuarios(t *testing.T) {
	client, server := newTestClient(t, &staticTokens{token: "T1"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/usuarios/listar", r.URL.Path)
		assert.Equal(t, "T1", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"hasError":false,"data":[{"id":1,"userName":"alice","activo":true},{"id":2,"userName":"bob"}]}`))
	})
	defer server.Close()

	resp, err := client.ListarUsuarios(context.Background())
	require.NoError(t, err)

	users, ok := resp.Payload()
	require.True(t, ok)
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "alice", users[0].UserName)
	assert.True(t, users[0].Activo)
}

func TestClient_Agregar(t *testing.T) {
	client, server := newTestClient(t, &staticTokens{token: "T1"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/usuarios/agregar", r.URL.Path)
		assert.Equal(t, "T1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var u model.Usuario
		require.NoError(t, json.NewDecoder(r.Body).Decode(&u))
		assert.Equal(t, "carol", u.UserName)
		assert.Equal(t, "carol@example.com", u.Email)

		_, _ = w.Write([]byte(`{"hasError":false,"data":true}`))
	})
	defer server.Close()

	resp, err := client.Agregar(context.Background(), model.Usuario{UserName: "carol", Email: "carol@example.com"})
	require.NoError(t, err)
	assert.True(t, model.Succeeded(resp))
}

func TestClient_Modificar(t *testing.T) {
	client, server := newTestClient(t, &staticTokens{token: "T1"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/usuarios/actualizar", r.URL.Path)

		var u model.Usuario
		require.NoError(t, json.NewDecoder(r.Body).Decode(&u))
		assert.Equal(t, int64(7), u.ID)

		_, _ = w.Write([]byte(`{"hasError":false,"data":true}`))
	})
	defer server.Close()

	resp, err := client.Modificar(context.Background(), model.Usuario{ID: 7, UserName: "dave"})
	require.NoError(t, err)
	assert.True(t, model.Succeeded(resp))
}

func TestClient_Borrar_NoBody(t *testing.T) {
	client, server := newTestClient(t, &staticTokens{token: "T1"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/usuarios/borrar/42", r.URL.Path)
		assert.Empty(t, r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)

		_, _ = w.Write([]byte(`{"hasError":false,"data":true}`))
	})
	defer server.Close()

	resp, err := client.Borrar(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, model.Succeeded(resp))
}

func TestClient_HeaderFollowsCurrentToken(t *testing.T) {
	store := session.NewMemoryStore(time.Minute)
	holder := session.NewHolder(store, "sid")

	var seen []string
	client, server := newTestClient(t, holder, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"hasError":false,"data":true}`))
	})
	defer server.Close()

	ctx := context.Background()
	_, err := client.Borrar(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, holder.Save(ctx, session.Data{Token: "T1"}))
	_, err = client.Borrar(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, holder.Save(ctx, session.Data{Token: "T2"}))
	_, err = client.Modificar(ctx, model.Usuario{ID: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "T1", "T2"}, seen)
}

func TestClient_WithTokens(t *testing.T) {
	var seen string
	base, server := newTestClient(t, &staticTokens{token: "base"}, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"hasError":false,"data":true}`))
	})
	defer server.Close()

	_, err := base.WithTokens(&staticTokens{token: "other"}).Borrar(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "other", seen)

	_, err = base.Borrar(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "base", seen, "WithTokens must leave the receiver unchanged")
}

func TestClient_ErrorEnvelopeHidesPayload(t *testing.T) {
	client, server := newTestClient(t, &staticTokens{token: "T1"}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hasError":true,"messageError":"No autorizado","messageException":"token expired","data":[{"id":1}]}`))
	})
	defer server.Close()

	resp, err := client.ListarUsuarios(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.HasError)

	users, ok := resp.Payload()
	assert.False(t, ok)
	assert.Nil(t, users)
}

func TestClient_TokenSourceFailure(t *testing.T) {
	called := false
	client, server := newTestClient(t, &staticTokens{err: errors.New("redis down")}, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer server.Close()

	_, err := client.ListarUsuarios(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	assert.False(t, called)
}

func TestClient_TransportError(t *testing.T) {
	client, server := newTestClient(t, &staticTokens{token: "T1"}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	resp, err := client.Agregar(context.Background(), model.Usuario{UserName: "x"})
	assert.Nil(t, resp)

	var te *httpclient.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadGateway, te.Status)
	assert.Equal(t, "usuarios", te.Component)
}
