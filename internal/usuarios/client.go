package usuarios

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Checker-Finance/usuarios-console/internal/httpclient"
	"github.com/Checker-Finance/usuarios-console/internal/rate"
	"github.com/Checker-Finance/usuarios-console/internal/session"
	"github.com/Checker-Finance/usuarios-console/pkg/model"
)

// resourcePath is the path segment of the users resource under the API base.
const resourcePath = "usuarios/"

// Client issues CRUD calls against the remote users resource.
// Every request carries the current session token in the Authorization header,
// empty when the session is unauthenticated.
type Client struct {
	logger  *zap.Logger
	baseURL string
	exec    *httpclient.Executor
	tokens  session.TokenSource
}

// NewClient constructs a users client. baseURL must end with "/".
func NewClient(logger *zap.Logger, rateMgr *rate.Manager, httpClient *http.Client, baseURL string, tokens session.TokenSource) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		exec:    httpclient.New(logger, rateMgr, httpClient, "usuarios"),
		tokens:  tokens,
	}
}

// WithTokens returns a copy of the client that reads its token from src.
func (c *Client) WithTokens(src session.TokenSource) *Client {
	cp := *c
	cp.tokens = src
	return &cp
}

// ListarUsuarios fetches every user.
// GET {base}usuarios/listar
func (c *Client) ListarUsuarios(ctx context.Context) (*model.GeneralResponse[[]model.Usuario], error) {
	var resp model.GeneralResponse[[]model.Usuario]
	if err := c.do(ctx, http.MethodGet, "listar", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Agregar creates a user.
// POST {base}usuarios/agregar
func (c *Client) Agregar(ctx context.Context, u model.Usuario) (*model.GeneralResponse[bool], error) {
	var resp model.GeneralResponse[bool]
	if err := c.do(ctx, http.MethodPost, "agregar", u, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Modificar updates a user.
// PUT {base}usuarios/actualizar
func (c *Client) Modificar(ctx context.Context, u model.Usuario) (*model.GeneralResponse[bool], error) {
	var resp model.GeneralResponse[bool]
	if err := c.do(ctx, http.MethodPut, "actualizar", u, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Borrar deletes the user with the given id. The request has no body.
// DELETE {base}usuarios/borrar/{id}
func (c *Client) Borrar(ctx context.Context, id int64) (*model.GeneralResponse[bool], error) {
	var resp model.GeneralResponse[bool]
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("borrar/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) construirURL(endpoint string) string {
	return c.baseURL + resourcePath + endpoint
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.construirURL(endpoint), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", token)

	return c.exec.DoJSON(ctx, req, "usuarios_api", out)
}
