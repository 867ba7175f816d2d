package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Checker-Finance/usuarios-console/internal/httpclient"
	"github.com/Checker-Finance/usuarios-console/internal/rate"
	"github.com/Checker-Finance/usuarios-console/pkg/model"
)

// Client calls the remote authentication endpoint.
type Client struct {
	logger   *zap.Logger
	loginURL string
	exec     *httpclient.Executor
}

// NewClient constructs an authentication client for {baseURL}{loginPath}.
func NewClient(logger *zap.Logger, rateMgr *rate.Manager, httpClient *http.Client, baseURL, loginPath string) *Client {
	return &Client{
		logger:   logger,
		loginURL: baseURL + loginPath,
		exec:     httpclient.New(logger, rateMgr, httpClient, "auth"),
	}
}

// Login submits creds and returns the authentication envelope.
// An application-level rejection is a nil error with HasError set on the envelope.
func (c *Client) Login(ctx context.Context, creds model.LoginUser) (*model.GeneralResponse[model.LoginResponse], error) {
	data, err := json.Marshal(creds)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var resp model.GeneralResponse[model.LoginResponse]
	if err := c.exec.DoJSON(ctx, req, "auth_api", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
