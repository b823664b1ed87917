// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-contacts-keeper/internal/config"
	"github.com/MKhiriev/go-contacts-keeper/internal/logger"
	"github.com/MKhiriev/go-contacts-keeper/internal/utils"
	"github.com/MKhiriev/go-contacts-keeper/models"
)

type httpRecordAdapter struct {
	client *utils.HTTPClient

	clientID     string
	clientSecret string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRecordAdapter builds the REST implementation of [RecordAdapter] and
// initialises the HMAC hasher pool used to sign pushed payloads.
func NewHTTPRecordAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RecordAdapter, error) {
	if adapterCfg.ClientID == "" || adapterCfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	utils.InitHasherPool(appCfg.HashKey)

	return &httpRecordAdapter{
		client:       utils.NewHTTPClient(adapterCfg.BaseURL, adapterCfg.RequestTimeout, adapterCfg.Retries),
		clientID:     adapterCfg.ClientID,
		clientSecret: adapterCfg.ClientSecret,
		logger:       logger,
	}, nil
}

func (h *httpRecordAdapter) Authenticate(ctx context.Context) error {
	var tokenResp models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.TokenRequest{
			GrantType:    models.GrantTypeClientCredentials,
			ClientID:     h.clientID,
			ClientSecret: h.clientSecret,
		}).
		SetResult(&tokenResp).
		Post("/api/auth/token")
	if err != nil {
		return fmt.Errorf("token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpRecordAdapter.Authenticate").Msg("authentication rejected")
		return err
	}
	if tokenResp.AccessToken == "" {
		return ErrEmptyToken
	}

	h.setToken(tokenResp.AccessToken)
	return nil
}

func (h *httpRecordAdapter) Query(ctx context.Context, objectName string, req models.QueryRequest) ([]models.Record, error) {
	resp, err := h.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).Post(objectPath(objectName) + "/query")
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", objectName, err)
	}

	var qr models.QueryResponse
	if err = decodeBody(resp.Body(), &qr); err != nil {
		return nil, err
	}

	return qr.Records, nil
}

func (h *httpRecordAdapter) Create(ctx context.Context, objectName string, fields models.Record) (string, error) {
	body, err := signedRequest(fields)
	if err != nil {
		return "", err
	}

	resp, err := h.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(body).Post(objectPath(objectName))
	})
	if err != nil {
		return "", fmt.Errorf("create %s: %w", objectName, err)
	}

	var saved models.SaveResponse
	if err = decodeBody(resp.Body(), &saved); err != nil {
		return "", err
	}

	return saved.ID, nil
}

func (h *httpRecordAdapter) Update(ctx context.Context, objectName, id string, fields models.Record) error {
	body, err := signedRequest(fields)
	if err != nil {
		return err
	}

	_, err = h.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(body).Put(objectPath(objectName) + "/" + url.PathEscape(id))
	})
	if err != nil {
		return fmt.Errorf("update %s %s: %w", objectName, id, err)
	}

	return nil
}

func (h *httpRecordAdapter) Delete(ctx context.Context, objectName, id string) error {
	_, err := h.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Delete(objectPath(objectName) + "/" + url.PathEscape(id))
	})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", objectName, id, err)
	}

	return nil
}

// do sends an authenticated request. A 401 on a held token means it expired:
// the adapter authenticates again and replays the request once.
func (h *httpRecordAdapter) do(ctx context.Context, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	if h.currentToken() == "" {
		if err := h.Authenticate(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := h.send(ctx, send)
	if errors.Is(err, ErrUnauthorized) {
		logger.FromContext(ctx).Info().Str("func", "*httpRecordAdapter.do").Msg("access token rejected, re-authenticating")
		if authErr := h.Authenticate(ctx); authErr != nil {
			return nil, authErr
		}
		resp, err = h.send(ctx, send)
	}

	return resp, err
}

func (h *httpRecordAdapter) send(ctx context.Context, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(h.currentToken())

	resp, err := send(req)
	if err != nil {
		return nil, err
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp, nil
}

func (h *httpRecordAdapter) setToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRecordAdapter) currentToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func objectPath(objectName string) string {
	return "/api/records/" + url.PathEscape(objectName)
}

func signedRequest(fields models.Record) (models.RecordRequest, error) {
	hash, err := utils.HashPayload(fields)
	if err != nil {
		return models.RecordRequest{}, err
	}
	return models.RecordRequest{Fields: fields, Hash: hash}, nil
}

// decodeBody keeps numbers as json.Number so record values survive the
// round trip unchanged.
func decodeBody(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}
	return nil
}
