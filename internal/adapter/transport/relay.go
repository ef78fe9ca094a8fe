package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"
)

// LocalRelay executes relay requests itself, without cookies. It backs the
// /relay endpoint and the in-process relay mode, and only reaches hosts on
// its allowlist.
type LocalRelay struct {
	client HTTPClient
	allow  *HostAllowlist
}

func NewLocalRelay(client HTTPClient, allow *HostAllowlist) *LocalRelay {
	return &LocalRelay{client: client, allow: allow}
}

// Forward runs req against its target.
func (r *LocalRelay) Forward(ctx context.Context, req ports.RelayRequest) (string, error) {
	if req.Type != ports.RelayRequestType {
		return "", apperror.Validation(fmt.Sprintf("unsupported relay request type %q", req.Type))
	}
	if err := r.allow.Check(req.URL); err != nil {
		return "", err
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	return Execute(ctx, r.client, ports.HTTPRequest{
		Method:   req.Method,
		URL:      req.URL,
		Username: req.Username,
		Password: req.Password,
		Body:     req.Body,
		Accept:   req.Accept,
	})
}

// Respond converts a Forward outcome into the protocol answer.
func Respond(data string, err error) ports.RelayResponse {
	if err == nil {
		return ports.RelayResponse{Success: true, Data: data}
	}
	resp := ports.RelayResponse{Success: false, Error: err.Error()}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		resp.Error = appErr.Message
	}
	if status, ok := apperror.UpstreamStatus(err); ok {
		resp.Status = status
	}
	return resp
}

// HTTPRelay forwards requests to a remote relay endpoint speaking the same
// protocol. Any failure to talk to the relay itself is reported as a
// context-invalidated error.
type HTTPRelay struct {
	client HTTPClient
	url    string
	secret string
}

// NewHTTPRelay sends secret in ports.RelaySecretHeader when it is set.
func NewHTTPRelay(client HTTPClient, relayURL, secret string) *HTTPRelay {
	return &HTTPRelay{client: client, url: relayURL, secret: secret}
}

func (r *HTTPRelay) Forward(ctx context.Context, req ports.RelayRequest) (string, error) {
	req.Type = ports.RelayRequestType

	payload, err := json.Marshal(req)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("encode relay request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return "", apperror.ErrContextInvalidated(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if r.secret != "" {
		httpReq.Header.Set(ports.RelaySecretHeader, r.secret)
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", apperror.ErrNetwork(req.Method, req.URL, ctx.Err())
		}
		return "", apperror.ErrContextInvalidated(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperror.ErrContextInvalidated(fmt.Errorf("relay answered %s", resp.Status))
	}

	var out ports.RelayResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperror.ErrContextInvalidated(fmt.Errorf("decode relay response: %w", err))
	}
	if !out.Success {
		return "", relayFailure(req, out)
	}
	return out.Data, nil
}

func relayFailure(req ports.RelayRequest, out ports.RelayResponse) error {
	if out.Status != 0 {
		return apperror.ErrUpstreamHTTP(req.Method, req.URL, out.Status, http.StatusText(out.Status))
	}
	msg := out.Error
	if msg == "" {
		msg = "relay request failed"
	}
	return apperror.ErrNetwork(req.Method, req.URL, errors.New(msg))
}
