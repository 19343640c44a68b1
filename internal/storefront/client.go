// Package storefront is the typed client for the external storefront REST API.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/tracing"
)

// TokenHeader is the request header that carries the session token.
const TokenHeader = "token"

const maxBodyBytes = 10 << 20

// TokenSource supplies the session token and is told to drop the session
// when the API rejects it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// Config holds the API client settings.
type Config struct {
	BaseURL string

	// DetailTimeout bounds the detail reads (invoice, order, successful orders).
	DetailTimeout time.Duration
}

// Client issues requests against the storefront API. It is safe for
// concurrent use.
type Client struct {
	baseURL       string
	detailTimeout time.Duration
	doer          httpclient.Doer
	tokens        TokenSource
	logger        *slog.Logger
	tracer        trace.Tracer
}

// NewClient creates an API client sending requests through doer.
func NewClient(cfg Config, doer httpclient.Doer, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		detailTimeout: cfg.DetailTimeout,
		doer:          doer,
		tokens:        tokens,
		logger:        logger,
		tracer:        tracing.Tracer("github.com/utafrali/storefront/internal/storefront"),
	}
}

type authMode int

const (
	// authRequired fails fast with ErrNoToken when no usable token exists.
	authRequired authMode = iota
	// authOptional attaches the token when there is one.
	authOptional
	// authNone never sends a token.
	authNone
)

// call describes one API request.
type call struct {
	method    string
	path      string
	query     url.Values
	body      any
	multipart *multipartBody
	auth      authMode
	timeout   time.Duration
	overrides httpclient.StatusMessages

	// rejected is the message used when the server answers success:false
	// without a message of its own.
	rejected string
}

// do executes c and returns the raw 2xx body. Every failure is an AppError
// carrying a user-facing message.
func (cl *Client) do(ctx context.Context, c call) ([]byte, error) {
	var tok string
	if c.auth != authNone {
		t, err := cl.token(ctx)
		switch {
		case err == nil:
			tok = t
		case c.auth == authRequired:
			return nil, err
		}
	}

	ctx, cancel := httpclient.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := cl.tracer.Start(ctx, c.method+" "+c.path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPMethod(c.method),
			attribute.String("storefront.endpoint", c.path),
		),
	)
	defer span.End()

	req, err := cl.newRequest(ctx, c, tok)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, apperrors.Internal(err)
	}

	log := logger.WithContext(ctx, cl.logger)
	start := time.Now()

	resp, err := cl.doer.Do(ctx, req)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			span.SetAttributes(semconv.HTTPStatusCode(statusErr.Status))
			span.SetStatus(codes.Error, http.StatusText(statusErr.Status))
			log.Warn("storefront api server error",
				slog.String("endpoint", c.path),
				slog.Int("status", statusErr.Status),
			)
			return nil, httpclient.MapStatus(statusErr.Status, httpclient.ServerMessage(statusErr.Body), c.overrides)
		}

		appErr := httpclient.TransportError(ctx, c.path, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.Message(appErr))
		log.Warn("storefront api request failed",
			slog.String("endpoint", c.path),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return nil, appErr
	}
	span.SetAttributes(semconv.HTTPStatusCode(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		mapStatus := httpclient.MapStatus
		if tok == "" {
			mapStatus = httpclient.MapSessionlessStatus
		}
		mapped := mapStatus(resp.StatusCode, httpclient.ResponseMessage(resp), c.overrides)
		if resp.StatusCode == http.StatusUnauthorized && tok != "" {
			log.Info("storefront api rejected session token, resetting session")
			if err := cl.tokens.Logout(ctx); err != nil {
				log.Warn("session reset incomplete", slog.String("error", err.Error()))
			}
		}
		log.Debug("storefront api error response",
			slog.String("endpoint", c.path),
			slog.Int("status", resp.StatusCode),
		)
		return nil, mapped
	}

	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		appErr := httpclient.TransportError(ctx, c.path, err)
		span.SetStatus(codes.Error, apperrors.Message(appErr))
		return nil, appErr
	}

	var env httpclient.Envelope
	if json.Unmarshal(body, &env) == nil && env.Failed() {
		span.SetStatus(codes.Error, "rejected")
		return nil, apperrors.Rejected(env.Text(), c.rejected)
	}

	log.Debug("storefront api call",
		slog.String("method", c.method),
		slog.String("endpoint", c.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}

func (cl *Client) token(ctx context.Context) (string, error) {
	if cl.tokens == nil {
		return "", apperrors.NoToken()
	}
	return cl.tokens.Token(ctx)
}

func (cl *Client) newRequest(ctx context.Context, c call, tok string) (*http.Request, error) {
	u := cl.baseURL + c.path
	if len(c.query) > 0 {
		u += "?" + c.query.Encode()
	}

	var (
		body        io.Reader = http.NoBody
		contentType string
	)
	switch {
	case c.multipart != nil:
		buf, ct, err := c.multipart.encode()
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case c.body != nil:
		raw, err := json.Marshal(c.body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s body: %w", c.path, err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, c.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", c.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok != "" {
		req.Header.Set(TokenHeader, tok)
	}

	cid := logger.CorrelationIDFromContext(ctx)
	if cid == "" {
		cid = uuid.NewString()
	}
	req.Header.Set("X-Correlation-ID", cid)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

// decode unmarshals body into dst, reporting a malformed response as an
// internal error.
func decode(path string, body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.Internal(fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

// pick returns the first present field among keys of a JSON object body. A
// body that is itself an array is returned as is.
func pick(body []byte, keys ...string) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(trimmed, &fields) != nil {
		return nil
	}
	for _, k := range keys {
		if v, ok := fields[k]; ok && len(v) > 0 && string(v) != "null" {
			return v
		}
	}
	return nil
}

func isObject(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// decodeOne decodes a single document found under one of keys, or the body
// itself when none is present.
func decodeOne(path string, body []byte, dst any, keys ...string) error {
	if raw := pick(body, keys...); raw != nil {
		return decode(path, raw, dst)
	}
	return decode(path, body, dst)
}

// decodeField decodes the first present field among keys into dst. A body
// without any of the keys leaves dst untouched.
func decodeField(path string, body []byte, dst any, keys ...string) error {
	raw := pick(body, keys...)
	if raw == nil {
		return nil
	}
	return decode(path, raw, dst)
}
