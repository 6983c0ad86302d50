package httpsource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"objectsync/core/model"

	"github.com/gofiber/fiber/v2"
)

// Model fetches records of one type from the remote API.
type Model struct {
	typ string
	cfg Config
}

// New creates a Model for typ.
func New(typ string, cfg Config) *Model {
	return &Model{typ: typ, cfg: cfg}
}

// Name implements model.Model.
func (m *Model) Name() string {
	return m.typ
}

// URL returns the request URL for q.
func (m *Model) URL(q model.Query) string {
	values := url.Values{}
	for k, v := range q.Params() {
		values.Set(k, v)
	}
	return strings.TrimRight(m.cfg.BaseURL, "/") + "/" + url.PathEscape(m.typ) + "?" + values.Encode()
}

// FindAll implements model.Model.
func (m *Model) FindAll(ctx context.Context, q model.Query) ([]model.Record, error) {
	if len(q.IDIn) == 0 {
		return nil, nil
	}

	timeout := time.Duration(m.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	// The fiber client has no context support; honour the deadline if it is shorter.
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := fiber.Get(m.URL(q)).Timeout(timeout)
	if m.cfg.APIKey != "" {
		agent.Set("X-API-Key", m.cfg.APIKey)
	}

	var records []model.Record
	code, body, errs := agent.Struct(&records)
	if len(errs) > 0 {
		if code >= fiber.StatusBadRequest {
			return nil, fmt.Errorf("GET %s: status %d: %s", m.typ, code, strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("GET %s: %w", m.typ, errors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		return nil, fmt.Errorf("GET %s: status %d: %s", m.typ, code, strings.TrimSpace(string(body)))
	}
	return records, nil
}
