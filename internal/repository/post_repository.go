package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/d60-Lab/blog-admin/internal/model"
)

var (
	// ErrUnavailable 后端不可达（连接失败、超时）
	ErrUnavailable = errors.New("posts api unavailable")
	// ErrNotFound 后端返回 404
	ErrNotFound = errors.New("posts api: not found")
	// ErrUnexpectedStatus 其余非 2xx 响应
	ErrUnexpectedStatus = errors.New("posts api: unexpected status")
)

// PostRepository 文章数据来自外部 REST 后端
type PostRepository interface {
	List(ctx context.Context) ([]model.Post, error)
	Create(ctx context.Context, post model.NewPost) (*model.Post, error)
	ListTags(ctx context.Context) ([]string, error)
	ListByTag(ctx context.Context, tag string) ([]model.Post, error)
}

type httpPostRepository struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
}

// NewHTTPPostRepository baseURL 形如 http://127.0.0.1:5000/api
func NewHTTPPostRepository(baseURL string, timeout time.Duration) PostRepository {
	return NewHTTPPostRepositoryWithClient(baseURL, &http.Client{Timeout: timeout})
}

func NewHTTPPostRepositoryWithClient(baseURL string, client *http.Client) PostRepository {
	return &httpPostRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tracer:  otel.Tracer("github.com/d60-Lab/blog-admin/internal/repository"),
	}
}

func (r *httpPostRepository) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.do(ctx, http.MethodGet, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *httpPostRepository) Create(ctx context.Context, post model.NewPost) (*model.Post, error) {
	var created model.Post
	if err := r.do(ctx, http.MethodPost, "/posts", post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *httpPostRepository) ListTags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := r.do(ctx, http.MethodGet, "/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *httpPostRepository) ListByTag(ctx context.Context, tag string) ([]model.Post, error) {
	var posts []model.Post
	path := "/tags/" + url.PathEscape(strings.ToLower(tag)) + "/posts"
	if err := r.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// do 发送请求并把 2xx 响应体解码进 out
func (r *httpPostRepository) do(ctx context.Context, method, path string, in, out any) (err error) {
	ctx, span := r.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var body io.Reader
	if in != nil {
		payload, mErr := json.Marshal(in)
		if mErr != nil {
			return fmt.Errorf("encode request: %w", mErr)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s %s: %d", ErrUnexpectedStatus, method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
