package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/hexadmin/catalog-console/internal/config"
	"github.com/hexadmin/catalog-console/internal/errors"
	"github.com/hexadmin/catalog-console/internal/metrics"
	"github.com/hexadmin/catalog-console/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource provides the current session token. The token is owned and
// written by the session gate alone; the client only reads it, per call.
type TokenSource interface {
	Token() string
}

// Client is the typed transport to the product API. No call is ever retried
// automatically; failures surface immediately so the operator can re-submit.
type Client interface {
	Login(ctx context.Context, username, password string) (*models.LoginResult, error)
	CheckSession(ctx context.Context) error
	ListProducts(ctx context.Context, page int) (*models.ProductPage, error)
	CreateProduct(ctx context.Context, draft *models.ProductDraft) error
	UpdateProduct(ctx context.Context, id string, draft *models.ProductDraft) error
	DeleteProduct(ctx context.Context, id string) error
	UploadImage(ctx context.Context, filename string, file io.Reader) (string, error)
}

type catalogClient struct {
	http    *resty.Client
	apiPath string
	tokens  TokenSource
}

func New(cfg *config.API, tokens TokenSource) Client {
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport))

	return &catalogClient{http: rc, apiPath: cfg.Path, tokens: tokens}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	envelope
	Token   string `json:"token"`
	Expired int64  `json:"expired"`
}

type listResponse struct {
	envelope
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
}

type uploadResponse struct {
	envelope
	ImageURL string `json:"imageUrl"`
}

// create and update wrap the draft in a data envelope on the wire.
type productPayload struct {
	Data *models.ProductDraft `json:"data"`
}

func (c *catalogClient) newRequest(ctx context.Context, authed bool) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	if authed {
		// The API expects the raw token as the Authorization value, no
		// Bearer prefix.
		if token := c.tokens.Token(); token != "" {
			req.SetHeader("Authorization", token)
		}
	}

	return req
}

// decode classifies the outcome of a call into the error taxonomy: transport
// failure (no usable response), server rejection (well-formed failure), or
// success with out populated.
func decode(resp *resty.Response, err error, out interface{ failed() (bool, string) }) error {
	if err != nil {
		return errors.TransportError("Could not reach the catalog service").WithError(err)
	}

	if unmarshalErr := json.Unmarshal(resp.Body(), out); unmarshalErr != nil {
		return errors.TransportError("Catalog service returned an unreadable response").WithError(unmarshalErr)
	}

	if rejected, message := out.failed(); rejected || resp.IsError() {
		if message == "" {
			message = fmt.Sprintf("Request failed with status %d", resp.StatusCode())
		}

		return errors.ServerError(message, resp.StatusCode())
	}

	return nil
}

func (e *envelope) failed() (bool, string) {
	return !e.Success, e.Message
}

func (c *catalogClient) Login(ctx context.Context, username, password string) (result *models.LoginResult, err error) {
	defer func(start time.Time) { metrics.ObserveAPICall("login", start, err) }(time.Now())

	var out loginResponse

	resp, callErr := c.newRequest(ctx, false).
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/admin/signin")

	// Signin replies without a success flag; a token plus 2xx means success.
	if callErr != nil {
		return nil, errors.TransportError("Could not reach the catalog service").WithError(callErr)
	}

	if unmarshalErr := json.Unmarshal(resp.Body(), &out); unmarshalErr != nil {
		return nil, errors.TransportError("Catalog service returned an unreadable response").WithError(unmarshalErr)
	}

	if resp.IsError() || out.Token == "" {
		message := out.Message
		if message == "" {
			message = fmt.Sprintf("Signin failed with status %d", resp.StatusCode())
		}

		return nil, errors.ServerError(message, resp.StatusCode())
	}

	return &models.LoginResult{Token: out.Token, Expired: time.UnixMilli(out.Expired)}, nil
}

func (c *catalogClient) CheckSession(ctx context.Context) (err error) {
	defer func(start time.Time) { metrics.ObserveAPICall("check_session", start, err) }(time.Now())

	var out envelope

	resp, callErr := c.newRequest(ctx, true).Post("/api/user/check")

	return decode(resp, callErr, &out)
}

func (c *catalogClient) ListProducts(ctx context.Context, page int) (result *models.ProductPage, err error) {
	defer func(start time.Time) { metrics.ObserveAPICall("list_products", start, err) }(time.Now())

	var out listResponse

	resp, callErr := c.newRequest(ctx, true).
		SetQueryParam("page", strconv.Itoa(page)).
		Get(fmt.Sprintf("/api/%s/admin/products", c.apiPath))

	if decodeErr := decode(resp, callErr, &out); decodeErr != nil {
		return nil, decodeErr
	}

	return &models.ProductPage{Products: out.Products, Pagination: out.Pagination}, nil
}

func (c *catalogClient) CreateProduct(ctx context.Context, draft *models.ProductDraft) (err error) {
	defer func(start time.Time) { metrics.ObserveAPICall("create_product", start, err) }(time.Now())

	var out envelope

	resp, callErr := c.newRequest(ctx, true).
		SetBody(productPayload{Data: draft}).
		Post(fmt.Sprintf("/api/%s/admin/product", c.apiPath))

	return decode(resp, callErr, &out)
}

func (c *catalogClient) UpdateProduct(ctx context.Context, id string, draft *models.ProductDraft) (err error) {
	defer func(start time.Time) { metrics.ObserveAPICall("update_product", start, err) }(time.Now())

	var out envelope

	resp, callErr := c.newRequest(ctx, true).
		SetBody(productPayload{Data: draft}).
		Put(fmt.Sprintf("/api/%s/admin/product/%s", c.apiPath, id))

	return decode(resp, callErr, &out)
}

func (c *catalogClient) DeleteProduct(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { metrics.ObserveAPICall("delete_product", start, err) }(time.Now())

	var out envelope

	resp, callErr := c.newRequest(ctx, true).
		Delete(fmt.Sprintf("/api/%s/admin/product/%s", c.apiPath, id))

	return decode(resp, callErr, &out)
}

func (c *catalogClient) UploadImage(ctx context.Context, filename string, file io.Reader) (imageURL string, err error) {
	defer func(start time.Time) { metrics.ObserveAPICall("upload_image", start, err) }(time.Now())

	var out uploadResponse

	resp, callErr := c.newRequest(ctx, true).
		SetFileReader("file-to-upload", filename, file).
		Post(fmt.Sprintf("/api/%s/admin/upload", c.apiPath))

	if decodeErr := decode(resp, callErr, &out); decodeErr != nil {
		return "", decodeErr
	}

	if out.ImageURL == "" {
		return "", errors.ServerError("Upload succeeded but no image reference was returned", resp.StatusCode())
	}

	return out.ImageURL, nil
}
