// Package mocks provides a testify mock of the catalog client for unit tests.
package mocks

import (
	"context"
	"io"

	"github.com/hexadmin/catalog-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type CatalogClient struct {
	mock.Mock
}

func (m *CatalogClient) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	args := m.Called(ctx, username, password)

	var result *models.LoginResult
	if args.Get(0) != nil {
		result = args.Get(0).(*models.LoginResult)
	}

	return result, args.Error(1)
}

func (m *CatalogClient) CheckSession(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *CatalogClient) ListProducts(ctx context.Context, page int) (*models.ProductPage, error) {
	args := m.Called(ctx, page)

	var result *models.ProductPage
	if args.Get(0) != nil {
		result = args.Get(0).(*models.ProductPage)
	}

	return result, args.Error(1)
}

func (m *CatalogClient) CreateProduct(ctx context.Context, draft *models.ProductDraft) error {
	args := m.Called(ctx, draft)

	return args.Error(0)
}

func (m *CatalogClient) UpdateProduct(ctx context.Context, id string, draft *models.ProductDraft) error {
	args := m.Called(ctx, id, draft)

	return args.Error(0)
}

func (m *CatalogClient) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *CatalogClient) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	args := m.Called(ctx, filename, file)

	return args.String(0), args.Error(1)
}
