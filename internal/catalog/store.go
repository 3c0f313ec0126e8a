package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hexadmin/catalog-console/internal/client"
	"github.com/hexadmin/catalog-console/internal/errors"
	"github.com/hexadmin/catalog-console/internal/models"
	"github.com/hexadmin/catalog-console/internal/notify"
)

// Store holds the fetched page of products and its pagination summary, and
// coordinates the re-fetch after every successful mutation. Products and
// pagination are only ever replaced together, from a single response.
type Store struct {
	mu   sync.Mutex
	log  *slog.Logger
	api  client.Client
	sink notify.Sink

	products      []models.Product
	pagination    models.Pagination
	hasPagination bool
	currentPage   int

	// seq is a monotonic number per issued fetch; a completion whose number
	// is no longer the latest issued is discarded, so the last-initiated
	// request wins regardless of completion order.
	seq         uint64
	pendingPage int
}

func NewStore(api client.Client, sink notify.Sink, log *slog.Logger) *Store {
	return &Store{log: log, api: api, sink: sink, currentPage: 1}
}

// FetchPage lists the given page and, on success, atomically replaces the
// product collection, the pagination summary and the current page. On failure
// the prior state is kept: stale-but-consistent over blank-but-broken.
func (s *Store) FetchPage(ctx context.Context, page int) error {
	s.mu.Lock()
	s.seq++
	issued := s.seq
	s.pendingPage = page
	s.mu.Unlock()

	result, err := s.api.ListProducts(ctx, page)

	s.mu.Lock()
	defer s.mu.Unlock()

	if issued != s.seq {
		// A newer fetch was issued while this one was in flight.
		s.log.Debug("Discarding stale page response", slog.Int("page", page))

		return nil
	}

	s.pendingPage = 0

	if err != nil {
		s.log.Error("Failed to fetch product page",
			slog.Int("page", page), slog.String("error", err.Error()))

		return err
	}

	s.products = result.Products
	s.pagination = result.Pagination
	s.hasPagination = true
	s.currentPage = page

	return nil
}

// RequestPageChange fetches the given page unless it is out of the known
// range or a fetch for the same page is already pending, guarding against
// rapid double-clicks issuing redundant requests.
func (s *Store) RequestPageChange(ctx context.Context, page int) {
	s.mu.Lock()

	if page < 1 || (s.hasPagination && page > s.pagination.TotalPages) {
		s.mu.Unlock()

		return
	}

	if s.pendingPage == page {
		s.mu.Unlock()

		return
	}
	s.mu.Unlock()

	// Failures are logged by FetchPage and leave the prior page visible.
	_ = s.FetchPage(ctx, page)
}

// RefreshCurrentPage re-fetches the page the operator is looking at. Every
// successful create, update and delete funnels through here, so a delete that
// empties the last page surfaces a visibly short list.
func (s *Store) RefreshCurrentPage(ctx context.Context) {
	s.mu.Lock()
	page := s.currentPage
	s.mu.Unlock()

	_ = s.FetchPage(ctx, page)
}

// Delete removes a product after an operator confirmation. Declining issues
// no request at all; a failed delete leaves the row list unchanged.
func (s *Store) Delete(ctx context.Context, id string) error {
	if !s.sink.Confirm("Delete this product? This cannot be undone.") {
		return nil
	}

	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.sink.NotifyError("Delete failed", errors.UserMessage(err))

		return err
	}

	s.sink.NotifySuccess("Product deleted", 1500*time.Millisecond)
	s.RefreshCurrentPage(ctx)

	return nil
}

func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)

	return out
}

func (s *Store) Pagination() (models.Pagination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pagination, s.hasPagination
}

func (s *Store) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentPage
}
