package console

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/hexadmin/catalog-console/internal/catalog"
	"github.com/hexadmin/catalog-console/internal/client"
	"github.com/hexadmin/catalog-console/internal/config"
	"github.com/hexadmin/catalog-console/internal/draft"
	"github.com/hexadmin/catalog-console/internal/errors"
	"github.com/hexadmin/catalog-console/internal/modal"
	"github.com/hexadmin/catalog-console/internal/models"
	"github.com/hexadmin/catalog-console/internal/notify"
	"github.com/hexadmin/catalog-console/internal/session"
)

// Console wires the gate, store, form, overlays and sink into the
// operator-facing actions. The gate decides whether the store may fetch at
// all; the overlays own which form the submit routes to.
type Console struct {
	log      *slog.Logger
	api      client.Client
	gate     *session.Gate
	store    *catalog.Store
	form     *draft.Form
	overlays *modal.Coordinator
	sink     notify.Sink
}

func New(
	api client.Client,
	gate *session.Gate,
	store *catalog.Store,
	form *draft.Form,
	overlays *modal.Coordinator,
	sink notify.Sink,
	log *slog.Logger,
) *Console {
	// Closing an overlay by any path must also reset the draft.
	overlays.OnClose(form.Reset)

	return &Console{
		log:      log,
		api:      api,
		gate:     gate,
		store:    store,
		form:     form,
		overlays: overlays,
		sink:     sink,
	}
}

// Build constructs the full component graph from configuration.
func Build(cfg *config.Config, sink notify.Sink, log *slog.Logger) *Console {
	cookies := session.NewCookieStore(cfg.Session.CookiePath)
	gate := session.NewGate(cookies, log)
	api := client.New(&cfg.API, gate)
	store := catalog.NewStore(api, sink, log)
	overlays := modal.New()
	form := draft.NewForm(api, gate, store, overlays, sink, log)

	return New(api, gate, store, form, overlays, sink, log)
}

// Start restores a persisted session. Without a token no fetch is issued and
// the login view stays active; with a verified token page 1 is fetched.
func (c *Console) Start(ctx context.Context) {
	if c.gate.Restore(ctx, c.api) != session.StatusAuthenticated {
		c.log.Info("No authenticated session; showing login view")

		return
	}

	_ = c.store.FetchPage(ctx, 1)
}

func (c *Console) Login(ctx context.Context, username, password string) error {
	if err := c.gate.Login(ctx, c.api, username, password); err != nil {
		c.sink.NotifyError("Login failed", errors.UserMessage(err))

		return err
	}

	c.sink.NotifySuccess("Signed in", 1500*time.Millisecond)
	_ = c.store.FetchPage(ctx, 1)

	return nil
}

func (c *Console) Authenticated() bool {
	return c.gate.Authenticated()
}

func (c *Console) OpenCreate() {
	c.overlays.OpenCreateForm()
	c.form.StartCreate()
}

func (c *Console) OpenEdit(p models.Product) {
	c.overlays.OpenEditForm(p)
	c.form.StartEdit(p)
}

func (c *Console) OpenDetail(p models.Product) {
	c.overlays.OpenDetail(p)
}

func (c *Console) CloseOverlay() {
	c.overlays.Close()
}

func (c *Console) ChangePage(ctx context.Context, page int) {
	if !c.gate.Authenticated() {
		return
	}

	c.store.RequestPageChange(ctx, page)
}

func (c *Console) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, id)
}

func (c *Console) SetField(field, value string) error {
	return c.form.ApplyFieldChange(field, value)
}

func (c *Console) SubmitForm(ctx context.Context) error {
	return c.form.Submit(ctx)
}

func (c *Console) UploadImage(ctx context.Context, filename string, file io.Reader) error {
	return c.form.UploadImage(ctx, filename, file)
}

func (c *Console) Catalog() *catalog.Store {
	return c.store
}

func (c *Console) Form() *draft.Form {
	return c.form
}

func (c *Console) Overlays() *modal.Coordinator {
	return c.overlays
}

func (c *Console) Gate() *session.Gate {
	return c.gate
}
