package modal

import (
	"sync"

	"github.com/hexadmin/catalog-console/internal/models"
)

type Mode int

const (
	ModeNone Mode = iota
	ModeCreate
	ModeEdit
)

// EditingContext tags whether a submit creates a new record or updates an
// existing one. TargetID is set if and only if Mode is ModeEdit; submit
// routing relies on this tag alone, never on draft contents.
type EditingContext struct {
	Mode     Mode
	TargetID string
}

type Overlay int

const (
	Closed Overlay = iota
	FormOpen
	DetailOpen
)

// Coordinator tracks which overlay is visible and which product, if any, is
// its subject. At most one overlay is ever open; modals never stack.
type Coordinator struct {
	mu        sync.Mutex
	overlay   Overlay
	editing   EditingContext
	detail    models.Product
	hasDetail bool
	onClose   func()
}

func New() *Coordinator {
	return &Coordinator{}
}

// OnClose registers a hook run after every close, whatever triggered it, so
// stale draft state can never leak into the next form.
func (c *Coordinator) OnClose(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onClose = fn
}

func (c *Coordinator) OpenCreateForm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.overlay = FormOpen
	c.editing = EditingContext{Mode: ModeCreate}
	c.hasDetail = false
}

// OpenEditForm opens the edit form for the given product. A visible detail
// overlay gives way first.
func (c *Coordinator) OpenEditForm(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.overlay = FormOpen
	c.editing = EditingContext{Mode: ModeEdit, TargetID: p.ID}
	c.hasDetail = false
}

func (c *Coordinator) OpenDetail(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.overlay = DetailOpen
	c.editing = EditingContext{}
	c.detail = p
	c.hasDetail = true
}

// Close returns to the closed state from any overlay and resets the editing
// context, then runs the close hook.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.overlay = Closed
	c.editing = EditingContext{}
	c.detail = models.Product{}
	c.hasDetail = false
	hook := c.onClose
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (c *Coordinator) Overlay() Overlay {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.overlay
}

func (c *Coordinator) Editing() EditingContext {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.editing
}

func (c *Coordinator) Detail() (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.detail, c.hasDetail
}
