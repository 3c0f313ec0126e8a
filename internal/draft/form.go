package draft

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hexadmin/catalog-console/internal/catalog"
	"github.com/hexadmin/catalog-console/internal/client"
	"github.com/hexadmin/catalog-console/internal/errors"
	"github.com/hexadmin/catalog-console/internal/modal"
	"github.com/hexadmin/catalog-console/internal/models"
	"github.com/hexadmin/catalog-console/internal/notify"
)

// Form is the mutable in-progress create/edit state, independent of the
// fetched list. It routes its submit on the modal coordinator's editing
// context and leaves everything untouched on failure so the operator can
// correct and retry without re-entering fields.
type Form struct {
	mu         sync.Mutex
	log        *slog.Logger
	api        client.Client
	tokens     client.TokenSource
	sink       notify.Sink
	store      *catalog.Store
	overlays   *modal.Coordinator
	validate   *validator.Validate
	d          models.ProductDraft
	submitting bool
}

func NewForm(
	api client.Client,
	tokens client.TokenSource,
	store *catalog.Store,
	overlays *modal.Coordinator,
	sink notify.Sink,
	log *slog.Logger,
) *Form {
	return &Form{
		log:      log,
		api:      api,
		tokens:   tokens,
		sink:     sink,
		store:    store,
		overlays: overlays,
		validate: validator.New(),
		d:        models.EmptyDraft(),
	}
}

func (f *Form) StartCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.d = models.EmptyDraft()
}

func (f *Form) StartEdit(p models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.d = models.DraftFromProduct(p)
}

// Reset returns the draft to the canonical empty shape. Registered as the
// modal coordinator's close hook.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.d = models.EmptyDraft()
}

func (f *Form) Snapshot() models.ProductDraft {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snapshotLocked()
}

func (f *Form) snapshotLocked() models.ProductDraft {
	d := f.d
	d.ImagesURL = append([]string{}, f.d.ImagesURL...)
	d.ImagesPreview = append([]string{}, f.d.ImagesPreview...)

	return d
}

// ApplyFieldChange stores a single form input. Most fields are a pure
// assignment; imageUrl mirrors into its preview, imagesUrl is a raw
// comma-separated string split into both list fields, and numeric fields are
// coerced so text can never end up in a numeric slot.
func (f *Form) ApplyFieldChange(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case "title":
		f.d.Title = value
	case "category":
		f.d.Category = value
	case "unit":
		f.d.Unit = value
	case "description":
		f.d.Description = value
	case "content":
		f.d.Content = value
	case "imageUrl":
		f.d.ImageURL = value
		f.d.ImagePreview = value
	case "imagesUrl":
		urls := splitImageList(value)
		f.d.ImagesURL = urls
		f.d.ImagesPreview = append([]string{}, urls...)
	case "origin_price":
		f.d.OriginPrice = coerceNumber(value)
	case "price":
		f.d.Price = coerceNumber(value)
	case "is_enabled":
		if n := coerceNumber(value); !math.IsNaN(n) {
			f.d.IsEnabled = int(n)
		} else {
			f.d.IsEnabled = 0
		}
	default:
		return errors.LocalError(fmt.Sprintf("Unknown product field %q", field))
	}

	return nil
}

// Submit routes to create or update strictly on the editing context tag. On
// success the draft is reset, the modal closes and the current page is
// re-fetched; on failure draft and modal stay put for a retry.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()

	if f.submitting {
		f.mu.Unlock()

		return errors.LocalError("A submit is already in flight")
	}

	editing := f.overlays.Editing()
	if editing.Mode == modal.ModeNone {
		f.mu.Unlock()

		return errors.LocalError("No product form is open")
	}

	d := f.snapshotLocked()
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if err := f.validate.Struct(&d); err != nil {
		message := "Invalid product data"

		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			message = fmt.Sprintf("Field %s is invalid", fieldErrs[0].Field())
		}

		f.sink.NotifyError("Validation failed", message)

		return errors.LocalError(message).WithError(err)
	}

	var err error

	var successMessage, failureTitle string

	switch editing.Mode {
	case modal.ModeCreate:
		err = f.api.CreateProduct(ctx, &d)
		successMessage, failureTitle = "Product created", "Create failed"
	case modal.ModeEdit:
		err = f.api.UpdateProduct(ctx, editing.TargetID, &d)
		successMessage, failureTitle = "Product updated", "Update failed"
	}

	if err != nil {
		f.sink.NotifyError(failureTitle, errors.UserMessage(err))

		return err
	}

	f.sink.NotifySuccess(successMessage, 1500*time.Millisecond)
	f.Reset()
	f.overlays.Close()
	f.store.RefreshCurrentPage(ctx)

	return nil
}

// UploadImage sends the file and, on success, points both imageUrl and its
// preview at the returned reference. A missing file or missing session token
// short-circuits before any network call; a failed upload leaves the existing
// image fields untouched.
func (f *Form) UploadImage(ctx context.Context, filename string, file io.Reader) error {
	if file == nil || filename == "" {
		// The file input handed us nothing; mirror its no-op.
		return nil
	}

	if f.tokens.Token() == "" {
		// Header attachment on page reload races with the upload handler.
		f.sink.NotifyError("Upload failed", "You are not signed in")

		return errors.UnauthorizedError("No session token available for upload")
	}

	imageURL, err := f.api.UploadImage(ctx, filename, file)
	if err != nil {
		f.sink.NotifyError("Upload failed", errors.UserMessage(err))

		return err
	}

	f.mu.Lock()
	f.d.ImageURL = imageURL
	f.d.ImagePreview = imageURL
	f.mu.Unlock()

	f.sink.NotifySuccess("Image uploaded", 1500*time.Millisecond)

	return nil
}

// coerceNumber mirrors a numeric form input: empty reads as zero, anything
// non-numeric becomes NaN so it fails the pre-submit numeric check instead of
// surviving as text.
func coerceNumber(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}

	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}

	return n
}

// splitImageList splits a raw comma-separated string, trims each piece and
// drops empty ones. Applying it twice yields the same sequence as once.
func splitImageList(raw string) []string {
	urls := make([]string, 0)

	for _, piece := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(piece); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}

	return urls
}
