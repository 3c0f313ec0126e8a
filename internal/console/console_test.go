package console_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hexadmin/catalog-console/internal/config"
	"github.com/hexadmin/catalog-console/internal/console"
	"github.com/hexadmin/catalog-console/internal/modal"
	"github.com/hexadmin/catalog-console/internal/models"
	"github.com/hexadmin/catalog-console/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T, fake *testutils.FakeAPI, cookiePath string) (*console.Console, *testutils.SinkRecorder) {
	t.Helper()

	if cookiePath == "" {
		cookiePath = filepath.Join(t.TempDir(), "hexsession")
	}

	cfg := &config.Config{
		Env: "test",
		API: config.API{
			BaseURL: fake.URL(),
			Path:    fake.APIPath,
			Timeout: 5 * time.Second,
		},
		Session: config.Session{CookiePath: cookiePath},
	}

	sink := &testutils.SinkRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return console.Build(cfg, sink, logger), sink
}

func TestStart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - No persisted session issues no fetch", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeAPI(t)
		c, _ := newTestConsole(t, fake, "")

		// Act
		c.Start(ctx)

		// Assert: the login view stays active and nothing hit the wire.
		assert.False(t, c.Authenticated())
		assert.Empty(t, fake.ListedPages())
		assert.Zero(t, fake.CheckCalls)
		assert.Empty(t, c.Catalog().Products())
	})

	t.Run("Success - Persisted session is verified and page 1 fetched", func(t *testing.T) {
		// Arrange: a previous run signed in and persisted its cookie.
		fake := testutils.NewFakeAPI(t)
		fake.Pages[1] = []models.Product{{ID: "prod-1", Title: "Widget"}}
		cookiePath := filepath.Join(t.TempDir(), "hexsession")

		previous, _ := newTestConsole(t, fake, cookiePath)
		require.NoError(t, previous.Login(ctx, "admin@example.com", "secret"))

		c, _ := newTestConsole(t, fake, cookiePath)

		// Act
		c.Start(ctx)

		// Assert
		assert.True(t, c.Authenticated())
		assert.Equal(t, 1, fake.CheckCalls)
		require.Len(t, c.Catalog().Products(), 1)
		assert.Equal(t, "Widget", c.Catalog().Products()[0].Title)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Token attached and first page loaded", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeAPI(t)
		fake.Pages[1] = []models.Product{{ID: "prod-1", Title: "Widget"}}
		c, sink := newTestConsole(t, fake, "")

		// Act
		err := c.Login(ctx, "admin@example.com", "secret")

		// Assert
		require.NoError(t, err)
		assert.True(t, c.Authenticated())
		assert.Equal(t, []int{1}, fake.ListedPages())
		assert.Equal(t, fake.Token, fake.AuthHeaderSeen())
		assert.Contains(t, sink.Successes(), "Signed in")
	})

	t.Run("Failure - Rejection surfaces the server message and fetches nothing", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeAPI(t)
		fake.RejectLogin = "帳號或密碼錯誤"
		c, sink := newTestConsole(t, fake, "")

		// Act
		err := c.Login(ctx, "admin@example.com", "wrong")

		// Assert
		require.Error(t, err)
		assert.False(t, c.Authenticated())
		assert.Empty(t, fake.ListedPages())
		assert.Contains(t, sink.Errors(), "Login failed: 帳號或密碼錯誤")
	})
}

func TestChangePage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Authenticated page change fetches that page", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeAPI(t)
		fake.Pages[1] = []models.Product{{ID: "prod-1", Title: "Widget"}}
		fake.Pages[2] = []models.Product{{ID: "prod-2", Title: "Gadget"}}

		c, _ := newTestConsole(t, fake, "")
		require.NoError(t, c.Login(ctx, "admin@example.com", "secret"))

		// Act
		c.ChangePage(ctx, 2)

		// Assert
		assert.Equal(t, []int{1, 2}, fake.ListedPages())
		assert.Equal(t, 2, c.Catalog().CurrentPage())
		assert.Equal(t, "Gadget", c.Catalog().Products()[0].Title)
	})

	t.Run("Success - Unauthenticated page change is a no-op", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeAPI(t)
		c, _ := newTestConsole(t, fake, "")

		// Act
		c.ChangePage(ctx, 2)

		// Assert
		assert.Empty(t, fake.ListedPages())
	})
}

func TestCreateFlow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	fake := testutils.NewFakeAPI(t)
	fake.Pages[1] = []models.Product{}

	c, sink := newTestConsole(t, fake, "")
	require.NoError(t, c.Login(ctx, "admin@example.com", "secret"))

	// Act: open the create form, fill it in, submit.
	c.OpenCreate()
	require.NoError(t, c.SetField("title", "Widget"))
	require.NoError(t, c.SetField("origin_price", "100"))
	require.NoError(t, c.SetField("price", "80"))
	require.NoError(t, c.SubmitForm(ctx))

	// Assert: the draft reached the wire and the visible page was re-fetched.
	created := fake.CreatedDrafts()
	require.Len(t, created, 1)
	assert.Equal(t, "Widget", created[0].Title)
	assert.InDelta(t, 100.0, created[0].OriginPrice, 0)
	assert.InDelta(t, 80.0, created[0].Price, 0)

	assert.Equal(t, []int{1, 1}, fake.ListedPages())
	assert.Equal(t, modal.Closed, c.Overlays().Overlay())
	assert.Equal(t, models.EmptyDraft(), c.Form().Snapshot())
	assert.Contains(t, sink.Successes(), "Product created")
}

func TestEditFlow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	product := models.Product{ID: "prod-1", Title: "Widget", OriginPrice: 100, Price: 80, IsEnabled: 1}

	fake := testutils.NewFakeAPI(t)
	fake.Pages[1] = []models.Product{product}

	c, _ := newTestConsole(t, fake, "")
	require.NoError(t, c.Login(ctx, "admin@example.com", "secret"))

	// Act
	c.OpenEdit(product)
	require.NoError(t, c.SetField("price", "70"))
	require.NoError(t, c.SubmitForm(ctx))

	// Assert: the update targeted the edited product's id.
	updated, ok := fake.UpdatedDraft("prod-1")
	require.True(t, ok)
	assert.InDelta(t, 70.0, updated.Price, 0)
	assert.Equal(t, modal.Closed, c.Overlays().Overlay())
}

func TestCloseOverlayResetsDraft(t *testing.T) {
	// Arrange
	ctx := context.Background()
	fake := testutils.NewFakeAPI(t)
	c, _ := newTestConsole(t, fake, "")
	require.NoError(t, c.Login(ctx, "admin@example.com", "secret"))

	c.OpenCreate()
	require.NoError(t, c.SetField("title", "Abandoned"))

	// Act: closing without submitting.
	c.CloseOverlay()

	// Assert: the next create starts from a clean slate.
	assert.Equal(t, models.EmptyDraft(), c.Form().Snapshot())
	assert.Equal(t, modal.ModeNone, c.Overlays().Editing().Mode)
}

func TestDeleteFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Confirmed delete refreshes the list", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeAPI(t)
		fake.Pages[1] = []models.Product{{ID: "prod-1", Title: "Widget"}}

		c, sink := newTestConsole(t, fake, "")
		sink.ConfirmAnswer = true
		require.NoError(t, c.Login(ctx, "admin@example.com", "secret"))

		// Act
		err := c.Delete(ctx, "prod-1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"prod-1"}, fake.DeletedIDs())
		assert.Equal(t, []int{1, 1}, fake.ListedPages())
	})

	t.Run("Success - Declined confirmation never reaches the wire", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeAPI(t)
		fake.Pages[1] = []models.Product{{ID: "prod-1", Title: "Widget"}}

		c, sink := newTestConsole(t, fake, "")
		sink.ConfirmAnswer = false
		require.NoError(t, c.Login(ctx, "admin@example.com", "secret"))

		// Act
		err := c.Delete(ctx, "prod-1")

		// Assert
		require.NoError(t, err)
		assert.Empty(t, fake.DeletedIDs())
		assert.Len(t, sink.Prompts(), 1)
	})
}

func TestUploadFlow(t *testing.T) {
	// Arrange
	ctx := context.Background()
	fake := testutils.NewFakeAPI(t)
	c, _ := newTestConsole(t, fake, "")
	require.NoError(t, c.Login(ctx, "admin@example.com", "secret"))

	c.OpenCreate()

	// Act
	err := c.UploadImage(ctx, "photo.png", strings.NewReader("png-bytes"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"photo.png"}, fake.UploadedFiles())
	assert.Equal(t, fake.UploadedURL, c.Form().Snapshot().ImageURL)
	assert.Equal(t, fake.UploadedURL, c.Form().Snapshot().ImagePreview)
}
