package render

import (
	"testing"

	"github.com/hexadmin/catalog-console/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDetail(t *testing.T) {
	t.Run("Success - Script tags are stripped from rich text", func(t *testing.T) {
		// Arrange
		product := models.Product{
			Title:       "Widget",
			Description: `<p>Good stuff</p><script>alert("x")</script>`,
			Content:     `<b>bold</b><iframe src="evil"></iframe>`,
		}

		// Act
		view := Detail(product)

		// Assert
		assert.NotContains(t, view.Description, "<script")
		assert.Contains(t, view.Description, "Good stuff")
		assert.NotContains(t, view.Content, "<iframe")
		assert.Contains(t, view.Content, "<b>bold</b>")
	})

	t.Run("Success - Primary image leads the merged list", func(t *testing.T) {
		// Arrange
		product := models.Product{
			ImageURL:  "main.png",
			ImagesURL: []string{"a.png", "b.png"},
		}

		// Act
		view := Detail(product)

		// Assert
		assert.Equal(t, []string{"main.png", "a.png", "b.png"}, view.Images)
	})

	t.Run("Success - Empty primary image contributes nothing", func(t *testing.T) {
		view := Detail(models.Product{ImagesURL: []string{"a.png"}})

		assert.Equal(t, []string{"a.png"}, view.Images)
	})

	t.Run("Success - Enabled flag follows the numeric field", func(t *testing.T) {
		assert.True(t, Detail(models.Product{IsEnabled: 1}).Enabled)
		assert.False(t, Detail(models.Product{IsEnabled: 0}).Enabled)
	})
}

func TestDetailViewString(t *testing.T) {
	// Arrange
	view := Detail(models.Product{
		Title:       "Widget",
		Category:    "tools",
		Unit:        "piece",
		OriginPrice: 100,
		Price:       80,
		IsEnabled:   1,
		ImageURL:    "main.png",
	})

	// Act
	text := view.String()

	// Assert
	assert.Contains(t, text, "Widget\n")
	assert.Contains(t, text, "tools / piece\n")
	assert.Contains(t, text, "NT$ 80 (was NT$ 100)")
	assert.Contains(t, text, "status: enabled")
	assert.Contains(t, text, "image: main.png")
}
