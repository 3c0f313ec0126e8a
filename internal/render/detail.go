package render

import (
	"fmt"
	"strings"

	"github.com/hexadmin/catalog-console/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// Product description and content arrive as operator-authored rich text;
// sanitize before presenting.
var ugcPolicy = bluemonday.UGCPolicy()

// DetailView is the presentation shape of the detail overlay: the product's
// fields with markup sanitized and the primary image merged ahead of the
// secondary ones.
type DetailView struct {
	Title       string
	Category    string
	Unit        string
	OriginPrice float64
	Price       float64
	Enabled     bool
	Description string
	Content     string
	Images      []string
}

func Detail(p models.Product) DetailView {
	images := make([]string, 0, len(p.ImagesURL)+1)
	if p.ImageURL != "" {
		images = append(images, p.ImageURL)
	}

	images = append(images, p.ImagesURL...)

	return DetailView{
		Title:       p.Title,
		Category:    p.Category,
		Unit:        p.Unit,
		OriginPrice: p.OriginPrice,
		Price:       p.Price,
		Enabled:     p.IsEnabled != 0,
		Description: ugcPolicy.Sanitize(p.Description),
		Content:     ugcPolicy.Sanitize(p.Content),
		Images:      images,
	}
}

func (v DetailView) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", v.Title)
	fmt.Fprintf(&b, "%s / %s\n", v.Category, v.Unit)
	fmt.Fprintf(&b, "NT$ %.0f (was NT$ %.0f)\n", v.Price, v.OriginPrice)

	if v.Enabled {
		b.WriteString("status: enabled\n")
	} else {
		b.WriteString("status: disabled\n")
	}

	if v.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", v.Description)
	}

	if v.Content != "" {
		fmt.Fprintf(&b, "\n%s\n", v.Content)
	}

	for _, image := range v.Images {
		fmt.Fprintf(&b, "image: %s\n", image)
	}

	return b.String()
}
