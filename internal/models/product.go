package models

// Product is the server-owned record. The client only ever holds a read-only
// snapshot of the page it last fetched; edits go through ProductDraft.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	OriginPrice float64  `json:"origin_price"`
	Price       float64  `json:"price"`
	IsEnabled   int      `json:"is_enabled"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	ImageURL    string   `json:"imageUrl"`
	ImagesURL   []string `json:"imagesUrl"`
}

// ProductDraft is the mutable working copy behind the create/edit form.
// ImagePreview and ImagesPreview exist only to render images before or
// without a committed URL; the field-change paths keep them equal to their
// canonical counterparts.
type ProductDraft struct {
	Title         string   `json:"title" validate:"required"`
	Category      string   `json:"category"`
	Unit          string   `json:"unit"`
	OriginPrice   float64  `json:"origin_price" validate:"gte=0"`
	Price         float64  `json:"price" validate:"gte=0"`
	IsEnabled     int      `json:"is_enabled" validate:"oneof=0 1"`
	Description   string   `json:"description"`
	Content       string   `json:"content"`
	ImageURL      string   `json:"imageUrl"`
	ImagesURL     []string `json:"imagesUrl"`
	ImagePreview  string   `json:"imagePreview"`
	ImagesPreview []string `json:"imagesPreview"`
}

// EmptyDraft is the canonical empty form shape: strings empty, numbers zero,
// is_enabled on, image lists present but empty.
func EmptyDraft() ProductDraft {
	return ProductDraft{
		IsEnabled:     1,
		ImagesURL:     []string{},
		ImagesPreview: []string{},
	}
}

// DraftFromProduct seeds an edit form from a fetched product, copying every
// persisted field 1:1 and initializing the preview fields from the URL fields.
func DraftFromProduct(p Product) ProductDraft {
	images := append([]string{}, p.ImagesURL...)

	return ProductDraft{
		Title:         p.Title,
		Category:      p.Category,
		Unit:          p.Unit,
		OriginPrice:   p.OriginPrice,
		Price:         p.Price,
		IsEnabled:     p.IsEnabled,
		Description:   p.Description,
		Content:       p.Content,
		ImageURL:      p.ImageURL,
		ImagesURL:     images,
		ImagePreview:  p.ImageURL,
		ImagesPreview: append([]string{}, images...),
	}
}
