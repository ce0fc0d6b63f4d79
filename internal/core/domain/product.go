package domain

type (
	// A Product is a single catalog entry. ID always matches the store
	// key the record lives under; Image mirrors the first entry of
	// Images for readers that predate multi-image records.
	Product struct {
		ID          string
		Name        string
		Type        string
		Price       float64
		Quantity    int
		Description string
		Images      []string
		Image       string
	}

	// A ProductInput is a validated submission ready for persisting.
	// Blank ID means "create", present ID means "overwrite in full".
	ProductInput struct {
		ID          string
		Name        string
		Type        string
		Price       float64
		Quantity    int
		Description string
		Images      []string
	}
)

// NormalizeImages migrates a legacy single-image record to the images
// list form and keeps the legacy field in sync with the first entry.
func (p Product) NormalizeImages() Product {
	if len(p.Images) == 0 && p.Image != "" {
		p.Images = []string{p.Image}
	}
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	return p
}
