package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// A ProductForm is the admin create/edit submission exactly as
// entered: numeric fields are still strings, image slots may be blank.
// Unknown fields are rejected at the decoding boundary, not here.
type ProductForm struct {
	ID          string
	Name        string
	Type        string
	Price       string
	Quantity    string
	Description string
	Images      []string
}

// Validate checks the form rules in order and returns the first
// failure. It never accumulates messages.
func (f ProductForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &domain.ValidationError{
			Field: "name", Message: "product name is required",
		}
	}
	if strings.TrimSpace(f.Type) == "" {
		return &domain.ValidationError{
			Field: "type", Message: "product type is required",
		}
	}
	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil || math.IsInf(price, 0) || math.IsNaN(price) || price <= 0 {
		return &domain.ValidationError{
			Field: "price", Message: "valid price is required",
		}
	}
	quantity, err := strconv.Atoi(f.Quantity)
	if err != nil || quantity <= 0 {
		return &domain.ValidationError{
			Field: "quantity", Message: "valid quantity is required",
		}
	}
	if strings.TrimSpace(f.Description) == "" {
		return &domain.ValidationError{
			Field: "description", Message: "description is required",
		}
	}
	if len(f.trimmedImages()) == 0 {
		return &domain.ValidationError{
			Field:   "images",
			Message: "at least one image URL is required",
		}
	}
	return nil
}

// ToInput builds the persistable input: parsed numbers, blank image
// entries dropped. Validate must pass first.
func (f ProductForm) ToInput() (domain.ProductInput, error) {
	if err := f.Validate(); err != nil {
		return domain.ProductInput{}, err
	}

	price, _ := strconv.ParseFloat(f.Price, 64)
	quantity, _ := strconv.Atoi(f.Quantity)

	return domain.ProductInput{
		ID:          strings.TrimSpace(f.ID),
		Name:        f.Name,
		Type:        f.Type,
		Price:       price,
		Quantity:    quantity,
		Description: f.Description,
		Images:      f.trimmedImages(),
	}, nil
}

func (f ProductForm) trimmedImages() []string {
	var imgs []string
	for _, img := range f.Images {
		if img = strings.TrimSpace(img); img != "" {
			imgs = append(imgs, img)
		}
	}
	return imgs
}

// FormFromProduct preloads an edit-mode form from an existing product,
// migrating a legacy single-image record on the way in.
func FormFromProduct(p domain.Product) ProductForm {
	p = p.NormalizeImages()
	images := p.Images
	if len(images) == 0 {
		images = []string{""}
	}
	return ProductForm{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.Itoa(p.Quantity),
		Description: p.Description,
		Images:      images,
	}
}

// SubmitStatus is the message state the form surfaces to its caller.
type SubmitStatus int32

const (
	SubmitIdle SubmitStatus = iota
	SubmitInProgress
	SubmitSucceeded
	SubmitFailed
)

// FormController validates and persists admin submissions. At most one
// submit is in flight: a second one is rejected, not queued.
type FormController struct {
	editor     port.CatalogEditor
	submitting atomic.Bool
	status     atomic.Int32
}

func NewFormController(editor port.CatalogEditor) *FormController {
	return &FormController{editor: editor}
}

// Status reports the outcome of the latest submit.
func (c *FormController) Status() SubmitStatus {
	return SubmitStatus(c.status.Load())
}

// Submit runs validation, then delegates to the catalog editor.
// Validation failures carry the first failing rule's message and cause
// no store write. Store failures surface as a retry prompt state.
func (c *FormController) Submit(
	ctx context.Context, f ProductForm,
) (domain.Product, error) {
	const op = "FormController.Submit"

	if !c.submitting.CompareAndSwap(false, true) {
		return domain.Product{}, fmt.Errorf(
			"%s: %w", op, domain.ErrSubmitPending,
		)
	}
	defer c.submitting.Store(false)

	input, err := f.ToInput()
	if err != nil {
		c.status.Store(int32(SubmitFailed))
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	c.status.Store(int32(SubmitInProgress))

	p, err := c.editor.SaveProduct(ctx, input)
	if err != nil {
		c.status.Store(int32(SubmitFailed))
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	c.status.Store(int32(SubmitSucceeded))
	return p, nil
}
