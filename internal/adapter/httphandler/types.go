package httphandler

import "github.com/niksmo/storefront/internal/core/domain"

type (
	Product struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Type        string   `json:"type"`
		Price       float64  `json:"price"`
		Quantity    int      `json:"quantity"`
		Description string   `json:"description"`
		Images      []string `json:"images"`
		Image       string   `json:"image"`
	}

	// ProductForm is the admin submission as received. Numeric fields
	// arrive as strings, the legacy single image field is accepted and
	// folded into the images list.
	ProductForm struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Type        string   `json:"type"`
		Price       string   `json:"price"`
		Quantity    string   `json:"quantity"`
		Description string   `json:"description"`
		Images      []string `json:"images"`
		Image       string   `json:"image"`
	}

	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		Success bool `json:"success"`
		User    User `json:"user"`
	}

	User struct {
		Username string `json:"username"`
	}

	StatusResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	ProductResponse struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Product Product `json:"product"`
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}
)

func toWire(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Description: p.Description,
		Images:      p.Images,
		Image:       p.Image,
	}
}

func toWireList(ps []domain.Product) []Product {
	ws := make([]Product, len(ps))
	for i, p := range ps {
		ws[i] = toWire(p)
	}
	return ws
}
