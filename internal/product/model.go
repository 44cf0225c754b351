package product

import "time"

type Category string

const (
	CategoryPersonalCare Category = "Personal Care"
	CategoryHomeCare     Category = "Home Care"
)

func (c Category) Valid() bool {
	return c == CategoryPersonalCare || c == CategoryHomeCare
}

// MaxImages caps the number of image URLs per product.
const MaxImages = 5

type Size struct {
	Value string  `json:"value"`
	Price float64 `json:"price"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Type        string    `json:"type"`
	Sizes       []Size    `json:"sizes"`
	Images      []string  `json:"images"`
	Description string    `json:"description"`
	Ingredients []string  `json:"ingredients"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SizePrice returns the price of the named size.
func (p *Product) SizePrice(size string) (float64, bool) {
	for _, s := range p.Sizes {
		if s.Value == size {
			return s.Price, true
		}
	}
	return 0, false
}

type CreateInput struct {
	ID          string
	Name        string
	Category    Category
	Type        string
	Sizes       []Size
	Images      []string
	Description string
	Ingredients []string
	InStock     *bool
}

type UpdateInput struct {
	Name        *string
	Category    *Category
	Type        *string
	Sizes       []Size
	Images      *[]string
	Description *string
	Ingredients *[]string
	InStock     *bool
}
