package model

import "time"

// Product categories and companies accepted by validation.
const (
	CategoryOffice  = "office"
	CategoryKitchen = "kitchen"
	CategoryBedroom = "bedroom"

	CompanyIkea   = "ikea"
	CompanyLiddy  = "liddy"
	CompanyMarcos = "marcos"
)

// Defaults applied to new products when the client leaves the field out.
const (
	DefaultProductImage     = "/uploads/example.jpeg"
	DefaultProductColor     = "#222"
	DefaultProductInventory = 15
)

// Product represents an item in the catalogue.
type Product struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" validate:"required,max=100"`
	Price         float64   `json:"price" db:"price" validate:"gte=0"`
	Description   string    `json:"description" db:"description" validate:"required,max=1000"`
	Image         string    `json:"image" db:"image"`
	Category      string    `json:"category" db:"category" validate:"required,oneof=office kitchen bedroom"`
	Company       string    `json:"company" db:"company" validate:"required,oneof=ikea liddy marcos"`
	Color         string    `json:"color" db:"color"`
	Featured      bool      `json:"featured" db:"featured"`
	FreeShipping  bool      `json:"freeShipping" db:"free_shipping"`
	Inventory     int       `json:"inventory" db:"inventory" validate:"gte=0"`
	AverageRating float64   `json:"averageRating" db:"average_rating"`
	NumOfReviews  int       `json:"numOfReviews" db:"num_of_reviews"`
	UserID        string    `json:"user" db:"user_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductDetail is a product with its reviews populated.
type ProductDetail struct {
	Product
	Reviews []Review `json:"reviews"`
}

// ProductInput is the request payload for creating a product.
type ProductInput struct {
	Name         string   `json:"name"`
	Price        *float64 `json:"price"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	Company      string   `json:"company"`
	Color        string   `json:"color"`
	Featured     bool     `json:"featured"`
	FreeShipping bool     `json:"freeShipping"`
	Inventory    *int     `json:"inventory"`
}

// ToProduct builds a product owned by userID, filling in defaults.
func (in *ProductInput) ToProduct(userID string) *Product {
	p := &Product{
		Name:         in.Name,
		Description:  in.Description,
		Image:        in.Image,
		Category:     in.Category,
		Company:      in.Company,
		Color:        in.Color,
		Featured:     in.Featured,
		FreeShipping: in.FreeShipping,
		Inventory:    DefaultProductInventory,
		UserID:       userID,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Inventory != nil {
		p.Inventory = *in.Inventory
	}
	if p.Image == "" {
		p.Image = DefaultProductImage
	}
	if p.Color == "" {
		p.Color = DefaultProductColor
	}
	return p
}

// ProductPatch is the request payload for a partial product update.
// Nil fields are left untouched.
type ProductPatch struct {
	Name         *string  `json:"name"`
	Price        *float64 `json:"price"`
	Description  *string  `json:"description"`
	Image        *string  `json:"image"`
	Category     *string  `json:"category"`
	Company      *string  `json:"company"`
	Color        *string  `json:"color"`
	Featured     *bool    `json:"featured"`
	FreeShipping *bool    `json:"freeShipping"`
	Inventory    *int     `json:"inventory"`
}

// Apply merges the patch into p.
func (pp *ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Image != nil {
		p.Image = *pp.Image
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Company != nil {
		p.Company = *pp.Company
	}
	if pp.Color != nil {
		p.Color = *pp.Color
	}
	if pp.Featured != nil {
		p.Featured = *pp.Featured
	}
	if pp.FreeShipping != nil {
		p.FreeShipping = *pp.FreeShipping
	}
	if pp.Inventory != nil {
		p.Inventory = *pp.Inventory
	}
}

// ProductList is the result of a catalogue query.
// Count and NumOfPages always describe the unpaginated filtered set.
type ProductList struct {
	AllProducts []Product `json:"allProducts"`
	Count       int64     `json:"count"`
	NumOfPages  int64     `json:"numOfPages"`
}
