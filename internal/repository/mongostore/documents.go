package mongostore

import (
	"time"

	"trimmers-api/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type productDoc struct {
	ID            bson.ObjectID `bson:"_id"`
	Name          string        `bson:"name"`
	Price         float64       `bson:"price"`
	Description   string        `bson:"description"`
	Image         string        `bson:"image"`
	Category      string        `bson:"category"`
	Company       string        `bson:"company"`
	Color         string        `bson:"color"`
	Featured      bool          `bson:"featured"`
	FreeShipping  bool          `bson:"freeShipping"`
	Inventory     int           `bson:"inventory"`
	AverageRating float64       `bson:"averageRating"`
	NumOfReviews  int           `bson:"numOfReviews"`
	User          string        `bson:"user"`
	CreatedAt     time.Time     `bson:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt"`
}

func newProductDoc(p *model.Product) productDoc {
	return productDoc{
		Name:          p.Name,
		Price:         p.Price,
		Description:   p.Description,
		Image:         p.Image,
		Category:      p.Category,
		Company:       p.Company,
		Color:         p.Color,
		Featured:      p.Featured,
		FreeShipping:  p.FreeShipping,
		Inventory:     p.Inventory,
		AverageRating: p.AverageRating,
		NumOfReviews:  p.NumOfReviews,
		User:          p.UserID,
	}
}

func (d productDoc) toModel() model.Product {
	return model.Product{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Price:         d.Price,
		Description:   d.Description,
		Image:         d.Image,
		Category:      d.Category,
		Company:       d.Company,
		Color:         d.Color,
		Featured:      d.Featured,
		FreeShipping:  d.FreeShipping,
		Inventory:     d.Inventory,
		AverageRating: d.AverageRating,
		NumOfReviews:  d.NumOfReviews,
		UserID:        d.User,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type reviewDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Rating    int           `bson:"rating"`
	Title     string        `bson:"title"`
	Comment   string        `bson:"comment"`
	User      string        `bson:"user"`
	Product   string        `bson:"product"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d reviewDoc) toModel() model.Review {
	return model.Review{
		ID:        d.ID.Hex(),
		Rating:    d.Rating,
		Title:     d.Title,
		Comment:   d.Comment,
		UserID:    d.User,
		ProductID: d.Product,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type userDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	Role      string        `bson:"role"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d userDoc) toModel() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
	}
}

type orderItemDoc struct {
	Name    string  `bson:"name"`
	Image   string  `bson:"image"`
	Price   float64 `bson:"price"`
	Amount  int     `bson:"amount"`
	Product string  `bson:"product"`
}

type orderDoc struct {
	ID              bson.ObjectID  `bson:"_id"`
	Tax             float64        `bson:"tax"`
	ShippingFee     float64        `bson:"shippingFee"`
	Subtotal        float64        `bson:"subtotal"`
	Total           float64        `bson:"total"`
	OrderItems      []orderItemDoc `bson:"orderItems"`
	Status          string         `bson:"status"`
	User            string         `bson:"user"`
	ClientSecret    string         `bson:"clientSecret"`
	PaymentIntentID string         `bson:"paymentIntentId"`
	CreatedAt       time.Time      `bson:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt"`
}

func newOrderDoc(o *model.Order) orderDoc {
	items := make([]orderItemDoc, len(o.OrderItems))
	for i, it := range o.OrderItems {
		items[i] = orderItemDoc{Name: it.Name, Image: it.Image, Price: it.Price, Amount: it.Amount, Product: it.ProductID}
	}
	return orderDoc{
		Tax:             o.Tax,
		ShippingFee:     o.ShippingFee,
		Subtotal:        o.Subtotal,
		Total:           o.Total,
		OrderItems:      items,
		Status:          o.Status,
		User:            o.UserID,
		ClientSecret:    o.ClientSecret,
		PaymentIntentID: o.PaymentIntentID,
	}
}

func (d orderDoc) toModel() model.Order {
	items := make([]model.OrderItem, len(d.OrderItems))
	for i, it := range d.OrderItems {
		items[i] = model.OrderItem{Name: it.Name, Image: it.Image, Price: it.Price, Amount: it.Amount, ProductID: it.Product}
	}
	return model.Order{
		ID:              d.ID.Hex(),
		Tax:             d.Tax,
		ShippingFee:     d.ShippingFee,
		Subtotal:        d.Subtotal,
		Total:           d.Total,
		OrderItems:      items,
		Status:          d.Status,
		UserID:          d.User,
		ClientSecret:    d.ClientSecret,
		PaymentIntentID: d.PaymentIntentID,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
