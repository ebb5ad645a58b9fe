package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Product struct {
	ID            int64  `json:"id"`
	NameEn        string `json:"name_en"`
	NameAr        string `json:"name_ar"`
	DescriptionEn string `json:"description_en"`
	DescriptionAr string `json:"description_ar"`
	CategoryEn    string `json:"category_en"`
	CategoryAr    string `json:"category_ar"`
	Price         string `json:"price"`
	Stock         int    `json:"stock"`
	ImageURL      string `json:"image_url"`
}

// NewOrder is the create order payload. Total is accepted and ignored.
type NewOrder struct {
	Items           []NewOrderItem `json:"items"`
	Total           any            `json:"total,omitempty"`
	DeliveryAddress string         `json:"delivery_address"`
	PaymentMethod   string         `json:"payment_method"`
}

type NewOrderItem struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type Order struct {
	ID              string      `json:"id"`
	CustomerID      string      `json:"customer_id"`
	CustomerName    string      `json:"customer_name"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	Total           string      `json:"total"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryAddress string      `json:"delivery_address"`
	DriverID        *string     `json:"driver_id"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ProductID int64  `json:"product_id"`
	NameEn    string `json:"name_en"`
	NameAr    string `json:"name_ar"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func toProduct(p queries.ProductResponse) Product {
	return Product{
		ID:            p.ID,
		NameEn:        p.NameEn,
		NameAr:        p.NameAr,
		DescriptionEn: p.DescriptionEn,
		DescriptionAr: p.DescriptionAr,
		CategoryEn:    p.CategoryEn,
		CategoryAr:    p.CategoryAr,
		Price:         p.Price.StringFixed(2),
		Stock:         p.Stock,
		ImageURL:      p.ImageURL,
	}
}

func toOrder(o queries.OrderResponse) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			NameEn:    item.NameEn,
			NameAr:    item.NameAr,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}

	var driverID *string
	if o.DriverID != nil {
		id := o.DriverID.String()
		driverID = &id
	}

	return Order{
		ID:              o.ID.String(),
		CustomerID:      o.CustomerID.String(),
		CustomerName:    o.CustomerName,
		Status:          o.Status.String(),
		Items:           items,
		Total:           o.Total.StringFixed(2),
		PaymentMethod:   o.PaymentMethod.String(),
		DeliveryAddress: o.DeliveryAddress,
		DriverID:        driverID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrders(orders []queries.OrderResponse) []Order {
	response := make([]Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrder(o))
	}
	return response
}
