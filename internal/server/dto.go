package server

import (
	"time"

	"github.com/nikolayk812/freshbasket/internal/domain"
	"github.com/shopspring/decimal"
)

type errorResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type adminResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type sessionResponse struct {
	IsAuthenticated bool           `json:"isAuthenticated"`
	Admin           *adminResponse `json:"admin,omitempty"`
}

type createProductRequest struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Unit     string           `json:"unit"`
	ImageURL *string          `json:"imageUrl"`
}

// patchProductRequest distinguishes absent fields from zero values,
// absent fields leave the stored record untouched.
type patchProductRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Unit     *string          `json:"unit"`
	ImageURL *string          `json:"imageUrl"`
}

type productResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	ImageURL *string         `json:"imageUrl,omitempty"`
}

type cartItemRequest struct {
	ProductID int64           `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName    string            `json:"customerName"`
	CustomerPhone   string            `json:"customerPhone"`
	CustomerAddress string            `json:"customerAddress"`
	City            string            `json:"city"`
	Pincode         string            `json:"pincode"`
	Items           []cartItemRequest `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type orderItemResponse struct {
	ID        int64            `json:"id"`
	ProductID int64            `json:"productId"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	Product   *productResponse `json:"product,omitempty"`
}

type orderResponse struct {
	ID              int64               `json:"id"`
	OrderCode       string              `json:"orderCode"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerAddress string              `json:"customerAddress"`
	City            string              `json:"city"`
	Pincode         string              `json:"pincode"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	Items           []orderItemResponse `json:"items"`
	Total           decimal.Decimal     `json:"total"`
}

func toAdminResponse(admin domain.Admin) adminResponse {
	return adminResponse{
		ID:       admin.ID,
		Username: admin.Username,
	}
}

func toProductResponse(product domain.Product) productResponse {
	return productResponse{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		Unit:     product.Unit,
		ImageURL: product.ImageURL,
	}
}

func toOrderResponse(order domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		var product *productResponse
		if item.Product != nil {
			p := toProductResponse(*item.Product)
			product = &p
		}

		items = append(items, orderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Product:   product,
		})
	}

	return orderResponse{
		ID:              order.ID,
		OrderCode:       order.OrderCode,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		City:            order.City,
		Pincode:         order.Pincode,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
		Items:           items,
		Total:           order.Total(),
	}
}
