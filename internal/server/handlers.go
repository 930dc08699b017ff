package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/freshbasket/internal/domain"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Username and password are required"})
		return
	}

	admin, token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.writeJSON(w, http.StatusOK, toAdminResponse(admin))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.auth.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		s.writeJSON(w, http.StatusOK, sessionResponse{IsAuthenticated: false})
		return
	}

	admin, ok := s.auth.Session(cookie.Value)
	if !ok {
		s.writeJSON(w, http.StatusOK, sessionResponse{IsAuthenticated: false})
		return
	}

	resp := toAdminResponse(admin)
	s.writeJSON(w, http.StatusOK, sessionResponse{IsAuthenticated: true, Admin: &resp})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.ListProducts(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, toProductResponse(product))
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.parseID(w, r, "id")
	if !ok {
		return
	}

	product, err := s.products.GetProduct(r.Context(), productID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	if req.Name == "" || req.Category == "" || req.Unit == "" || req.Price == nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid product data"})
		return
	}

	if req.Price.IsNegative() {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Price must not be negative"})
		return
	}

	product, err := s.products.CreateProduct(r.Context(), domain.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
		Unit:     req.Unit,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.parseID(w, r, "id")
	if !ok {
		return
	}

	var req patchProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	patch := domain.ProductPatch{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Unit:     req.Unit,
		ImageURL: req.ImageURL,
	}

	if err := patch.Validate(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid product data"})
		return
	}

	product, err := s.products.UpdateProduct(r.Context(), productID, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := s.parseID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := s.products.DeleteProduct(r.Context(), productID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !deleted {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Message: "Product not found"})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.ListOrders(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOrderByCode(w http.ResponseWriter, r *http.Request) {
	orderCode := chi.URLParam(r, "orderCode")

	order, err := s.orders.GetOrderByCode(r.Context(), orderCode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	order := domain.Order{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		City:            req.City,
		Pincode:         req.Pincode,
	}

	if err := order.Validate(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid order data"})
		return
	}

	if len(req.Items) == 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Order must contain at least one item"})
		return
	}

	cart := make([]domain.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		cartItem := domain.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		if err := cartItem.Validate(); err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid order data"})
			return
		}

		cart = append(cart, cartItem)
	}

	created, err := s.orders.CreateOrder(r.Context(), order, cart)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderCode := chi.URLParam(r, "orderCode")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body"})
		return
	}

	status, err := domain.ToOrderStatus(req.Status)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid status"})
		return
	}

	order, err := s.orders.UpdateOrderStatus(r.Context(), orderCode, status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (s *Server) parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid product ID"})
		return 0, false
	}

	return id, true
}
