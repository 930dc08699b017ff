package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/freshbasket/internal/domain"
	"github.com/nikolayk812/freshbasket/internal/port"
	"github.com/nikolayk812/freshbasket/internal/repository"
	"github.com/nikolayk812/freshbasket/internal/service"
)

const sessionCookie = "fb_session"

type ctxKey string

const adminKey ctxKey = "admin"

type Server struct {
	products port.ProductRepository
	orders   *service.Orders
	auth     *service.Auth
	logger   *slog.Logger
	metrics  *Metrics
	router   *chi.Mux
}

func New(products port.ProductRepository, orders *service.Orders, auth *service.Auth, logger *slog.Logger, metrics *Metrics) *Server {
	s := &Server{
		products: products,
		orders:   orders,
		auth:     auth,
		logger:   logger,
		metrics:  metrics,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.recordMetrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/admin/login", s.handleLogin)
		r.Post("/admin/logout", s.handleLogout)
		r.Get("/admin/session", s.handleSession)

		// public storefront paths
		r.Get("/products", s.handleListProducts)
		r.Get("/products/{id}", s.handleGetProduct)
		r.Post("/orders", s.handleCreateOrder)
		r.Get("/orders/{orderCode}", s.handleGetOrderByCode)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Post("/products", s.handleCreateProduct)
			r.Put("/products/{id}", s.handleUpdateProduct)
			r.Delete("/products/{id}", s.handleDeleteProduct)

			r.Get("/orders", s.handleListOrders)
			r.Put("/orders/{orderCode}/status", s.handleUpdateOrderStatus)
		})
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requireAdmin resolves the session cookie to an authenticated admin,
// rejecting the request otherwise.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Unauthorized"})
			return
		}

		admin, err := s.auth.RequireAdmin(r.Context(), cookie.Value)
		if err != nil {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Unauthorized"})
			return
		}

		ctx := context.WithValue(r.Context(), adminKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) recordMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		s.metrics.Requests.WithLabelValues(pattern, strconv.Itoa(ww.Status())).Inc()
		s.metrics.LatencyMS.WithLabelValues(pattern).Observe(float64(time.Since(start).Milliseconds()))

		s.logger.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encoding response", slog.Any("error", err))
	}
}

// writeError maps service and repository failures onto the API's status
// codes, persistence details are logged but not exposed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Message: "Product not found"})
	case errors.Is(err, repository.ErrOrderNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Message: "Order not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Invalid credentials"})
	case errors.Is(err, service.ErrUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Unauthorized"})
	case errors.Is(err, service.ErrEmptyOrder):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Order has no resolvable items"})
	case errors.Is(err, domain.ErrInvalidTransition):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid status transition"})
	default:
		s.logger.ErrorContext(r.Context(), "internal error",
			slog.String("path", r.URL.Path), slog.Any("error", err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
	}
}
