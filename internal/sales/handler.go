package sales

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
	"github.com/finsight-pos/finsight-pos/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
}

type listResponse struct {
	Data       []Sale            `json:"data"`
	Pagination shared.Pagination `json:"pagination"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	sales, pagination, err := h.service.List(r.Context(), page)
	if err != nil {
		h.logger.Error("list sales", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Data: sales, Pagination: pagination})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationProblem(w, httpx.FieldErrors(err))
		return
	}

	userID := shared.UserIDFromContext(r.Context())
	if userID == 0 {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	sale, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.logger.Error("create sale", slog.Any("error", err), slog.Int64("user_id", userID))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("sale created",
		slog.String("invoice", sale.InvoiceNumber),
		slog.Float64("total", sale.Total),
		slog.Int("items", len(sale.Items)))
	httpx.JSON(w, http.StatusCreated, sale)
}
