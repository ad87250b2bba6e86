package restock

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.History(r.Context())
	if err != nil {
		h.logger.Error("list restock history", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if events == nil {
		events = []Event{}
	}
	httpx.JSON(w, http.StatusOK, events)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.ValidationProblem(w, httpx.FieldErrors(err))
		return
	}

	event, err := h.service.Record(r.Context(), req)
	if err != nil {
		h.logger.Error("record restock", slog.Any("error", err), slog.Int64("product_id", req.ProductID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, event)
}
