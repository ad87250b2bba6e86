package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/export", h.Export)
	r.Post("/import", h.Import)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Export(r.Context())
	if err != nil {
		h.logger.Error("export snapshot", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="finsight-backup.json"`)
	httpx.JSON(w, http.StatusOK, snapshot)
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var snapshot Snapshot
	if err := httpx.DecodeJSON(r, &snapshot); err != nil {
		httpx.RespondError(w, err)
		return
	}

	summary, err := h.service.Import(r.Context(), snapshot)
	if err != nil {
		h.logger.Error("import snapshot", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("snapshot imported",
		slog.Int("categories", summary.CategoriesUpserted),
		slog.Int("products", summary.ProductsUpserted))
	httpx.JSON(w, http.StatusOK, summary)
}
