// Package list реализует HTTP-обработчик списка аффилиаций справочника.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/conference-registry/internal/http/response"
	"github.com/magabrotheeeer/conference-registry/internal/lib/sl"
	"github.com/magabrotheeeer/conference-registry/internal/models"
)

// Handler обрабатывает запросы на получение списка аффилиаций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка аффилиаций.
type Service interface {
	ListAffiliations(ctx context.Context, limit, offset int) ([]*models.Affiliation, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список аффилиаций
// @Description Возвращает аффилиации общего справочника с пагинацией.
// @Tags Affiliations
// @Produce  json
// @Param limit query int false "Максимум записей (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} map[string]any "Список аффилиаций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /affiliations/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.affiliation.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.service.ListAffiliations(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list affiliations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list affiliations"))
		return
	}

	log.Info("list affiliations", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count":   len(res),
		"affiliations": res,
	}))
}
