// Package discount реализует административный HTTP-обработчик назначения
// скидки докладу.
//
// Скидка знаковая: отрицательное значение уменьшает взнос, положительное —
// надбавка. Маршрут закрыт ролевым middleware, обычным пользователям
// операция недоступна.
package discount

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/conference-registry/internal/http/response"
	"github.com/magabrotheeeer/conference-registry/internal/lib/sl"
	"github.com/magabrotheeeer/conference-registry/internal/models"
)

// Request — входные данные для назначения скидки.
type Request struct {
	Discount *int `json:"discount" validate:"required"`
}

// Handler обрабатывает запросы на назначение скидки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики назначения скидки.
type Service interface {
	SetDiscount(ctx context.Context, id, discount int) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Назначить скидку докладу
// @Description Выставляет скидку доклада по его ID. Доступно только администраторам.
// @Tags Contributions
// @Accept  json
// @Produce  json
// @Param id path int true "ID доклада"
// @Param request body Request true "Новая скидка"
// @Success 200 {object} map[string]any "Скидка назначена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Доклад не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contributions/{id}/discount [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contribution.discount"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.SetDiscount(r.Context(), id, *req.Discount); err != nil {
		if errors.Is(err, models.ErrContributionNotFound) {
			log.Error("contribution not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(models.ErrContributionNotFound.Error()))
			return
		}
		log.Error("failed to update discount", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update discount"))
		return
	}

	log.Info("discount updated", slog.Int("id", id), slog.Int("discount", *req.Discount))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":       id,
		"discount": *req.Discount,
	}))
}
