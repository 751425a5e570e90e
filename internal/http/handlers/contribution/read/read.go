// Package read реализует HTTP-обработчик получения конкретного доклада по ID.
//
// Handler извлекает ID из URL-параметров, UID владельца из контекста и
// возвращает доклад с производными полями взноса. Чужой или
// несуществующий доклад дает одинаковый ответ 404.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/conference-registry/internal/http/middlewarectx"
	"github.com/magabrotheeeer/conference-registry/internal/http/response"
	"github.com/magabrotheeeer/conference-registry/internal/lib/sl"
	"github.com/magabrotheeeer/conference-registry/internal/models"
)

// Handler обрабатывает запросы на получение доклада по идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики чтения доклада
}

// Service описывает интерфейс бизнес-логики чтения доклада.
type Service interface {
	Read(ctx context.Context, userUID string, id int) (*models.ContributionInfo, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить доклад по ID
// @Description Возвращает доклад текущего пользователя с авторствами и рассчитанным взносом.
// @Tags Contributions
// @Produce  json
// @Param id path int true "ID доклада"
// @Success 200 {object} map[string]any "Данные доклада"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Доклад не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contributions/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contribution.read"

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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Read(r.Context(), userUID, id)
	if err != nil {
		if errors.Is(err, models.ErrContributionNotFound) {
			log.Error("contribution not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(models.ErrContributionNotFound.Error()))
			return
		}
		log.Error("failed to read contribution", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read contribution"))
		return
	}

	log.Info("success to read contribution", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"contribution": res,
	}))
}
