// Package create реализует HTTP-обработчик подачи нового доклада.
//
// Handler принимает JSON с данными доклада и вложенными авторствами,
// валидирует их, извлекает UID пользователя из контекста и вызывает
// атомарный workflow создания через сервис. Возвращает созданный доклад
// с производными полями взноса.
//
// Нарушение уникальности авторства и ссылка на несуществующую аффилиацию
// транслируются в HTTP 400: workflow откатывается целиком.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/conference-registry/internal/http/middlewarectx"
	"github.com/magabrotheeeer/conference-registry/internal/http/response"
	"github.com/magabrotheeeer/conference-registry/internal/lib/sl"
	"github.com/magabrotheeeer/conference-registry/internal/models"
)

// Handler управляет HTTP-запросами на подачу новых докладов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики создания докладов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания доклада.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyContribution) (*models.ContributionInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подать новый доклад
// @Description Создает доклад с авторствами и аффилиациями одним атомарным действием. Возвращает доклад с рассчитанным взносом.
// @Tags Contributions
// @Accept  json
// @Produce  json
// @Param request body models.DummyContribution true "Данные нового доклада"
// @Success 201 {object} map[string]any "Доклад создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, дубликат авторства или неизвестная аффилиация"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании доклада"
// @Router /contributions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contribution.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyContribution
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateAuthorship),
			errors.Is(err, models.ErrAffiliationNotFound):
			log.Error("contribution rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to create contribution", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create contribution"))
		}
		return
	}

	log.Info("success to create contribution", slog.Int("id", res.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"contribution": res,
	}))
}
