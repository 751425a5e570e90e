// Package create реализует HTTP-обработчик добавления аффилиации в справочник.
//
// Аффилиации общие для всех пользователей: авторства ссылаются на них по ID
// при подаче доклада.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/conference-registry/internal/http/response"
	"github.com/magabrotheeeer/conference-registry/internal/lib/sl"
	"github.com/magabrotheeeer/conference-registry/internal/models"
)

// Handler обрабатывает запросы на добавление аффилиации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления аффилиации.
type Service interface {
	CreateAffiliation(ctx context.Context, req models.DummyAffiliation) (int, error)
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
// @Summary Добавить аффилиацию
// @Description Добавляет организацию в общий справочник аффилиаций. Возвращает ID созданной записи.
// @Tags Affiliations
// @Accept  json
// @Produce  json
// @Param request body models.DummyAffiliation true "Данные аффилиации"
// @Success 201 {object} map[string]any "Аффилиация создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /affiliations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.affiliation.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAffiliation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("institution", req.Institution))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := h.service.CreateAffiliation(r.Context(), req)
	if err != nil {
		log.Error("failed to create affiliation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create affiliation"))
		return
	}

	log.Info("success to create affiliation", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"last_added_id": id,
	}))
}
