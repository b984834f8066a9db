package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	app "pokedex-bot/internal/application"
	"pokedex-bot/internal/domain/entity"
	"pokedex-bot/internal/infrastructure/storage"
	"pokedex-bot/internal/presenter"
)

// maxImageBytes предел размера загружаемого снимка
const maxImageBytes = 10 << 20

// Handlers HTTP-обработчики веб-версии
type Handlers struct {
	pokedex  *app.PokedexService
	sessions *app.SessionService
}

// NewHandlers создаёт обработчики
func NewHandlers(pokedex *app.PokedexService, sessions *app.SessionService) *Handlers {
	return &Handlers{pokedex: pokedex, sessions: sessions}
}

type sessionResponse struct {
	ID       string                `json:"id"`
	State    entity.WorkflowState  `json:"state"`
	HasImage bool                  `json:"has_image"`
	Name     string                `json:"name,omitempty"`
	Record   *entity.PokemonRecord `json:"record,omitempty"`
	Message  string                `json:"message,omitempty"`
}

func toResponse(session *entity.Session) sessionResponse {
	resp := sessionResponse{
		ID:       session.ID,
		State:    session.State,
		HasImage: len(session.Image) > 0,
		Name:     session.Name,
		Record:   session.Record,
	}
	switch session.State {
	case entity.StateIdle:
		resp.Message = presenter.HelpText
	case entity.StateNotFound:
		resp.Message = presenter.NotFoundText
	}
	return resp
}

// HealthCheck проверка живости сервиса
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pokedex",
	})
}

// CreateSession создаёт сессию в начальном состоянии
func (h *Handlers) CreateSession(c *gin.Context) {
	session, err := h.pokedex.Session(c.Request.Context(), uuid.NewString())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(session))
}

// GetSession возвращает текущее состояние сессии
func (h *Handlers) GetSession(c *gin.Context) {
	session, ok := h.findSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(session))
}

// Capture сохраняет снимок: поле формы "image" или тело запроса целиком
func (h *Handlers) Capture(c *gin.Context) {
	session, ok := h.findSession(c)
	if !ok {
		return
	}

	image, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err = h.pokedex.Capture(c.Request.Context(), session.ID, image)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(session))
}

// Analyze распознаёт снимок и ищет карточку
func (h *Handlers) Analyze(c *gin.Context) {
	session, ok := h.findSession(c)
	if !ok {
		return
	}

	out, err := h.pokedex.Analyze(c.Request.Context(), session.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(out.Session))
}

// Reset возвращает сессию в начальное состояние
func (h *Handlers) Reset(c *gin.Context) {
	session, ok := h.findSession(c)
	if !ok {
		return
	}

	session, err := h.pokedex.Reset(c.Request.Context(), session.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(session))
}

func (h *Handlers) findSession(c *gin.Context) (*entity.Session, bool) {
	session, err := h.sessions.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return session, true
}

func (h *Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, entity.ErrConfiguration):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error: OPENAI_API_KEY not set"})
	case errors.Is(err, app.ErrNoImage), errors.Is(err, app.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, app.ErrEmptyImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func readImage(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBytes)

	if header, err := c.FormFile("image"); err == nil {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, app.ErrEmptyImage
	}
	return data, nil
}
