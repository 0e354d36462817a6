package psychologist

import (
	"net/http"
	"strconv"

	"psycenter/internal/domain"
	"psycenter/internal/pkg/response"
	"psycenter/internal/repository"

	"github.com/gin-gonic/gin"
)

// Handler exposes the read-only specialists catalog the booking form
// renders its picker from. Content management happens elsewhere.
type Handler struct {
	repo *repository.PsychologistRepository
}

func NewHandler(repo *repository.PsychologistRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/psychologists", h.List)
	rg.GET("/psychologists/:id", h.Get)
}

type psychologistView struct {
	ID               int64  `json:"id"`
	NameRu           string `json:"name_ru"`
	NameKz           string `json:"name_kz"`
	SpecializationRu string `json:"specialization_ru"`
	SpecializationKz string `json:"specialization_kz"`
	PhotoURL         string `json:"photo_url,omitempty"`
}

func toView(p *domain.Psychologist) psychologistView {
	return psychologistView{
		ID:               p.ID,
		NameRu:           p.NameRu,
		NameKz:           p.NameKz,
		SpecializationRu: p.SpecializationRu,
		SpecializationKz: p.SpecializationKz,
		PhotoURL:         p.PhotoURL,
	}
}

// List отдаёт активных психологов для формы записи.
// @Router	/api/psychologists [GET]
func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list psychologists")
		return
	}

	views := make([]psychologistView, 0, len(items))
	for i := range items {
		views = append(views, toView(&items[i]))
	}

	response.Success(c, http.StatusOK, gin.H{"psychologists": views})
}

// Get отдаёт одного психолога.
// @Router	/api/psychologists/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid psychologist id")
		return
	}

	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Psychologist not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load psychologist")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"psychologist": toView(p)})
}
