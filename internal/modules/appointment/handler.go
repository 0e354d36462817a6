package appointment

import (
	"net/http"
	"strconv"

	"psycenter/internal/pkg/response"
	"psycenter/internal/pkg/validator"
	"psycenter/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the client-facing endpoints: booking form,
// availability, and the capability-URL status page.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/appointments/availability", h.Availability)
	rg.POST("/appointments", h.Create)
	rg.GET("/appointments/:id", h.Get)
	rg.POST("/appointments/:id/reschedule", h.Reschedule)
	rg.POST("/appointments/:id/cancel", h.Cancel)
}

// RegisterAdminRoutes mounts the staff dashboard endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/appointments", h.List)
	rg.POST("/appointments/:id/confirm", h.Confirm)
	rg.POST("/appointments/:id/email", h.SendEmail)
}

// Availability возвращает свободные слоты психолога на дату.
// @Summary	Свободные слоты
// @Param	psychologist_id	query	int		true	"ID психолога"
// @Param	date			query	string	true	"Дата (YYYY-MM-DD)"
// @Param	exclude			query	string	false	"ID записи, исключаемой из занятых (перенос)"
// @Router	/api/appointments/availability [GET]
func (h *Handler) Availability(c *gin.Context) {
	psychologistID, err := strconv.ParseInt(c.Query("psychologist_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid psychologist_id")
		return
	}

	resp, err := h.service.Availability(c.Request.Context(), psychologistID, c.Query("date"), c.Query("exclude"))
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, expected YYYY-MM-DD")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load availability")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Create создаёт заявку на консультацию (статус pending).
// @Summary	Записаться на консультацию
// @Router	/api/appointments [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid fields", errs)
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, time or email")
		case ErrPsychologistNotFound:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Psychologist not found")
		case ErrSlotTaken:
			response.Error(c, http.StatusConflict, "SLOT_TAKEN", "This time slot is already booked")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create appointment")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"appointment": toView(a)})
}

// Get отдаёт запись для публичной страницы статуса.
// Доступ — только по знанию непубличного id.
// @Router	/api/appointments/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load appointment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": view})
}

// List отдаёт записи для админ-панели, с фильтрами по статусу и датам.
// @Router	/api/appointments [GET]
func (h *Handler) List(c *gin.Context) {
	opts := repository.ListOptions{
		Status:   c.Query("status"),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
	}

	items, err := h.service.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list appointments")
		return
	}

	views := make([]*AppointmentView, 0, len(items))
	for i := range items {
		views = append(views, toView(&items[i]))
	}

	response.Success(c, http.StatusOK, gin.H{
		"appointments": views,
		"total":        len(views),
	})
}

// Confirm подтверждает запись.
// @Router	/api/appointments/{id}/confirm [POST]
func (h *Handler) Confirm(c *gin.Context) {
	a, err := h.service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
		case ErrAlreadyCancelled:
			response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Cancelled appointment cannot be confirmed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to confirm appointment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": toView(a)})
}

// Cancel отменяет запись (клиент, админ или психолог).
// @Router	/api/appointments/{id}/cancel [POST]
func (h *Handler) Cancel(c *gin.Context) {
	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Cancel(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel appointment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": toView(a)})
}

// Reschedule переносит запись на новое время; статус снова pending.
// @Router	/api/appointments/{id}/reschedule [POST]
func (h *Handler) Reschedule(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	a, err := h.service.Reschedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date, time or email")
		case ErrAlreadyCancelled:
			response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Cancelled appointment cannot be rescheduled")
		case ErrSlotTaken:
			response.Error(c, http.StatusConflict, "SLOT_TAKEN", "This time slot is already booked")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reschedule appointment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"appointment": toView(a)})
}

// SendEmail повторно отправляет клиенту письмо по шаблону.
// @Router	/api/appointments/{id}/email [POST]
func (h *Handler) SendEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SendTemplatedEmail(c.Request.Context(), c.Param("id"), req.Template); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown email template")
		default:
			response.Error(c, http.StatusInternalServerError, "EMAIL_FAILED", "Failed to send email")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sent": true})
}
