package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-scheduler-api/internal/clinic"
	"clinic-scheduler-api/internal/handler"
	"clinic-scheduler-api/internal/model"
)

type loginRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type patientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type doctorRequest struct {
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Phone          string   `json:"phone"`
	AvailableTimes []string `json:"availableTimes"`
}

type appointmentRequest struct {
	DoctorID        string    `json:"doctorId"`
	AppointmentTime time.Time `json:"appointmentTime"`
}

func token(c *gin.Context) string { return c.GetString(tokenKey) }

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	role, _ := model.ParseRole(c.Param("role"))
	tok, err := h.svc.Login(c.Request.Context(), role, req.Identity, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	id, tok, err := h.svc.RegisterPatient(c.Request.Context(), clinic.PatientInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "token": tok})
}

func (h *Handler) AddDoctor(c *gin.Context) {
	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	id, err := h.svc.AddDoctor(c.Request.Context(), token(c), clinic.DoctorInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	id, err := h.svc.Book(c.Request.Context(), token(c), req.DoctorID, req.AppointmentTime)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": handler.MsgBooked})
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	err := h.svc.Update(c.Request.Context(), token(c), c.Param("id"), req.DoctorID, req.AppointmentTime)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": handler.MsgUpdated})
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), token(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": handler.MsgCancelled})
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	if err := h.svc.Complete(c.Request.Context(), token(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": handler.MsgCompleted})
}

func (h *Handler) ListDoctorAppointments(c *gin.Context) {
	date, err := time.ParseInLocation(handler.DateLayout, c.Query("date"), h.loc)
	if err != nil {
		badRequest(c, "date must be YYYY-MM-DD")
		return
	}
	list, err := h.svc.ListForDoctor(c.Request.Context(), token(c), date, c.Query("patientName"))
	if err != nil {
		fail(c, err)
		return
	}
	if list == nil {
		list = []model.AppointmentSummary{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		badRequest(c, "start must be an RFC 3339 timestamp")
		return
	}
	free, err := h.svc.Availability(c.Request.Context(), c.Param("id"), start)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": free})
}

func (h *Handler) ValidateToken(c *gin.Context) {
	role, err := model.ParseRole(c.Param("role"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": h.svc.ValidateToken(c.Request.Context(), token(c), role)})
}

type doctorResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	AvailableTimes []string `json:"availableTimes"`
}

// ListDoctors serves the whole directory, or the filtered one when any of
// name, time or specialty is given.
func (h *Handler) ListDoctors(c *gin.Context) {
	list, err := h.svc.FilterDoctors(c.Request.Context(), clinic.DoctorFilter{
		Name:      c.Query("name"),
		Time:      c.Query("time"),
		Specialty: c.Query("specialty"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]doctorResponse, 0, len(list))
	for _, d := range list {
		times := d.AvailableTimes
		if times == nil {
			times = []string{}
		}
		out = append(out, doctorResponse{
			ID:             d.ID,
			Name:           d.Name,
			Specialty:      d.Specialty,
			Email:          d.Email,
			Phone:          d.Phone,
			AvailableTimes: times,
		})
	}
	c.JSON(http.StatusOK, gin.H{"doctors": out})
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	if err := h.svc.DeleteDoctor(c.Request.Context(), token(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": handler.MsgDoctorDeleted})
}

func (h *Handler) PatientProfile(c *gin.Context) {
	p, err := h.svc.PatientProfile(c.Request.Context(), token(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      p.ID,
		"name":    p.Name,
		"email":   p.Email,
		"phone":   p.Phone,
		"address": p.Address,
	})
}
