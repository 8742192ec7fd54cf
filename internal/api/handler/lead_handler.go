package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/k8automation/marketing-api/internal/core/domain"
	"github.com/k8automation/marketing-api/internal/core/ports"
)

type LeadHandler struct {
	leadService ports.LeadService
}

func NewLeadHandler(leadService ports.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

type submitLeadRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Service string `json:"service" validate:"required"`
	Budget  string `json:"budget"`
	Message string `json:"message" validate:"required,min=10"`
}

type updateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted qualified closed"`
}

type leadResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    *domain.Lead `json:"data"`
}

type leadListResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []domain.Lead `json:"data"`
}

// Submit accepts a contact-form inquiry from the public site.
//
// @Summary      Submit a contact inquiry
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body      submitLeadRequest  true  "Inquiry details"
// @Success      201   {object}  leadResponse
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/contacts [post]
func (h *LeadHandler) Submit(c echo.Context) error {
	var req submitLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lead, err := h.leadService.Submit(c.Request().Context(), ports.SubmitLeadInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Service: req.Service,
		Budget:  req.Budget,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, leadResponse{
		Success: true,
		Message: "Inquiry submitted successfully. We will be in touch!",
		Data:    lead,
	})
}

// List returns all inquiries newest-first, optionally filtered by status.
//
// @Summary      List contact inquiries
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(new, contacted, qualified, closed)
// @Success      200     {object}  leadListResponse
// @Failure      401     {object}  map[string]interface{}
// @Failure      403     {object}  map[string]interface{}
// @Router       /api/contacts [get]
func (h *LeadHandler) List(c echo.Context) error {
	leads, err := h.leadService.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, leadListResponse{
		Success: true,
		Count:   len(leads),
		Data:    leads,
	})
}

// UpdateStatus moves an inquiry through the follow-up pipeline.
//
// @Summary      Update inquiry status
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Inquiry id"
// @Param        body  body      updateLeadStatusRequest  true  "New status"
// @Success      200   {object}  leadResponse
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /api/contacts/{id}/status [put]
func (h *LeadHandler) UpdateStatus(c echo.Context) error {
	var req updateLeadStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lead, err := h.leadService.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, leadResponse{
		Success: true,
		Message: fmt.Sprintf("Status updated to %s.", lead.Status),
		Data:    lead,
	})
}

// Delete removes an inquiry permanently.
//
// @Summary      Delete an inquiry
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Inquiry id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/contacts/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	if err := h.leadService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Inquiry deleted successfully.",
	})
}
