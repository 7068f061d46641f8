package handler

import (
	"errors"
	"net/http"

	"lanka-connect/backend/internal/models"
	"lanka-connect/backend/internal/repository"
	"lanka-connect/backend/internal/services"
	"lanka-connect/backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	services *repository.ServiceRepository
	seeder   *services.SeedService
}

func NewAdminHandler(serviceRepo *repository.ServiceRepository, seeder *services.SeedService) *AdminHandler {
	return &AdminHandler{services: serviceRepo, seeder: seeder}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// UpdateServiceStatus is the admin moderation action. The resulting update
// event on the services collection drives the approval notifier.
func (h *AdminHandler) UpdateServiceStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service ID is required"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending, approved or rejected"})
		return
	}

	err := h.services.UpdateStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update service status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *AdminHandler) SeedDemoData(c *gin.Context) {
	callerUID := c.GetString("userID")

	result, err := h.seeder.SeedDemoData(c.Request.Context(), callerUID)
	if errors.Is(err, models.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in before seeding demo data"})
		return
	}
	if errors.Is(err, models.ErrPermissionDenied) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only admin can seed demo data"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not seed demo data"})
		return
	}
	c.JSON(http.StatusOK, result)
}
