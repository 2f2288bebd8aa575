package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tracking-service/internal/http/middleware"
	"tracking-service/internal/model"
	"tracking-service/internal/service"
)

type Handler struct {
	trackingService *service.TrackingService
	boundaryService *service.BoundaryService
	roleService     *service.RoleService
	log             zerolog.Logger
}

func NewHandler(
	trackingService *service.TrackingService,
	boundaryService *service.BoundaryService,
	roleService *service.RoleService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		trackingService: trackingService,
		boundaryService: boundaryService,
		roleService:     roleService,
		log:             log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	assets := protected.Group("/assets/:assetId")
	{
		assets.POST("/location", h.submitLocation)
		assets.GET("/position", h.getCurrentPosition)
		assets.GET("/history", h.getHistory)
		assets.GET("/history/:index", h.getHistoryAt)
		assets.POST("/boundaries", h.addBoundary)
		assets.GET("/boundaries", h.listBoundaries)
		assets.GET("/boundaries/:boundaryId", h.getBoundary)
		assets.PUT("/boundaries/:boundaryId", h.updateBoundary)
		assets.GET("/violations", h.listViolations)
		assets.GET("/violations/:violationId", h.getViolation)
	}

	roles := protected.Group("/roles")
	{
		roles.GET("/me", h.whoAmI)
		roles.POST("/fleet-managers/:identity", h.addFleetManager)
		roles.DELETE("/fleet-managers/:identity", h.removeFleetManager)
		roles.POST("/devices/:identity", h.addAuthorizedDevice)
		roles.DELETE("/devices/:identity", h.removeAuthorizedDevice)
		roles.POST("/owner/transfer", h.transferOwnership)
	}
}

func (h *Handler) submitLocation(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Latitude  int64 `json:"latitude"`
		Longitude int64 `json:"longitude"`
		Altitude  int64 `json:"altitude"`
		Timestamp int64 `json:"timestamp"`
		Speed     int64 `json:"speed"`
		Heading   int64 `json:"heading"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	ids, err := h.trackingService.SubmitLocation(c.Request.Context(), principal, c.Param("assetId"), model.PositionSample{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Altitude:  req.Altitude,
		Timestamp: req.Timestamp,
		Speed:     req.Speed,
		Heading:   req.Heading,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(gin.H{"violation_ids": ids}))
}

func (h *Handler) getCurrentPosition(c *gin.Context) {
	sample, err := h.trackingService.GetCurrentPosition(c.Request.Context(), c.Param("assetId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(sample))
}

func (h *Handler) getHistory(c *gin.Context) {
	cursor, count, err := h.trackingService.GetHistoryState(c.Request.Context(), c.Param("assetId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"count": count, "cursor": cursor}))
}

func (h *Handler) getHistoryAt(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid history index"))
		return
	}

	sample, err := h.trackingService.GetHistoryAt(c.Request.Context(), c.Param("assetId"), index)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(sample))
}

func (h *Handler) addBoundary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		BoundaryID string `json:"boundary_id" binding:"required"`
		CenterLat  int64  `json:"center_lat"`
		CenterLon  int64  `json:"center_lon"`
		Radius     int64  `json:"radius"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	boundary, err := h.boundaryService.Create(c.Request.Context(), principal, service.BoundaryInput{
		AssetID:    c.Param("assetId"),
		BoundaryID: req.BoundaryID,
		CenterLat:  req.CenterLat,
		CenterLon:  req.CenterLon,
		Radius:     req.Radius,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(boundary))
}

func (h *Handler) updateBoundary(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		CenterLat int64 `json:"center_lat"`
		CenterLon int64 `json:"center_lon"`
		Radius    int64 `json:"radius"`
		Active    bool  `json:"active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	boundary, err := h.boundaryService.Update(c.Request.Context(), principal, service.BoundaryInput{
		AssetID:    c.Param("assetId"),
		BoundaryID: c.Param("boundaryId"),
		CenterLat:  req.CenterLat,
		CenterLon:  req.CenterLon,
		Radius:     req.Radius,
		Active:     req.Active,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(boundary))
}

func (h *Handler) getBoundary(c *gin.Context) {
	boundary, err := h.boundaryService.Get(c.Request.Context(), c.Param("assetId"), c.Param("boundaryId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(boundary))
}

func (h *Handler) listBoundaries(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	boundaries, err := h.boundaryService.List(c.Request.Context(), c.Param("assetId"), activeOnly)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(boundaries))
}

func (h *Handler) getViolation(c *gin.Context) {
	violationID, err := strconv.ParseInt(c.Param("violationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid violation id"))
		return
	}

	violation, err := h.trackingService.GetViolation(c.Request.Context(), c.Param("assetId"), violationID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(violation))
}

func (h *Handler) listViolations(c *gin.Context) {
	violations, err := h.trackingService.ListViolations(c.Request.Context(), c.Param("assetId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(violations))
}

func (h *Handler) whoAmI(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	role, err := h.roleService.Resolve(c.Request.Context(), principal.Identity)
	if err != nil {
		h.handleError(c, err)
		return
	}
	isDevice, err := h.roleService.IsAuthorizedDevice(c.Request.Context(), principal.Identity)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"identity":          principal.Identity,
		"role":              role,
		"authorized_device": isDevice,
	}))
}

func (h *Handler) addFleetManager(c *gin.Context) {
	h.mutateRole(c, h.roleService.AddFleetManager)
}

func (h *Handler) removeFleetManager(c *gin.Context) {
	h.mutateRole(c, h.roleService.RemoveFleetManager)
}

func (h *Handler) addAuthorizedDevice(c *gin.Context) {
	h.mutateRole(c, h.roleService.AddAuthorizedDevice)
}

func (h *Handler) removeAuthorizedDevice(c *gin.Context) {
	h.mutateRole(c, h.roleService.RemoveAuthorizedDevice)
}

func (h *Handler) mutateRole(c *gin.Context, mutate roleMutation) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	if err := mutate(c.Request.Context(), principal, c.Param("identity")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "ok"}))
}

func (h *Handler) transferOwnership(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		NewOwner string `json:"new_owner" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if err := h.roleService.TransferOwnership(c.Request.Context(), principal, req.NewOwner); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "ok"}))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrAssetNotFound),
		errors.Is(err, service.ErrBoundaryNotFound),
		errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrBoundaryExists),
		errors.Is(err, service.ErrBoundaryLimit):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidBoundary),
		errors.Is(err, service.ErrInvalidCoordinates),
		errors.Is(err, service.ErrInvalidTimestamp),
		errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

type roleMutation func(ctx context.Context, caller model.Principal, identity string) error

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
