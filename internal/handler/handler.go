// Package handler exposes the POS service over a JSON HTTP API.
package handler

import (
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/pos-demo/internal/domain"
	"github.com/nikolayk812/pos-demo/internal/service"
	"go.uber.org/zap"
	"net/http"
)

type Handler struct {
	pos    *service.POS
	logger *zap.Logger
}

func New(pos *service.POS, logger *zap.Logger) *Handler {
	return &Handler{pos: pos, logger: logger}
}

// Register mounts all routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/categories", h.Categories)

	menu := r.Group("/menu")
	{
		menu.GET("", h.ListItems)
		menu.POST("", h.CreateItem)
		menu.PUT("/:id", h.UpdateItem)
		menu.DELETE("/:id", h.DeleteItem)
	}

	sessions := r.Group("/sessions/:owner")
	{
		sessions.GET("", h.View)
		sessions.PUT("/category", h.SelectCategory)
		sessions.PUT("/theme", h.SetTheme)

		sessions.GET("/cart", h.GetCart)
		sessions.DELETE("/cart", h.ClearCart)
		sessions.POST("/cart/:itemID", h.AddToCart)
		sessions.DELETE("/cart/:itemID", h.RemoveLine)
		sessions.POST("/cart/:itemID/increment", h.IncrementLine)
		sessions.POST("/cart/:itemID/decrement", h.DecrementLine)
	}
}

// NewRouter builds a gin engine with the API mounted.
func NewRouter(h *Handler, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware...)
	h.Register(r)
	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": domain.Categories})
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.pos.ListItems(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": toItemDTOs(items)})
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item, err := h.pos.CreateItem(c.Request.Context(), req.fields())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": toItemDTO(item)})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item, found, err := h.pos.UpdateItem(c.Request.Context(), c.Param("id"), req.fields())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": toItemDTO(item)})
}

func (h *Handler) DeleteItem(c *gin.Context) {
	deleted, err := h.pos.DeleteItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *Handler) View(c *gin.Context) {
	view, err := h.pos.View(c.Request.Context(), c.Param("owner"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toViewDTO(view))
}

func (h *Handler) SelectCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.pos.SelectCategory(c.Request.Context(), c.Param("owner"), req.Category)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": toSessionDTO(session)})
}

func (h *Handler) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Dark == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dark is required"})
		return
	}

	session, err := h.pos.SetTheme(c.Request.Context(), c.Param("owner"), *req.Dark)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": toSessionDTO(session)})
}

func (h *Handler) GetCart(c *gin.Context) {
	cart, totals, err := h.pos.Cart(c.Request.Context(), c.Param("owner"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": toCartDTO(cart, totals)})
}

func (h *Handler) ClearCart(c *gin.Context) {
	if _, err := h.pos.ClearCart(c.Request.Context(), c.Param("owner")); err != nil {
		h.fail(c, err)
		return
	}

	h.GetCart(c)
}

func (h *Handler) AddToCart(c *gin.Context) {
	h.cartOp(c, h.pos.AddToCart)
}

func (h *Handler) IncrementLine(c *gin.Context) {
	h.cartOp(c, h.pos.IncrementLine)
}

func (h *Handler) DecrementLine(c *gin.Context) {
	h.cartOp(c, h.pos.DecrementLine)
}

func (h *Handler) RemoveLine(c *gin.Context) {
	h.cartOp(c, h.pos.RemoveLine)
}

type cartFunc func(ctx context.Context, ownerID, itemID string) (domain.Cart, bool, error)

// cartOp runs a line operation and responds with the resulting cart. Unknown
// items are not an error: changed is false and the cart is unchanged.
func (h *Handler) cartOp(c *gin.Context, op cartFunc) {
	cart, changed, err := op(c.Request.Context(), c.Param("owner"), c.Param("itemID"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"changed": changed,
		"cart":    toCartDTO(cart, cart.Totals(h.pos.Currency())),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case service.IsInputError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled):
		c.Status(499)
	default:
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
