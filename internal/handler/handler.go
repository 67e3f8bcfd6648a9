// Package handler exposes the storefront over HTTP.
package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/broka-order/internal/domain"
	"github.com/nikolayk812/broka-order/internal/storefront"
	"github.com/nikolayk812/broka-order/pkg/resp"
	"go.uber.org/zap"
)

type Handler struct {
	store  *storefront.Storefront
	logger *zap.Logger
}

func New(store *storefront.Storefront, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

type RouterConfig struct {
	CORSOrigins []string
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), CORS(cfg.CORSOrigins))

	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	api.Use(CartID(), RequestLogger(h.logger))
	{
		api.GET("/menu", h.Menu)
		api.GET("/status", h.Status)

		api.GET("/cart", h.GetCart)
		api.POST("/cart/lines", h.AddLine)
		api.PATCH("/cart/lines/:index", h.UpdateLine)
		api.DELETE("/cart/lines/:index", h.RemoveLine)
		api.DELETE("/cart", h.ClearCart)

		api.POST("/checkout", h.Checkout)
	}

	return router
}

// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	resp.OK(c, gin.H{"status": "ok"})
}

// GET /api/menu
func (h *Handler) Menu(c *gin.Context) {
	resp.OK(c, gin.H{"sections": toSectionViews(h.store.Menu())})
}

// GET /api/status
func (h *Handler) Status(c *gin.Context) {
	resp.OK(c, toStatusView(h.store.Status()))
}

// GET /api/cart
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.store.Cart(c.Request.Context(), cartID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.OK(c, toCartView(cart))
}

type addLineRequest struct {
	ItemID   string   `json:"item_id" binding:"required"`
	AddOnIDs []string `json:"add_on_ids"`
	Quantity int      `json:"quantity"`
}

// POST /api/cart/lines
func (h *Handler) AddLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := h.store.AddToCart(c.Request.Context(), cartID(c), storefront.AddRequest{
		ItemID:   req.ItemID,
		AddOnIDs: req.AddOnIDs,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.Created(c, toCartView(cart))
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

// PATCH /api/cart/lines/:index
func (h *Handler) UpdateLine(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}

	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := h.store.UpdateQuantity(c.Request.Context(), cartID(c), index, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.OK(c, toCartView(cart))
}

// DELETE /api/cart/lines/:index
func (h *Handler) RemoveLine(c *gin.Context) {
	index, ok := lineIndex(c)
	if !ok {
		return
	}

	cart, err := h.store.RemoveLine(c.Request.Context(), cartID(c), index)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.OK(c, toCartView(cart))
}

// DELETE /api/cart
func (h *Handler) ClearCart(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.store.ClearCart(ctx, cartID(c)); err != nil {
		h.fail(c, err)
		return
	}

	cart, err := h.store.Cart(ctx, cartID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.OK(c, toCartView(cart))
}

type checkoutRequest struct {
	Bairro          string `json:"bairro"`
	Rua             string `json:"rua"`
	Numero          string `json:"numero"`
	PontoReferencia string `json:"ponto_referencia"`
}

// POST /api/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.store.Checkout(c.Request.Context(), cartID(c), domain.DeliveryAddress{
		Bairro:          req.Bairro,
		Rua:             req.Rua,
		Numero:          req.Numero,
		PontoReferencia: req.PontoReferencia,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.OK(c, toCheckoutView(receipt))
}

func lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		resp.BadRequest(c, "line index must be an integer")
		return 0, false
	}
	return index, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		resp.Invalid(c, verr.Error(), verr.Fields)
	case errors.Is(err, storefront.ErrStoreClosed):
		resp.Conflict(c, h.store.Status().Message)
	case errors.Is(err, storefront.ErrItemNotFound), errors.Is(err, storefront.ErrLineNotFound):
		resp.NotFound(c, rootMessage(err))
	case errors.Is(err, storefront.ErrAddOnNotFound), errors.Is(err, storefront.ErrAddOnRepeated),
		errors.Is(err, storefront.ErrEmptyCart), errors.Is(err, storefront.ErrInvalidQuantity):
		resp.BadRequest(c, rootMessage(err))
	case errors.Is(err, storefront.ErrDispatch):
		h.logger.Error("checkout failed", zap.String("cart_id", cartID(c)), zap.Error(err))
		resp.BadGateway(c, storefront.NoticeFailed)
	default:
		h.logger.Error("request failed", zap.String("cart_id", cartID(c)), zap.Error(err))
		resp.ServerError(c)
	}
}

// rootMessage drops the call-site prefixes, keeping "item[x]: menu item not found"
// style messages short for clients.
func rootMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "menu.Resolve: "); i >= 0 {
		return msg[i+len("menu.Resolve: "):]
	}
	return msg
}
