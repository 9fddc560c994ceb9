package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"logichain-web/internal/middleware"
	"logichain-web/internal/models"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
)

//
// NEW ORDER
//

func (h *Handler) ShowNewOrder(c *gin.Context) {
	h.renderNewOrder(c, http.StatusOK, gin.H{})
}

func (h *Handler) renderNewOrder(c *gin.Context, status int, data gin.H) {
	var products []models.Product
	env, err := h.api.Products.List(c.Request.Context())
	if err != nil {
		if h.apiFailed(c, err, "Failed to load products") {
			return
		}
	} else {
		products = env.Data
	}

	data["Title"] = "New Order"
	data["products"] = products
	data["paymentMethods"] = paymentMethods
	h.render(c, status, "new_order.html", data)
}

var paymentMethods = []string{"CREDIT_CARD", "DEBIT_CARD", "PAYPAL", "CASH_ON_DELIVERY"}

type orderForm struct {
	ProductID       string `form:"product_id"`
	Quantity        string `form:"quantity"`
	ShippingAddress string `form:"shipping_address"`
	BillingAddress  string `form:"billing_address"`
	PaymentMethod   string `form:"payment_method"`
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var form orderForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderNewOrder(c, http.StatusBadRequest, gin.H{"error": "Invalid form data", "form": form})
		return
	}
	form.ShippingAddress = strings.TrimSpace(form.ShippingAddress)
	form.BillingAddress = strings.TrimSpace(form.BillingAddress)

	var errs formErrors
	errs.require(form.ProductID, "Product")
	errs.require(form.ShippingAddress, "Shipping address")
	errs.require(form.PaymentMethod, "Payment method")
	productID, ok := pathID(form.ProductID)
	qty, qerr := strconv.Atoi(strings.TrimSpace(form.Quantity))
	switch {
	case len(errs) > 0:
	case !ok:
		errs = append(errs, "Please pick a product")
	case qerr != nil || qty <= 0:
		errs = append(errs, "Quantity must be a positive number")
	}
	if len(errs) > 0 {
		h.renderNewOrder(c, http.StatusBadRequest, gin.H{"error": errs.first(), "form": form})
		return
	}
	if form.BillingAddress == "" {
		form.BillingAddress = form.ShippingAddress
	}

	ctx := c.Request.Context()
	product, err := h.api.Products.Get(ctx, productID)
	if err != nil {
		if h.apiFailed(c, err, "Product not found") {
			return
		}
		h.renderNewOrder(c, http.StatusBadRequest, gin.H{"form": form})
		return
	}

	p := middleware.CurrentSession(c).Principal
	order := models.Order{
		CustomerID:      p.ID,
		OrderStatus:     models.OrderPending,
		PaymentStatus:   "PENDING",
		PaymentMethod:   form.PaymentMethod,
		ShippingAddress: form.ShippingAddress,
		BillingAddress:  form.BillingAddress,
		TotalAmount:     product.Data.Price * float64(qty),
		OrderItems: []models.OrderItem{
			{ProductID: productID, Quantity: qty, Price: product.Data.Price},
		},
	}
	created, err := h.api.Orders.Create(ctx, order)
	if err != nil {
		if h.apiFailed(c, err, "Failed to place order") {
			return
		}
		h.renderNewOrder(c, http.StatusBadGateway, gin.H{"form": form})
		return
	}

	msg := "Order placed"
	if created.Data.OrderNumber != "" {
		msg = "Order " + created.Data.OrderNumber + " placed"
	}
	h.flash(c, session.NoticeSuccess, msg)
	h.redirect(c, "/my-orders")
}

//
// MY ORDERS
//

func (h *Handler) myOrders(c *gin.Context) ([]models.Order, bool) {
	p := middleware.CurrentSession(c).Principal
	env, err := h.api.Orders.ByCustomer(c.Request.Context(), p.ID)
	if err != nil {
		if h.apiFailed(c, err, "Failed to load orders") {
			return nil, false
		}
		return nil, true
	}
	return env.Data, true
}

func (h *Handler) MyOrders(c *gin.Context) {
	orders, ok := h.myOrders(c)
	if !ok {
		return
	}

	t := newTable("My Orders", "You have no orders yet.", "Order", "Date", "Status", "Payment", "Total")
	for _, o := range orders {
		t.add("/order/"+num(o.ID), orDash(o.OrderNumber), day(o.OrderDate), string(o.OrderStatus), orDash(o.PaymentStatus), money(o.TotalAmount))
	}
	h.render(c, http.StatusOK, "list.html", gin.H{"Title": t.Title, "table": t})
}

// OrderDetails falls back to the order list when the order cannot be
// shown.
func (h *Handler) OrderDetails(c *gin.Context) {
	id, ok := pathID(c.Param("id"))
	if !ok {
		h.flash(c, session.NoticeError, "Order not found")
		h.redirect(c, "/my-orders")
		return
	}

	env, err := h.api.Orders.Get(c.Request.Context(), id)
	if err != nil {
		if h.apiFailed(c, err, "Failed to load order") {
			return
		}
		h.redirect(c, "/my-orders")
		return
	}

	p := middleware.CurrentSession(c).Principal
	if env.Data.CustomerID != 0 && env.Data.CustomerID != p.ID {
		h.flash(c, session.NoticeError, "Order not found")
		h.redirect(c, "/my-orders")
		return
	}

	h.render(c, http.StatusOK, "order_detail.html", gin.H{
		"Title": "Order " + env.Data.OrderNumber,
		"order": env.Data,
	})
}

// TrackShipment takes the tracking number as is from the path.
func (h *Handler) TrackShipment(c *gin.Context) {
	tracking := c.Param("id")
	env, err := h.api.Shipments.Track(c.Request.Context(), tracking)
	if err != nil {
		if h.apiFailed(c, err, "Shipment not found") {
			return
		}
		h.redirect(c, "/my-orders")
		return
	}

	h.render(c, http.StatusOK, "track.html", gin.H{
		"Title":    "Track Shipment",
		"tracking": tracking,
		"shipment": env.Data,
		"found":    true,
	})
}

//
// RETURNS
//

func (h *Handler) MyReturns(c *gin.Context) {
	h.renderMyReturns(c, http.StatusOK, gin.H{})
}

func (h *Handler) renderMyReturns(c *gin.Context, status int, data gin.H) {
	orders, ok := h.myOrders(c)
	if !ok {
		return
	}
	mine := make(map[int64]bool, len(orders))
	var returnable []models.Order
	for _, o := range orders {
		mine[o.ID] = true
		if o.OrderStatus == models.OrderDelivered {
			returnable = append(returnable, o)
		}
	}

	t := newTable("My Returns", "You have not requested any returns.", "Return", "Order", "Status", "Reason", "Refund")
	env, err := h.api.Returns.List(c.Request.Context())
	if err != nil {
		if h.apiFailed(c, err, "Failed to load returns") {
			return
		}
	}
	for _, r := range env.Data {
		if !mine[r.OrderID] {
			continue
		}
		t.add("", orDash(r.ReturnNumber), num(r.OrderID), orDash(r.ReturnStatus), orDash(r.Reason), money(r.RefundAmount))
	}

	data["Title"] = t.Title
	data["table"] = t
	data["orders"] = returnable
	h.render(c, status, "my_returns.html", data)
}

func (h *Handler) CreateReturn(c *gin.Context) {
	reason := strings.TrimSpace(c.PostForm("reason"))

	var errs formErrors
	errs.require(c.PostForm("order_id"), "Order")
	errs.require(reason, "Reason")
	orderID, ok := pathID(c.PostForm("order_id"))
	if len(errs) == 0 && !ok {
		errs = append(errs, "Please pick an order")
	}
	if len(errs) > 0 {
		h.renderMyReturns(c, http.StatusBadRequest, gin.H{"error": errs.first(), "reason": reason})
		return
	}

	ret := models.Return{OrderID: orderID, Reason: reason, ReturnStatus: models.ReturnRequested}
	if _, err := h.api.Returns.Create(c.Request.Context(), ret); err != nil {
		if h.apiFailed(c, err, "Failed to request return") {
			return
		}
		h.redirect(c, "/my-returns")
		return
	}

	h.flash(c, session.NoticeSuccess, "Return requested")
	h.redirect(c, "/my-returns")
}
