package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-manager/kds"
	"github.com/yeremiapane/restaurant-manager/models"
	"github.com/yeremiapane/restaurant-manager/queue"
	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderController struct {
	DB        *gorm.DB
	Orders    *services.OrderService
	Publisher queue.Publisher
}

func NewOrderController(db *gorm.DB, pub queue.Publisher) *OrderController {
	if pub == nil {
		pub = queue.NoopPublisher{}
	}
	return &OrderController{DB: db, Orders: services.NewOrderService(db), Publisher: pub}
}

type lineItemRequest struct {
	MenuItemID uint             `json:"menu_item_id" binding:"required,gt=0"`
	Quantity   int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	Subtotal   *decimal.Decimal `json:"subtotal"`
}

type lineItemUpdateRequest struct {
	MenuItemID *uint            `json:"menu_item_id" binding:"omitempty,gt=0"`
	Quantity   *int             `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	Subtotal   *decimal.Decimal `json:"subtotal"`
}

// total_amount sengaja tidak ada di request, selalu dihitung server
type orderRequest struct {
	TableID       uint              `json:"table_id" binding:"required,gt=0"`
	EmployeeID    uint              `json:"employee_id" binding:"required,gt=0"`
	OrderDate     string            `json:"order_date" binding:"omitempty,isodate"`
	OrderTime     string            `json:"order_time" binding:"omitempty,clock"`
	Status        string            `json:"status" binding:"omitempty,oneof=new cooking ready served paid cancelled"`
	PaymentMethod *string           `json:"payment_method" binding:"omitempty,oneof=cash card contactless"`
	Items         []lineItemRequest `json:"items" binding:"omitempty,dive"`
}

type orderUpdateRequest struct {
	TableID       *uint   `json:"table_id" binding:"omitempty,gt=0"`
	EmployeeID    *uint   `json:"employee_id" binding:"omitempty,gt=0"`
	OrderDate     *string `json:"order_date" binding:"omitempty,isodate"`
	OrderTime     *string `json:"order_time" binding:"omitempty,clock"`
	Status        *string `json:"status" binding:"omitempty,oneof=new cooking ready served paid cancelled"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,oneof=cash card contactless"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type addItemsRequest struct {
	Items []lineItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r lineItemRequest) toInput() (services.LineItemInput, error) {
	if (r.UnitPrice != nil && r.UnitPrice.IsNegative()) || (r.Subtotal != nil && r.Subtotal.IsNegative()) {
		return services.LineItemInput{}, ErrNegative
	}
	return services.LineItemInput{
		MenuItemID: r.MenuItemID,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		Subtotal:   r.Subtotal,
	}, nil
}

func toInputs(reqs []lineItemRequest) ([]services.LineItemInput, error) {
	inputs := make([]services.LineItemInput, 0, len(reqs))
	for _, r := range reqs {
		in, err := r.toInput()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// GetAllOrders -> ?status= opsional
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Order("order_date DESC, order_time DESC, id DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetActiveOrders -> order yang belum dibayar / dibatalkan, untuk layar dapur
func (oc *OrderController) GetActiveOrders(c *gin.Context) {
	var orders []models.Order
	err := oc.DB.Where("status IN ?", models.ActiveOrderStatuses).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.MenuItem").
		Order("order_date, order_time, id").
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active orders", orders)
}

// GetOrdersByDate -> /orders/date/:date
func (oc *OrderController) GetOrdersByDate(c *gin.Context) {
	date, err := utils.ParseDate(c.Param("date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var orders []models.Order
	if err := oc.DB.Where("order_date = ?", date).Order("order_time, id").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders on "+c.Param("date"), orders)
}

// GetOrderByID -> order beserta item
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := oc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> order baru, boleh langsung membawa items
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	inputs, err := toInputs(req.Items)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	now := time.Now().UTC()
	order := models.Order{
		TableID:       req.TableID,
		EmployeeID:    req.EmployeeID,
		OrderDate:     utils.DateOf(now),
		OrderTime:     utils.ClockOf(now),
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
	}
	if req.OrderDate != "" {
		order.OrderDate, _ = utils.ParseDate(req.OrderDate)
	}
	if req.OrderTime != "" {
		order.OrderTime, _ = utils.ParseClock(req.OrderTime)
	}

	if err := oc.Orders.CreateOrder(c.Request.Context(), &order, inputs); err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastOrderUpdate(kds.EventOrderCreate, order)
	if len(order.Items) > 0 {
		oc.totalChanged(order)
	}
	utils.InfoLogger.Printf("New order created: #%d table=%d items=%d total=%s",
		order.ID, order.TableID, len(order.Items), order.TotalAmount.StringFixed(2))
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// UpdateOrder -> meja, pelayan, tanggal, jam, status, metode bayar. Total tidak bisa diubah.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req orderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		respondServiceError(c, services.ErrOrderNotFound)
		return
	}

	if req.TableID != nil {
		if ok, err := recordExists(oc.DB, &models.Table{}, *req.TableID); err != nil || !ok {
			respondServiceError(c, orNotFound(err, services.ErrTableNotFound))
			return
		}
		order.TableID = *req.TableID
	}
	if req.EmployeeID != nil {
		if ok, err := recordExists(oc.DB, &models.Employee{}, *req.EmployeeID); err != nil || !ok {
			respondServiceError(c, orNotFound(err, services.ErrEmployeeNotFound))
			return
		}
		order.EmployeeID = *req.EmployeeID
	}
	if req.OrderDate != nil {
		order.OrderDate, _ = utils.ParseDate(*req.OrderDate)
	}
	if req.OrderTime != nil {
		order.OrderTime, _ = utils.ParseClock(*req.OrderTime)
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.PaymentMethod != nil {
		order.PaymentMethod = req.PaymentMethod
	}

	err = oc.DB.Model(&order).Omit(clause.Associations).
		Select("table_id", "employee_id", "order_date", "order_time", "status", "payment_method").
		Updates(&order).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	updated, err := oc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	kds.BroadcastOrderUpdate(kds.EventOrderUpdate, updated)
	utils.RespondJSON(c, http.StatusOK, "Order updated", updated)
}

// UpdateOrderStatus -> PUT /orders/:id/status
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastOrderUpdate(kds.EventOrderUpdate, order)
	if order.Status == models.OrderStatusReady {
		kds.BroadcastStaffNotification(fmt.Sprintf("Order #%d for table %d is ready", order.ID, order.TableID))
	}
	utils.InfoLogger.Printf("Order #%d status -> %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> item ikut terhapus
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := oc.Orders.DeleteOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	kds.BroadcastOrderUpdate(kds.EventOrderDelete, models.Order{ID: id})
	utils.InfoLogger.Printf("Order #%d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": id})
}

// AddOrderItems -> POST /orders/:id/items, semua item atau tidak sama sekali
func (oc *OrderController) AddOrderItems(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	inputs, err := toInputs(req.Items)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := oc.Orders.AddLineItems(c.Request.Context(), id, inputs); err != nil {
		respondServiceError(c, err)
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	oc.totalChanged(order)
	utils.RespondJSON(c, http.StatusCreated, "Items added to order", order)
}

// UpdateOrderItem -> PUT /orders/:id/items/:item_id
func (oc *OrderController) UpdateOrderItem(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	itemID, err := parseID(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	var req lineItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if (req.UnitPrice != nil && req.UnitPrice.IsNegative()) || (req.Subtotal != nil && req.Subtotal.IsNegative()) {
		utils.RespondError(c, http.StatusBadRequest, ErrNegative)
		return
	}

	_, err = oc.Orders.UpdateLineItem(c.Request.Context(), id, itemID, services.LineItemPatch{
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
		UnitPrice:  req.UnitPrice,
		Subtotal:   req.Subtotal,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	oc.totalChanged(order)
	utils.RespondJSON(c, http.StatusOK, "Order item updated", order)
}

// DeleteOrderItem -> DELETE /orders/:id/items/:item_id
func (oc *OrderController) DeleteOrderItem(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	itemID, err := parseID(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.Orders.DeleteLineItem(c.Request.Context(), id, itemID); err != nil {
		respondServiceError(c, err)
		return
	}

	order, err := oc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	oc.totalChanged(order)
	utils.RespondJSON(c, http.StatusOK, "Order item deleted", order)
}

// totalChanged -> kabari layar dapur dan broker setelah total dihitung ulang
func (oc *OrderController) totalChanged(order models.Order) {
	kds.BroadcastOrderTotal(order)
	publishEvent(oc.Publisher, queue.RoutingOrderTotalChanged, queue.OrderTotalChangedEvent{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount.StringFixed(2),
		ItemCount:   len(order.Items),
		ChangedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}

func orNotFound(err, notFound error) error {
	if err != nil {
		return err
	}
	return notFound
}
