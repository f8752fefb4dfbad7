package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"resto/cart"
	"resto/importer"
	"resto/model"
	"resto/pos"
	"resto/query"
	"resto/utils"
)

// POSController serves the screen specific operations.
type POSController struct {
	r   *pos.Restaurant
	log *zap.Logger
}

func NewPOSController(r *pos.Restaurant, log *zap.Logger) *POSController {
	return &POSController{r: r, log: log}
}

func (pc *POSController) ToggleEmployeeStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !utils.Capabilities(c).Has(pos.PermEditEmployees) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "permission denied"})
		return
	}
	e, err := pc.r.ToggleEmployeeStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Employee status changed", "data": e})
}

// EmployeeRoles lists the roles the employee list can be filtered by.
func (pc *POSController) EmployeeRoles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": model.Roles})
}

func (pc *POSController) AdjustStock(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Delta *float64 `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "delta is required"})
		return
	}
	item, err := pc.r.AdjustStock(c.Request.Context(), id, *req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stock adjusted", "data": gin.H{
		"item":     item,
		"lowStock": item.LowStock(),
		"expiry":   item.ExpiryStatus(pc.r.Now()),
	}})
}

func (pc *POSController) InventoryAlerts(c *gin.Context) {
	alerts := pc.r.Alerts()
	if alerts == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": alerts})
}

func (pc *POSController) InventoryCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"categories": model.InventoryCategories,
		"units":      model.Units,
	}})
}

func (pc *POSController) ToggleDelivery(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := pc.r.ToggleDeliveryUpdate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": d})
}

func (pc *POSController) AddSeatOrder(c *gin.Context) {
	tableID, ok := paramID(c, "id")
	if !ok {
		return
	}
	seat, ok := paramInt(c, "seat")
	if !ok {
		return
	}
	var order pos.SeatOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	table, err := pc.r.AddSeatOrder(c.Request.Context(), tableID, seat, order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order added to seat", "data": table})
}

func (pc *POSController) RemoveSeatOrder(c *gin.Context) {
	tableID, ok := paramID(c, "id")
	if !ok {
		return
	}
	seat, ok := paramInt(c, "seat")
	if !ok {
		return
	}
	lineID, ok := paramID(c, "line")
	if !ok {
		return
	}
	table, err := pc.r.RemoveSeatOrder(c.Request.Context(), tableID, seat, lineID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order removed from seat", "data": table})
}

func (pc *POSController) SeatBill(c *gin.Context) {
	tableID, ok := paramID(c, "id")
	if !ok {
		return
	}
	seat, ok := paramInt(c, "seat")
	if !ok {
		return
	}
	bill, err := pc.r.SeatBill(tableID, seat)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bill})
}

func (pc *POSController) ClearMenuCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := pc.r.ClearMenuCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category cleared", "data": item})
}

func (pc *POSController) Orders(c *gin.Context) {
	var req query.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	req.Direction = query.ParseDirection(string(req.Direction))
	tab := c.DefaultQuery("tab", model.AllOrdersTab)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pc.r.OrderPage(tab, req)})
}

func (pc *POSController) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pc.r.Catalog()})
}

func (pc *POSController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pc.r.Cart.Summary()})
}

// AddCartItem takes either a menu_id or a free item.
func (pc *POSController) AddCartItem(c *gin.Context) {
	var req struct {
		MenuID int64   `json:"menu_id"`
		Name   string  `json:"name"`
		Price  float64 `json:"price" binding:"gte=0"`
		Image  string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var (
		line cart.Line
		err  error
	)
	switch {
	case req.MenuID != 0:
		line, err = pc.r.AddToCart(req.MenuID)
	case req.Name != "":
		line = pc.r.Cart.Add(cart.Item{Name: req.Name, Price: req.Price, Image: req.Image})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "menu_id or name is required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"line": line, "cart": pc.r.Cart.Summary()}})
}

func (pc *POSController) ChangeCartQuantity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "delta is required"})
		return
	}
	if _, err := pc.r.Cart.ChangeQuantity(id, req.Delta); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pc.r.Cart.Summary()})
}

func (pc *POSController) RemoveCartItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := pc.r.Cart.Remove(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pc.r.Cart.Summary()})
}

func (pc *POSController) Checkout(c *gin.Context) {
	var req struct {
		OrderType     model.OrderType     `json:"orderType"`
		PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if req.OrderType == "" {
		req.OrderType = model.OrderDineIn
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PayCash
	}
	out, err := pc.r.Checkout(c.Request.Context(), req.OrderType, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	fields := []zap.Field{zap.String("order_id", out.Payment.OrderID), zap.Float64("total", out.Summary.Total)}
	if s, ok := utils.CurrentSession(c); ok {
		fields = append(fields, zap.Int64("employee_id", s.EmployeeID))
	}
	pc.log.Info("Cart checked out", fields...)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Continue to payment", "data": out})
}

// Import bulk-adds employees, inventory or menu items from an uploaded file.
func (pc *POSController) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel or CSV file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Unable to open file"})
		return
	}
	defer file.Close()

	rows, err := importer.ReadRows(fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File must have at least one row of data"})
		return
	}

	caps := utils.Capabilities(c)
	ctx := c.Request.Context()
	var res importer.Result
	switch c.Param("entity") {
	case pos.KeyEmployees:
		res = importer.Import(ctx, pc.r.EmployeeForm(caps), rows)
	case pos.KeyInventory:
		res = importer.Import(ctx, pc.r.InventoryForm(caps), rows)
	case pos.KeyMenu:
		res = importer.Import(ctx, pc.r.MenuForm(caps), rows)
	default:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Import is not available for " + c.Param("entity")})
		return
	}

	pc.log.Info("Bulk import finished",
		zap.String("entity", c.Param("entity")),
		zap.Int("imported", res.Imported),
		zap.Int("failed", len(res.Failed)),
	)
	if res.Imported == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No valid rows found", "data": res})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rows imported", "data": res})
}
