package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"nursery/middleware"
	"nursery/models"
	"nursery/orders"
)

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

func parseDay(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

func CreateOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in orders.CreateOrderInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}
		in.UserID = middleware.UserID(c)
		in.IdempotencyKey = c.GetHeader("Idempotency-Key")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		order, err := svc.Create(ctx, in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"order":   order,
			"message": "Order created successfully",
		})
	}
}

func GetMyOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := svc.ListMine(ctx, middleware.UserID(c), models.OrderStatus(c.Query("status")), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   result.Count,
			"total":   result.Total,
			"page":    result.Page,
			"pages":   result.Pages,
			"orders":  result.Orders,
		})
	}
}

func GetOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		filter := orders.ListFilter{
			Status:    models.OrderStatus(c.Query("status")),
			StartDate: parseDay(c.Query("startDate")),
			EndDate:   parseDay(c.Query("endDate")),
			Search:    c.Query("search"),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := svc.List(ctx, filter, page, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"count":   result.Count,
			"total":   result.Total,
			"page":    result.Page,
			"pages":   result.Pages,
			"orders":  result.Orders,
		})
	}
}

func GetOrderStats(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		stats, err := svc.Stats(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
	}
}

func GetOrderByID(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		order, err := svc.GetByID(ctx, c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

func UpdateOrderToPaid(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in orders.PaymentUpdateInput
		if err := c.ShouldBindJSON(&in); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		order, err := svc.MarkPaid(ctx, c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

func UpdateOrderToDelivered(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			TrackingNumber string `json:"trackingNumber"`
		}
		if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		order, err := svc.MarkDelivered(ctx, c.Param("id"), body.TrackingNumber)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

func CancelOrder(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Reason string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		order, err := svc.Cancel(ctx, c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c), body.Reason)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

func UpdateOrderStatus(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Status          string `json:"status" binding:"required"`
			TrackingNumber  string `json:"trackingNumber"`
			TrackingCompany string `json:"trackingCompany"`
			TrackingURL     string `json:"trackingUrl"`
			Notes           string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		order, err := svc.SetStatus(ctx, c.Param("id"), models.OrderStatus(body.Status), orders.TrackingInput{
			Number:  body.TrackingNumber,
			Company: body.TrackingCompany,
			URL:     body.TrackingURL,
		}, body.Notes)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// ExportOrders streams the whole order book as a spreadsheet for offline
// bookkeeping.
func ExportOrders(svc *orders.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		all, err := svc.Export(ctx)
		if err != nil {
			respondError(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create sheet"})
			return
		}

		headers := []string{
			"ID", "Customer", "Email", "Status", "PaymentMethod", "Paid",
			"Subtotal", "ShippingFee", "Discount", "TotalAmount", "Items", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range all {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID.Hex())
			row.AddCell().SetValue(o.UserDetails.FirstName + " " + o.UserDetails.LastName)
			row.AddCell().SetValue(o.UserDetails.Email)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.PaymentMethod)
			row.AddCell().SetValue(o.IsPaid)
			row.AddCell().SetValue(o.Subtotal)
			row.AddCell().SetValue(o.ShippingFee)
			row.AddCell().SetValue(o.Discount)
			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(len(o.Items))
			row.AddCell().SetValue(o.CreatedAt.Format(time.RFC3339))
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders_%s.xlsx", time.Now().Format("20060102")))
		if err := file.Write(c.Writer); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	}
}
