package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medevel/hospital-api/internal/handler"
	"github.com/medevel/hospital-api/internal/middleware"
	"github.com/medevel/hospital-api/internal/model"
	billingsvc "github.com/medevel/hospital-api/internal/service/billing"
)

type Handler struct {
	service *billingsvc.Service
}

func NewHandler(service *billingsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bills", h.CreateBill)
	r.GET("/bills", h.ListBills)
	r.GET("/bills/:id", h.GetBill)
	r.POST("/transactions", h.CreateTransaction)
	r.GET("/transactions", h.ListTransactions)
	r.GET("/transactions/:id", h.GetTransaction)
}

func (h *Handler) CreateBill(c *gin.Context) {
	var req model.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	bill, err := h.service.CreateBill(c.Request.Context(), claims.HospitalID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, bill)
}

func (h *Handler) GetBill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid bill ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	bill, err := h.service.GetBill(c.Request.Context(), claims.HospitalID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, bill)
}

// CreateTransaction settles a bill: records the payment, marks the bill
// paid and decrements prescribed stock.
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req model.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	claims := middleware.ClaimsFrom(c)
	txn, err := h.service.Settle(c.Request.Context(), claims.HospitalID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, txn)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.BadRequest(c, "invalid transaction ID")
		return
	}

	claims := middleware.ClaimsFrom(c)
	txn, err := h.service.GetTransaction(c.Request.Context(), claims.HospitalID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, txn)
}

func (h *Handler) ListBills(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.BillDatatable(c.Request.Context(), claims.HospitalID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	result, err := h.service.TransactionDatatable(c.Request.Context(), claims.HospitalID, c.Request.URL.Query())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
