package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/SunnFlower47/kasir-print-service/internal/application/service"
	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/dto/request"
	"github.com/SunnFlower47/kasir-print-service/internal/presentation/http/dto/response"
	"github.com/SunnFlower47/kasir-print-service/pkg/apperror"
	"github.com/SunnFlower47/kasir-print-service/pkg/pagination"
)

// PrintHandler handles print-related HTTP requests.
type PrintHandler struct {
	printService *service.PrintService
}

// NewPrintHandler creates a new print handler.
func NewPrintHandler(printService *service.PrintService) *PrintHandler {
	return &PrintHandler{printService: printService}
}

// PrintReceipt renders and prints a receipt for an already-fetched
// transaction.
func (h *PrintHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	outcome, err := h.printService.PrintReceipt(c.Request.Context(), req.Receipt, service.PrintOptions{
		OutletID: req.OutletID,
		Template: req.Template,
	})
	if err != nil {
		response.Error(c, apperror.NewPrintError(err.Error()))
		return
	}

	response.OK(c, "Receipt printed", outcome)
}

// TestPrint sends a sample receipt through the print chain.
func (h *PrintHandler) TestPrint(c *gin.Context) {
	receipt, outcome, err := h.printService.TestPrint(c.Request.Context())
	if err != nil {
		// Return the receipt data anyway so the caller can inspect what
		// would have been printed.
		response.OK(c, "Test receipt generated but printing failed", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test receipt printed", gin.H{
		"receipt": receipt,
		"outcome": outcome,
	})
}

// GetStatus reports each print backend's availability.
func (h *PrintHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printService.Status(c.Request.Context()))
}

// ListJobs returns the print job audit trail, newest first.
func (h *PrintHandler) ListJobs(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	jobs, total, err := h.printService.Jobs(c.Request.Context(), params.Offset(), params.PerPage)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Print jobs retrieved",
		pagination.NewPaginatedResult(jobs, params, total))
}
