package public

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/giftmart/internal/http/response"
	"github.com/giftmart/internal/pdf"
	"github.com/giftmart/internal/service"

	"github.com/gin-gonic/gin"
)

// DownloadOrderInvoice 下载当前用户订单的发票 PDF
func (h *Handler) DownloadOrderInvoice(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetUserOrder(uint(orderID), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	data, filename, err := pdf.RenderInvoice(order)
	if err != nil {
		respondError(c, response.CodeInternal, "invoice render failed", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", data)
}
