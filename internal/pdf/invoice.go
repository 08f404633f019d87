package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/giftmart/internal/constants"
	"github.com/giftmart/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// RenderInvoice 渲染订单发票 PDF，返回文件内容与建议文件名。
// 发票只含商品与金额明细，不包含卡密。
func RenderInvoice(order *models.Order) ([]byte, string, error) {
	if order == nil {
		return nil, "", fmt.Errorf("invoice order is nil")
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Invoice %s", order.OrderNo), false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, "GiftMart Invoice")
	doc.Ln(14)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, fmt.Sprintf("Order No: %s", order.OrderNo))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Status: %s", order.Status))
	doc.Ln(6)
	if order.Email != "" {
		doc.Cell(0, 6, fmt.Sprintf("Customer: %s", order.Email))
		doc.Ln(6)
	}

	if address := formatShippingAddress(order); address != "" {
		doc.Ln(2)
		doc.SetFont("Helvetica", "B", 11)
		doc.Cell(0, 6, "Billing / Shipping Address")
		doc.Ln(6)
		doc.SetFont("Helvetica", "", 10)
		for _, line := range strings.Split(address, "\n") {
			doc.Cell(0, 5, line)
			doc.Ln(5)
		}
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(240, 240, 240)
	doc.CellFormat(110, 7, "Item", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	doc.CellFormat(45, 7, "Unit Price", "1", 0, "R", true, 0, "")
	doc.Ln(7)

	doc.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		name := item.Name
		if item.Region != "" {
			name = fmt.Sprintf("%s (%s)", name, item.Region)
		}
		doc.CellFormat(110, 7, name, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		doc.CellFormat(45, 7, fmt.Sprintf("%s %s", item.UnitPrice.String(), item.Currency), "1", 0, "R", false, 0, "")
		doc.Ln(7)
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(135, 8, "Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(45, 8, fmt.Sprintf("%s %s", order.TotalAmount.String(), order.Currency), "1", 0, "R", false, 0, "")
	doc.Ln(12)

	doc.SetFont("Helvetica", "I", 9)
	doc.Cell(0, 5, "Gift card keys are delivered separately and never printed on invoices.")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s-%s.pdf", constants.InvoiceFilenamePrefix, order.OrderNo)
	return buf.Bytes(), filename, nil
}

func formatShippingAddress(order *models.Order) string {
	lines := make([]string, 0, 4)
	if strings.TrimSpace(order.ShippingName) != "" {
		lines = append(lines, strings.TrimSpace(order.ShippingName))
	}
	if strings.TrimSpace(order.ShippingLine1) != "" {
		lines = append(lines, strings.TrimSpace(order.ShippingLine1))
	}
	if strings.TrimSpace(order.ShippingLine2) != "" {
		lines = append(lines, strings.TrimSpace(order.ShippingLine2))
	}
	cityLine := strings.TrimSpace(strings.Join(filterEmpty([]string{
		order.ShippingCity,
		order.ShippingPostalCode,
		order.ShippingCountry,
	}), ", "))
	if cityLine != "" {
		lines = append(lines, cityLine)
	}
	return strings.Join(lines, "\n")
}

func filterEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
