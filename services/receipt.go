// services/receipt.go
package services

import (
	"fmt"
	"io"

	"sneakcare-backend/models"

	"github.com/phpdave11/gofpdf"
)

// WriteReceiptPDF renders an order receipt. The order must come with its
// items, payments and client preloaded.
func WriteReceiptPDF(w io.Writer, order *models.Order) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "SneakCare - Comprobante de Orden")

	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Orden: %s", order.Reference))
	pdf.Ln(6)
	if order.Client != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Cliente: %s (%s)", order.Client.Name, order.Client.Phone))
		pdf.Ln(6)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Fecha: %s", order.CreatedAt.Format("02/01/2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Entrega: %s", order.DeliveryMethod))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Servicios")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, item := range order.ServiceItems {
		label := item.ServiceName
		if item.ShoeBrand != "" || item.ShoeModel != "" {
			label = fmt.Sprintf("%s - %s %s", item.ServiceName, item.ShoeBrand, item.ShoeModel)
		}
		pdf.Cell(0, 7, fmt.Sprintf("%d x %s  $%.2f", item.Quantity, label, item.TotalPrice))
		pdf.Ln(6)
	}

	if len(order.ProductItems) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Productos")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		for _, item := range order.ProductItems {
			pdf.Cell(0, 7, fmt.Sprintf("%d x %s  $%.2f", item.Quantity, item.ProductName, item.TotalPrice))
			pdf.Ln(6)
		}
	}

	if order.PickupFee > 0 {
		pdf.Cell(0, 7, fmt.Sprintf("Recolección a domicilio  $%.2f", order.PickupFee))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Subtotal: $%.2f", order.Subtotal))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("IVA (16%%): $%.2f", order.IVA))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Total: $%.2f", order.Total))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, p := range order.Payments {
		line := fmt.Sprintf("Pago (%s): $%.2f", p.Method, p.Amount)
		if p.Change > 0 {
			line += fmt.Sprintf("  (recibido $%.2f, cambio $%.2f)", p.Received, p.Change)
		}
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}
	balance := order.Total - order.PaidAmount
	if balance > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("Saldo pendiente: $%.2f", balance))
		pdf.Ln(6)
	}

	return pdf.Output(w)
}
