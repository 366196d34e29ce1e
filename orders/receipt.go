package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"catashop/db"
	"catashop/format"
	"catashop/models"
	"catashop/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// VendorPhone is the shop's WhatsApp number, set from main at startup.
var VendorPhone = "+56932422471"

func loadOrder(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	return order, err
}

func orderRef(order models.Order) string {
	if order.ReadableID != "" {
		return order.ReadableID
	}
	if len(order.OrderID) > 8 {
		return order.OrderID[:8]
	}
	return order.OrderID
}

// whatsAppURL rebuilds the wa.me link for an existing order.
func whatsAppURL(order models.Order) string {
	message := format.BuildWhatsAppMessage(order.Items, order.Total, order.Customer, order.ReadableID)
	return format.WhatsAppLink(VendorPhone, message)
}

// PrintReceipt renders an order as a PDF receipt with an embedded QR code
// pointing at the order's WhatsApp conversation link.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := loadOrder(ctx, ps.ByName("orderid"))
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Pedido no encontrado")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo cargar el pedido")
		return
	}

	qrCode, _ := qrcode.Encode(whatsAppURL(order), qrcode.Medium, 128)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 15, "Catashop - Pedido #"+orderRef(order), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Fecha: %s\nEstado: %s",
		order.CreatedAt.Format("02 Jan 2006 15:04"),
		order.Status,
	), "", "L", false)
	pdf.Ln(4)

	for _, item := range order.Items {
		line := fmt.Sprintf("%s x%d  %s", item.Name, item.Quantity, format.CLP(item.LineTotal()))
		pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Total: "+format.CLP(order.Total), "T", 1, "L", false, 0, "")

	if c := order.Customer; c != nil {
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf(
			"Envío a: %s (%s)\n%s\n%s / %s\nAgencia: %s",
			c.Name, c.RUT, c.Address, c.Email, c.Phone, c.Agency,
		)), "", "L", false)
	}

	if len(qrCode) > 0 {
		imgOpts := gofpdf.ImageOptions{ImageType: "png"}
		pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrCode))
		pdf.ImageOptions("qr", 150, 30, 40, 40, false, imgOpts, 0, "")
	}

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, tr("Escanee el QR para abrir la conversación de WhatsApp del pedido."), "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo generar el recibo")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pedido-"+orderRef(order)+".pdf")
	w.Write(buf.Bytes())
}

// WhatsAppQR serves a PNG QR code of the order's wa.me link.
func WhatsAppQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !db.Configured {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Tienda no configurada")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := loadOrder(ctx, ps.ByName("orderid"))
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Pedido no encontrado")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo cargar el pedido")
		return
	}

	png, err := qrcode.Encode(whatsAppURL(order), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "No se pudo generar el código QR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
