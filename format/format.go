// Package format holds the pure formatting helpers for the storefront:
// Chilean peso amounts, WhatsApp phone normalization and the outbound
// order message.
package format

import (
	"net/url"
	"strconv"
	"strings"

	"catashop/models"
)

// CLP formats a whole-peso amount the way es-CL renders currency: no
// decimals, dot thousands separators. 4000 becomes "$4.000".
func CLP(value int64) string {
	neg := value < 0
	if neg {
		value = -value
	}

	digits := strconv.FormatInt(value, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}

	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// NormalizePhone strips every non-digit character, so "+56 9 7328 3737"
// becomes "56973283737". No plausibility check beyond that.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BuildWhatsAppMessage renders the outbound order message: an optional order
// reference, a greeting, one bullet per line item, the total, and a shipping
// block when customer details were collected.
func BuildWhatsAppMessage(items []models.CartItem, total int64, customer *models.CustomerDetails, orderID string) string {
	var lines []string

	if orderID != "" {
		lines = append(lines, "Pedido #"+orderID)
	}
	lines = append(lines, "Hola! Quiero coordinar la compra de estos productos:")

	for _, item := range items {
		lines = append(lines, "• "+item.Name+" x"+strconv.Itoa(item.Quantity)+" ("+CLP(item.LineTotal())+")")
	}
	lines = append(lines, "Total: "+CLP(total))

	if customer != nil {
		lines = append(lines,
			"",
			"Datos de Envío:",
			"Nombre: "+customer.Name,
			"RUT: "+customer.RUT,
			"Dirección: "+customer.Address,
			"Email: "+customer.Email,
			"Teléfono: "+customer.Phone,
			"Agencia: "+customer.Agency,
		)
	}

	return strings.Join(lines, "\n")
}

// WhatsAppLink builds the wa.me deep link for a normalized vendor phone and
// an already-built message.
func WhatsAppLink(phone, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + NormalizePhone(phone) + "?text=" + encoded
}
