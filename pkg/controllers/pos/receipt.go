package pos

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/store"
	"pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": func(currency string, v float64) string { return fmt.Sprintf("%s%.2f", currency, v) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt #{{.OrderNumber}}</title>
<style>
body { font-family: "Courier New", monospace; max-width: 320px; margin: 24px auto; color: #111; }
h1 { font-size: 18px; text-align: center; margin: 0; }
.center { text-align: center; }
.muted { color: #555; font-size: 12px; }
table { width: 100%; border-collapse: collapse; font-size: 13px; }
td.amount { text-align: right; }
hr { border: none; border-top: 1px dashed #999; }
@media print { body { margin: 0; } .no-print { display: none; } }
</style>
</head>
<body>
<h1>{{.Business.Name}}</h1>
<p class="center muted">{{.Business.Address}}<br>{{.Business.Phone}}<br>{{.Business.Email}}</p>
<hr>
<p class="muted">Order #{{.OrderNumber}}<br>{{.Timestamp.Format "02 Jan 2006 15:04"}}<br>
Table: {{.Table}}<br>Customer: {{.Customer}}<br>Server: {{.Server}}</p>
<hr>
<table>
{{range .Lines}}<tr><td>{{.Quantity}} x {{.Name}}{{if .Notes}}<br><span class="muted">{{.Notes}}</span>{{end}}</td><td class="amount">{{money $.Currency .Amount}}</td></tr>
{{end}}</table>
<hr>
<table>
<tr><td>Subtotal</td><td class="amount">{{money .Currency .Subtotal}}</td></tr>
<tr><td>Tax ({{.TaxRate}}%)</td><td class="amount">{{money .Currency .TaxAmount}}</td></tr>
<tr><td><strong>Total</strong></td><td class="amount"><strong>{{money .Currency .Total}}</strong></td></tr>
</table>
<hr>
<p class="center muted">{{.Footer}}</p>
<p class="center no-print"><button onclick="window.print()">Print</button></p>
</body>
</html>
`))

// RenderReceipt renders a printable HTML receipt
func RenderReceipt(r store.Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GetReceipt returns the receipt as JSON, or as printable HTML with ?format=html
func GetReceipt(c *gin.Context) {
	app := middleware.GetApp(c)
	receipt, err := app.State.Receipt(c.Param("id"), middleware.CurrentStaff(c))
	if err != nil {
		c.Error(err)
		return
	}

	if c.Query("format") != "html" {
		c.JSON(http.StatusOK, receipt)
		return
	}
	page, err := RenderReceipt(receipt)
	if err != nil {
		log.Printf("Error rendering receipt %s: %v", receipt.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	utils.HTMLResponse(c, page)
}
