// Package pdf renders the customer-facing documents: the order invoice and the
// per-customer price list with tier pricing applied.
package pdf

import (
	"fmt"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/internal/pricing"
)

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func formatAMD(amount int) string {
	s := strconv.Itoa(amount)
	if len(s) <= 3 {
		return s + " AMD"
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	return string(out) + " AMD"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02.01.2006")
}

func header(m core.Maroto, company, title string) {
	m.AddRow(14,
		text.NewCol(6, company, props.Text{Size: 18, Style: fontstyle.Bold}),
		text.NewCol(6, title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right, Top: 2}),
	)
	m.AddRow(4, line.NewCol(12))
}

// Invoice renders the invoice document for one order.
func Invoice(order models.Order, customer models.Customer, company string) ([]byte, error) {
	m := newDocument()
	header(m, company, "INVOICE "+order.OrderNumber)

	created := order.CreatedAt
	m.AddRow(24,
		col.New(6).Add(
			text.New("Order number: "+order.OrderNumber, props.Text{Top: 0, Size: 9}),
			text.New("Order date: "+created.Format("02.01.2006"), props.Text{Top: 5, Size: 9}),
			text.New("Payment status: "+string(order.PaymentStatus), props.Text{Top: 10, Size: 9}),
			text.New("Delivery status: "+string(order.DeliveryStatus), props.Text{Top: 15, Size: 9}),
			text.New("Delivery date: "+formatDate(order.DeliveryDate), props.Text{Top: 20, Size: 9}),
		),
		col.New(6).Add(
			text.New(customer.CompanyName, props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New("Tax ID: "+customer.TaxID, props.Text{Top: 5, Size: 9}),
			text.New(customer.DeliveryAddress, props.Text{Top: 10, Size: 9}),
			text.New(customer.Email, props.Text{Top: 15, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(6, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	for _, item := range order.Items {
		m.AddRow(7,
			text.NewCol(6, item.Name, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatAMD(item.Price), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatAMD(item.Price*item.Quantity), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(2, line.NewCol(12))
	m.AddRow(10,
		col.New(8),
		text.NewCol(4, "Total: "+formatAMD(order.Total), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// PriceList renders the product catalog with the prices the given customer
// actually sees: base price for resellers, marked-up prices for corporate and
// government accounts. Products not visible to the customer's type are skipped.
func PriceList(customer models.Customer, products []models.Product, settings models.Settings, company string) ([]byte, error) {
	m := newDocument()
	header(m, company, "PRICE LIST")

	m.AddRow(10,
		col.New(12).Add(
			text.New("Prepared for: "+customer.CompanyName, props.Text{Size: 9}),
			text.New("Date: "+time.Now().Format("02.01.2006"), props.Text{Top: 5, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(5, "Product", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "SKU", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Availability", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))

	isAdmin := customer.Role == models.RoleAdmin
	for _, p := range products {
		if !isAdmin && !p.VisibleTo(customer.CustomerType) {
			continue
		}
		price := pricing.CalculatePrice(p.Price, customer.CustomerType,
			settings.CorporateMarkupPercentage, settings.GovernmentMarkupPercentage)
		m.AddRow(7,
			text.NewCol(5, p.Name, props.Text{Size: 8}),
			text.NewCol(2, p.SKU, props.Text{Size: 8}),
			text.NewCol(2, string(p.Stock), props.Text{Size: 8}),
			text.NewCol(3, formatAMD(price), props.Text{Size: 8, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
