package billing

import (
	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-GST/internal/application/dto"
	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
	"github.com/jhoicas/Facturacion-GST/internal/domain/gst"
)

const dateLayout = "2006-01-02"

func chargesFromEntity(d *entity.SalesDocument) gst.DocumentCharges {
	return gst.DocumentCharges{
		Freight:           gst.Charge{Amount: d.FreightAmount, Type: d.FreightType},
		PackingForwarding: gst.Charge{Amount: d.PFAmount, Type: d.PFType},
		CouponValue:       d.CouponValue,
		DiscountOnAll:     gst.DiscountOnAll{Type: d.DiscountType, Value: d.DiscountValue},
		RoundOff:          gst.RoundOff{Type: gst.RoundOffType(d.RoundOffType), Amount: d.RoundOffAmount},
	}
}

func applyCharges(d *entity.SalesDocument, c gst.DocumentCharges) {
	d.FreightAmount = c.Freight.Amount
	d.FreightType = c.Freight.Type
	d.PFAmount = c.PackingForwarding.Amount
	d.PFType = c.PackingForwarding.Type
	d.CouponValue = c.CouponValue
	d.DiscountType = c.DiscountOnAll.Type
	d.DiscountValue = c.DiscountOnAll.Value
	roundOffType := c.RoundOff.Type
	if roundOffType == "" {
		roundOffType = gst.RoundOffNone
	}
	d.RoundOffType = string(roundOffType)
	d.RoundOffAmount = c.RoundOff.Amount.Abs()
}

func applyTotals(d *entity.SalesDocument, t gst.TotalsBreakdown) {
	d.Subtotal = t.Subtotal
	d.ItemDiscountTotal = t.ItemDiscountTotal
	d.TotalTax = t.TotalTax
	d.CGSTAmount = t.CGST
	d.SGSTAmount = t.SGST
	d.IGSTAmount = t.IGST
	d.FreightCharges = t.FreightCharges
	d.PFCharges = t.PFCharges
	d.DiscountOnAllAmount = t.DiscountOnAllAmount
	d.RoundOff = t.RoundOff
	d.TotalAmount = t.GrandTotal
}

func itemToEntity(documentID string, pos int, it gst.LineItem) *entity.SalesDocumentItem {
	return &entity.SalesDocumentItem{
		ID:              uuid.New().String(),
		DocumentID:      documentID,
		Position:        pos,
		ProductID:       it.ProductID,
		ItemCode:        it.ItemCode,
		Description:     it.Description,
		HSNCode:         it.HSNCode,
		Quantity:        it.Quantity,
		UnitPrice:       it.UnitPrice,
		DiscountPercent: it.DiscountPercent,
		GSTRate:         it.GSTRate,
		CGSTRate:        it.CGSTRate,
		SGSTRate:        it.SGSTRate,
		IGSTRate:        it.IGSTRate,
		DiscountAmount:  it.DiscountAmount,
		TaxableAmount:   it.TaxableAmount,
		TaxAmount:       it.TaxAmount,
		TotalAmount:     it.TotalAmount,
	}
}

// itemFromEntity reconstruye la línea con los importes guardados (no se recalculan).
func itemFromEntity(e *entity.SalesDocumentItem) gst.LineItem {
	return gst.LineItem{
		ProductID:       e.ProductID,
		ItemCode:        e.ItemCode,
		Description:     e.Description,
		HSNCode:         e.HSNCode,
		Quantity:        e.Quantity,
		UnitPrice:       e.UnitPrice,
		DiscountPercent: e.DiscountPercent,
		GSTRate:         e.GSTRate,
		CGSTRate:        e.CGSTRate,
		SGSTRate:        e.SGSTRate,
		IGSTRate:        e.IGSTRate,
		LineTotal:       e.TaxableAmount.Add(e.DiscountAmount),
		DiscountAmount:  e.DiscountAmount,
		TaxableAmount:   e.TaxableAmount,
		TaxAmount:       e.TaxAmount,
		TotalAmount:     e.TotalAmount,
	}
}

func toDocumentResponse(d *entity.SalesDocument, items []*entity.SalesDocumentItem) *dto.DocumentResponse {
	lines := make([]gst.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, itemFromEntity(it))
	}
	out := &dto.DocumentResponse{
		ID:                  d.ID,
		CompanyID:           d.CompanyID,
		Kind:                d.Kind,
		Number:              d.Number,
		Date:                d.Date.Format(dateLayout),
		CustomerID:          d.CustomerID,
		CustomerName:        d.CustomerName,
		SalesPersonID:       d.SalesPersonID,
		PlaceOfSupply:       d.PlaceOfSupply,
		ReferenceID:         d.ReferenceID,
		Status:              d.Status,
		Notes:               d.Notes,
		IRN:                 d.IRN,
		Items:               lines,
		Charges:             chargesFromEntity(d),
		Subtotal:            d.Subtotal,
		ItemDiscountTotal:   d.ItemDiscountTotal,
		TotalTax:            d.TotalTax,
		CGSTAmount:          d.CGSTAmount,
		SGSTAmount:          d.SGSTAmount,
		IGSTAmount:          d.IGSTAmount,
		FreightCharges:      d.FreightCharges,
		PFCharges:           d.PFCharges,
		CouponValue:         d.CouponValue,
		DiscountOnAllAmount: d.DiscountOnAllAmount,
		RoundOff:            d.RoundOff,
		TotalAmount:         d.TotalAmount,
		AmountInWords:       gst.AmountInWords(d.TotalAmount),
		CreatedAt:           d.CreatedAt,
	}
	if d.DueDate != nil {
		out.DueDate = d.DueDate.Format(dateLayout)
	}
	return out
}

func toDocumentSummary(d *entity.SalesDocument) dto.DocumentSummary {
	return dto.DocumentSummary{
		ID:           d.ID,
		Kind:         d.Kind,
		Number:       d.Number,
		Date:         d.Date.Format(dateLayout),
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		Status:       d.Status,
		TotalTax:     d.TotalTax,
		TotalAmount:  d.TotalAmount,
	}
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		GSTIN:     c.GSTIN,
		StateCode: c.StateCode,
		Address:   c.Address,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

func toSalesPersonResponse(sp *entity.SalesPerson) dto.SalesPersonResponse {
	return dto.SalesPersonResponse{
		ID:     sp.ID,
		Name:   sp.Name,
		Email:  sp.Email,
		Phone:  sp.Phone,
		Active: sp.Active,
	}
}

func productRef(p *entity.Product) gst.ProductRef {
	ref := gst.ProductRef{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		HSNCode:      p.HSNCode,
		SellingPrice: p.SellingPrice,
	}
	if p.GSTRate.Valid {
		rate := p.GSTRate.Decimal
		ref.GSTRate = &rate
	}
	return ref
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		HSNCode:      p.HSNCode,
		SellingPrice: p.SellingPrice,
		Unit:         p.Unit,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.GSTRate.Valid {
		rate := p.GSTRate.Decimal
		out.GSTRate = &rate
	}
	return out
}
