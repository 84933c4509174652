package documents

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

const LabelContentType = "text/plain; charset=utf-8"

// LabelRenderer prints a plain-text shipping label sized for thermal
// printers.
type LabelRenderer struct {
	sender string
	loc    *time.Location
}

// NewLabelRenderer prints sender as the origin line. Dates are shown in loc;
// nil means UTC.
func NewLabelRenderer(sender string, loc *time.Location) LabelRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return LabelRenderer{sender: sender, loc: loc}
}

func (r LabelRenderer) RenderShippingLabel(_ context.Context, s order.Snapshot) ([]byte, string, error) {
	if s.Facts.DeliveryMethod == "" {
		return nil, "", errs.NewPreconditionFailedError("the delivery method is chosen before a label is printed")
	}

	var buf bytes.Buffer
	rule := strings.Repeat("=", 40)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "ORDER %s\n", s.OrderNumber)
	fmt.Fprintln(&buf, rule)

	w := tabwriter.NewWriter(&buf, 0, 0, 1, ' ', 0)
	if r.sender != "" {
		fmt.Fprintf(w, "From:\t%s\n", r.sender)
	}
	fmt.Fprintf(w, "To:\t%s\n", s.Facts.Recipient.Name)
	fmt.Fprintf(w, "Phone:\t%s\n", s.Facts.Recipient.Phone)
	fmt.Fprintf(w, "Address:\t%s\n", s.Facts.Recipient.Address)
	fmt.Fprintf(w, "City:\t%s\n", s.Facts.Recipient.City)
	fmt.Fprintf(w, "Delivery:\t%s\n", s.Facts.DeliveryMethod)
	if s.ShippingDate != nil {
		fmt.Fprintf(w, "Ship on:\t%s\n", s.ShippingDate.In(r.loc).Format(time.DateOnly))
	}
	if s.TrackingNumber != "" {
		fmt.Fprintf(w, "Tracking:\t%s\n", s.TrackingNumber)
	}
	if s.Facts.PaymentMethod == order.PaymentCashOnDelivery {
		fmt.Fprintf(w, "Collect:\t%s\n", s.Facts.TotalAmount)
	}
	if s.DeliveryFeeDue != nil && s.DeliveryFeeDue.IsPositive() {
		fmt.Fprintf(w, "Shipping due:\t%s\n", s.DeliveryFeeDue)
	}
	if err := w.Flush(); err != nil {
		return nil, "", fmt.Errorf("render label: %w", err)
	}
	fmt.Fprintln(&buf, rule)

	return buf.Bytes(), LabelContentType, nil
}
