package model

type OrderType string

const (
	OrderDineIn   OrderType = "dine-in"
	OrderTakeaway OrderType = "takeaway"
	OrderDelivery OrderType = "delivery"
)

type PaymentMethod string

const (
	PayCash PaymentMethod = "cash"
	PayCard PaymentMethod = "card"
	PayUPI  PaymentMethod = "upi"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

// TimeLayout is the layout of Payment.Time.
const TimeLayout = "15:04"

type Payment struct {
	ID            int64         `json:"id"`
	OrderID       string        `json:"orderId" validate:"required"`
	OrderType     OrderType     `json:"orderType" validate:"oneof=dine-in takeaway delivery"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"oneof=cash card upi"`
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"oneof=paid unpaid"`
	Date          Date          `json:"date"`
	Time          string        `json:"time"`
}

func (p Payment) Toggled() Payment {
	if p.PaymentStatus == PaymentPaid {
		p.PaymentStatus = PaymentUnpaid
	} else {
		p.PaymentStatus = PaymentPaid
	}
	return p
}
