package order

import (
	"time"

	"github.com/tusharrdev/greencart-backend/internal/address"
	"github.com/tusharrdev/greencart-backend/internal/catalog"
)

type PaymentType string

const (
	PaymentCOD    PaymentType = "COD"
	PaymentOnline PaymentType = "Online"
)

// Item is one order line. Product is resolved on listing reads only;
// order writes persist just the reference and quantity.
type Item struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *catalog.Product `json:"product,omitempty"`
}

type Order struct {
	ID          string           `json:"orderId"`
	UserID      string           `json:"userId"`
	Items       []Item           `json:"items"`
	AddressID   string           `json:"addressId"`
	Address     *address.Address `json:"address,omitempty"`
	Amount      int64            `json:"amount"`
	PaymentType PaymentType      `json:"paymentType"`
	IsPaid      bool             `json:"isPaid"`
	CreatedAt   time.Time        `json:"createdAt"`
}
