package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tusharrdev/greencart-backend/internal/cart"
	"github.com/tusharrdev/greencart-backend/internal/catalog"
	"github.com/tusharrdev/greencart-backend/internal/payments"
)

// ErrInvalidData is the soft-failure returned for a missing address or
// an empty item list.
var ErrInvalidData = errors.New("invalid data")

// ItemRef is the inbound order line: a product reference and a count.
type ItemRef struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// EventPublisher emits order lifecycle events. Publish failures are
// logged by the service and never fail the request.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *Order) error
	PublishOrderPaid(ctx context.Context, orderID, userID string) error
}

type Service struct {
	orders    Repository
	products  catalog.Repository
	carts     cart.Repository
	checkout  payments.CheckoutClient
	verifier  payments.WebhookVerifier
	publisher EventPublisher
	logger    *log.Logger
}

func NewService(
	orders Repository,
	products catalog.Repository,
	carts cart.Repository,
	checkout payments.CheckoutClient,
	verifier payments.WebhookVerifier,
	publisher EventPublisher,
	logger *log.Logger,
) *Service {
	return &Service{
		orders:    orders,
		products:  products,
		carts:     carts,
		checkout:  checkout,
		verifier:  verifier,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceCOD persists a cash-on-delivery order. No provider interaction;
// the order is immediately visible in listings.
func (s *Service) PlaceCOD(ctx context.Context, userID string, items []ItemRef, addressID string) error {
	if addressID == "" || len(items) == 0 {
		return ErrInvalidData
	}

	lines, _, base, err := s.resolveItems(ctx, items)
	if err != nil {
		return err
	}

	o := &Order{
		UserID:      userID,
		Items:       lines,
		AddressID:   addressID,
		Amount:      TotalWithSurcharge(base),
		PaymentType: PaymentCOD,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return err
	}

	s.publishPlaced(ctx, o)
	return nil
}

// PlaceStripe persists an online order and opens a hosted checkout
// session for it. The order is created first so its id can travel in
// the session metadata and come back on the webhook.
func (s *Service) PlaceStripe(ctx context.Context, userID string, items []ItemRef, addressID, origin string) (string, error) {
	if addressID == "" || len(items) == 0 {
		return "", ErrInvalidData
	}

	lines, products, base, err := s.resolveItems(ctx, items)
	if err != nil {
		return "", err
	}

	o := &Order{
		UserID:      userID,
		Items:       lines,
		AddressID:   addressID,
		Amount:      TotalWithSurcharge(base),
		PaymentType: PaymentOnline,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return "", err
	}

	params := payments.CheckoutParams{
		SuccessURL: origin + "/loader?next=my-orders",
		CancelURL:  origin + "/cart",
		Metadata: map[string]string{
			"orderId": o.ID,
			"userId":  userID,
		},
	}
	for i, it := range lines {
		params.Items = append(params.Items, payments.CheckoutItem{
			Name:       products[i].Name,
			UnitAmount: UnitAmountMinor(products[i].OfferPrice),
			Quantity:   int64(it.Quantity),
		})
	}

	url, err := s.checkout.CreateCheckoutSession(ctx, params)
	if err != nil {
		return "", err
	}

	s.publishPlaced(ctx, o)
	return url, nil
}

// HandleWebhook verifies and dispatches a provider notification. A
// returned error means the signature did not verify; once it does, the
// event is always acknowledged, and any dispatch failure is only
// logged so the provider does not retry forever.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.verifier.VerifyEvent(payload, sigHeader)
	if err != nil {
		return err
	}

	switch event.Type {
	case payments.EventCheckoutCompleted:
		// Two independent writes, no transaction: a failure in
		// between leaves the order paid with the cart intact.
		if err := s.orders.MarkPaid(ctx, event.OrderID); err != nil {
			s.logger.Printf("webhook mark paid %s: %v", event.OrderID, err)
			return nil
		}
		if err := s.carts.Clear(ctx, event.UserID); err != nil {
			s.logger.Printf("webhook clear cart %s: %v", event.UserID, err)
		}
		if err := s.publisher.PublishOrderPaid(ctx, event.OrderID, event.UserID); err != nil {
			s.logger.Printf("publish OrderPaid %s: %v", event.OrderID, err)
		}
		s.logger.Printf("order %s paid, cart cleared for user %s", event.OrderID, event.UserID)

	case payments.EventAsyncPaymentFailed:
		if err := s.orders.Delete(ctx, event.OrderID); err != nil {
			s.logger.Printf("webhook delete order %s: %v", event.OrderID, err)
			return nil
		}
		s.logger.Printf("order %s deleted after failed payment", event.OrderID)

	default:
		s.logger.Printf("unhandled event type %s", event.Type)
	}

	return nil
}

// ListByUser returns the buyer's COD-or-paid orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAll is the seller view over every buyer, same filter.
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.orders.ListAll(ctx)
}

// resolveItems looks up every referenced product and folds up the
// pre-surcharge total. Product snapshots are returned alongside the
// lines for checkout session building.
func (s *Service) resolveItems(ctx context.Context, items []ItemRef) ([]Item, []*catalog.Product, int64, error) {
	lines := make([]Item, 0, len(items))
	products := make([]*catalog.Product, 0, len(items))

	var base int64
	for _, it := range items {
		p, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("resolve product %s: %w", it.ProductID, err)
		}

		lines = append(lines, Item{ProductID: it.ProductID, Quantity: it.Quantity})
		products = append(products, p)
		base += p.OfferPrice * int64(it.Quantity)
	}

	return lines, products, base, nil
}

func (s *Service) publishPlaced(ctx context.Context, o *Order) {
	if err := s.publisher.PublishOrderPlaced(ctx, o); err != nil {
		s.logger.Printf("publish OrderPlaced %s: %v", o.ID, err)
	}
}
