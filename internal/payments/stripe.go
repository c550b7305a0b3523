package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Event types this service reconciles. Anything else is acknowledged
// and dropped.
const (
	EventCheckoutCompleted  = "checkout.session.completed"
	EventAsyncPaymentFailed = "checkout.session.async_payment_failed"
)

// CheckoutItem is one line of a hosted checkout session, priced in
// minor currency units.
type CheckoutItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type CheckoutParams struct {
	Items      []CheckoutItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type CheckoutClient interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error)
}

// Event is a provider notification reduced to what reconciliation
// needs: the event type and the order/user correlation metadata.
type Event struct {
	Type    string
	OrderID string
	UserID  string
}

type WebhookVerifier interface {
	VerifyEvent(payload []byte, sigHeader string) (Event, error)
}

// StripeGateway talks to Stripe through a process-wide client handle
// built once from configuration.
type StripeGateway struct {
	client        *client.API
	webhookSecret string
	currency      string
}

func NewStripeGateway(secretKey, webhookSecret, currency string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeGateway{
		client:        sc,
		webhookSecret: webhookSecret,
		currency:      currency,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}

	for _, it := range p.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(it.UnitAmount),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := g.client.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	return sess.URL, nil
}

// VerifyEvent checks the webhook signature and extracts the session
// metadata. The signature error is returned verbatim so the handler
// can surface it to the provider.
func (g *StripeGateway) VerifyEvent(payload []byte, sigHeader string) (Event, error) {
	ev, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return Event{}, err
	}

	out := Event{Type: string(ev.Type)}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &sess); err == nil {
		out.OrderID = sess.Metadata["orderId"]
		out.UserID = sess.Metadata["userId"]
	}

	return out, nil
}
