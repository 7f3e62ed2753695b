package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeClient wraps payment-intent creation and confirmation for challenge
// reward escrow. Amounts are in whole currency units; Stripe wants cents.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) (*StripeClient, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}, nil
}

// PaymentIntent is the subset of the Stripe object the rest of the app needs.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

func (c *StripeClient) CreateRewardIntent(amount float64, currency, senderID, recipientID, challengeID string) (*PaymentIntent, error) {
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount*100 + 0.5)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("type", "challenge_reward")
	params.AddMetadata("sender_id", senderID)
	params.AddMetadata("recipient_id", recipientID)
	if challengeID != "" {
		params.AddMetadata("challenge_id", challengeID)
	}

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
	}, nil
}

func (c *StripeClient) ConfirmIntent(paymentIntentID string) (*PaymentIntent, error) {
	intent, err := c.api.PaymentIntents.Confirm(paymentIntentID, &stripe.PaymentIntentConfirmParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to confirm payment intent: %w", err)
	}

	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
	}, nil
}
