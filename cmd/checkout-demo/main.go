// checkout-demo creates a demo checkout session and prints the hosted
// checkout URL. Configuration comes from SMARTPAY_* environment variables or
// a .env file in the working directory.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	smartpay "github.com/smartpay-co/smartpay-go"
	"github.com/smartpay-co/smartpay-go/config"
	"github.com/smartpay-co/smartpay-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	logg, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logg.Sync()

	opts := []smartpay.Option{
		smartpay.WithLogger(logg),
	}
	if cfg.PublicKey != "" {
		opts = append(opts, smartpay.WithPublicKey(cfg.PublicKey))
	}
	if cfg.APIPrefix != "" {
		opts = append(opts, smartpay.WithAPIPrefix(cfg.APIPrefix))
	}
	if cfg.CheckoutURL != "" {
		opts = append(opts, smartpay.WithCheckoutURL(cfg.CheckoutURL))
	}
	if cfg.MaxRetries > 0 {
		policy := smartpay.DefaultRetryPolicy()
		policy.MaxRetries = cfg.MaxRetries
		opts = append(opts, smartpay.WithRetryPolicy(policy))
	}

	client, err := smartpay.New(cfg.SecretKey, opts...)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := client.CheckoutSessions.Create(ctx, smartpay.Payload{
		"currency": "JPY",
		"items": []any{
			map[string]any{
				"name":     "Demo Item",
				"amount":   100,
				"quantity": 2,
			},
		},
		"shippingInfo": map[string]any{
			"address": map[string]any{
				"line1":      "line1",
				"locality":   "locality",
				"postalCode": "123",
				"country":    "JP",
			},
			"feeAmount":   100,
			"feeCurrency": "JPY",
		},
		"reference":  "demo_order_1",
		"successUrl": "https://example.com/success",
		"cancelUrl":  "https://example.com/cancel",
	})
	if err != nil {
		logg.Error("checkout session failed", zap.Error(err))
		os.Exit(1)
	}

	logg.Info("checkout session created", zap.String("id", session.ID))
	fmt.Println(session.URL)
}
