package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fleetrent/rentd/app"
	"github.com/fleetrent/rentd/config"
	"github.com/fleetrent/rentd/core/rental"
)

var (
	checkoutBooking  string
	checkoutCustomer string
	checkoutReg      string
	checkoutType     string
	checkoutOdometer float64
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Check out a vehicle from the configured fleet",
	RunE:  runCheckout,
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutBooking, "booking", "", "booking number (generated when empty)")
	checkoutCmd.Flags().StringVar(&checkoutCustomer, "customer", "", "customer id")
	checkoutCmd.Flags().StringVar(&checkoutReg, "registration", "", "vehicle registration number")
	checkoutCmd.Flags().StringVar(&checkoutType, "type", "", "vehicle type override")
	checkoutCmd.Flags().Float64Var(&checkoutOdometer, "odometer", 0, "checkout odometer reading")
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	booking := checkoutBooking
	if booking == "" {
		booking = uuid.NewString()
	}
	res, err := svc.Rentals.Checkout(context.Background(), rental.CheckoutRequest{
		BookingNumber:       booking,
		CustomerID:          checkoutCustomer,
		RegistrationNumber:  checkoutReg,
		VehicleTypeOverride: checkoutType,
		CheckoutTime:        time.Now(),
		CheckoutOdometer:    decimal.NewFromFloat(checkoutOdometer),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "checked out %s: vehicle %s type %s at %s\n",
		res.BookingNumber, res.RegistrationNumber, res.VehicleTypeID, res.CheckoutTime.Format(time.RFC3339))
	return nil
}
