package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fleetrent/rentd/app"
	"github.com/fleetrent/rentd/config"
	"github.com/fleetrent/rentd/core/model"
	"github.com/fleetrent/rentd/core/rental"
)

var (
	returnBooking  string
	returnOdometer float64
	returnDayRate  float64
	returnKmPrice  float64
)

var returnCmd = &cobra.Command{
	Use:   "return",
	Short: "Return a rented vehicle and compute the price",
	RunE:  runReturn,
}

func init() {
	returnCmd.Flags().StringVar(&returnBooking, "booking", "", "booking number")
	returnCmd.Flags().Float64Var(&returnOdometer, "odometer", 0, "return odometer reading")
	returnCmd.Flags().Float64Var(&returnDayRate, "day-rate", 0, "base day rate")
	returnCmd.Flags().Float64Var(&returnKmPrice, "km-price", 0, "base km price")
	rootCmd.AddCommand(returnCmd)
}

func runReturn(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	res, err := svc.Rentals.Return(context.Background(), rental.ReturnRequest{
		BookingNumber:  returnBooking,
		ReturnTime:     time.Now(),
		ReturnOdometer: decimal.NewFromFloat(returnOdometer),
		Params: model.PricingParams{
			BaseDayRate: decimal.NewFromFloat(returnDayRate),
			BaseKmPrice: decimal.NewFromFloat(returnKmPrice),
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "returned %s: %d days, %s km, price %s\n",
		res.BookingNumber, res.Days, res.KilometersDriven, res.RentalPrice)
	return nil
}
