package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetrent/rentd/app"
	"github.com/fleetrent/rentd/config"
	"github.com/fleetrent/rentd/jobs/revenue"
	"github.com/fleetrent/rentd/pkg/export"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List configured vehicles and types",
	RunE:  runFleetLs,
}

var fleetReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the revenue report",
	RunE:  runFleetReport,
}

var exportFormat string

var fleetExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export rental records to stdout",
	RunE:  runFleetExport,
}

func init() {
	fleetExportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json or csv)")
	fleetCmd.AddCommand(fleetLsCmd)
	fleetCmd.AddCommand(fleetReportCmd)
	fleetCmd.AddCommand(fleetExportCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	ctx := context.Background()
	types, err := svc.Types.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, t := range types {
		fmt.Fprintf(cmd.OutOrStdout(), "type %s (%s): %s\n", t.ID, t.DisplayName, t.PricingFormula)
	}
	vehicles, err := svc.Catalog.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, v := range vehicles {
		fmt.Fprintf(cmd.OutOrStdout(), "vehicle %s type %s odometer %s\n",
			v.RegistrationNumber, v.VehicleTypeID, v.CurrentOdometer)
	}
	return nil
}

func runFleetReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	rep, err := revenue.Build(context.Background(), svc.Store)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "completed %d active %d revenue %.2f mean price %.2f mean days %.1f\n",
		rep.Completed, rep.Active, rep.TotalRevenue, rep.MeanPrice, rep.MeanDays)
	return nil
}

func runFleetExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	rentals, err := svc.Store.ListAll(context.Background())
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), exportFormat, rentals)
}
