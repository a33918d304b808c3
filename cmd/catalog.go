package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/algebrix/algebrix/internal/equation"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the equation catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog equations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		fmt.Printf("Catalog %s\n", catalog.Version())
		for _, kind := range equation.Kinds {
			fmt.Println()
			fmt.Printf("%s (%d)\n", kind, catalog.Len(kind))
			fmt.Println(strings.Repeat("─", 40))
			for i, r := range catalog.Equations(kind) {
				fmt.Printf("%3d  %s\n", i, r.Expression)
			}
		}
		return nil
	},
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report hint texts that fall back to built-in defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		var missing, total, incomplete int
		for _, cov := range catalog.HintCoverage() {
			total += cov.Total
			missing += len(cov.Missing)
			if cov.Complete() {
				continue
			}
			incomplete++
			fmt.Printf("%s #%d  %-24s  %d/%d hints use defaults\n",
				cov.Kind, cov.Index, cov.Expression, len(cov.Missing), cov.Total)
			if verbose {
				for _, m := range cov.Missing {
					fmt.Printf("    %s / %s\n", m.Step, m.Level)
				}
			}
		}

		if incomplete == 0 {
			fmt.Printf("Catalog %s: all %d hint texts supplied.\n", catalog.Version(), total)
			return nil
		}
		fmt.Printf("\nCatalog %s: %d of %d hint texts fall back to defaults across %d equations.\n",
			catalog.Version(), missing, total, incomplete)
		return nil
	},
}

func init() {
	catalogCheckCmd.Flags().BoolP("verbose", "v", false, "List every missing (step, level) pair")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
}
