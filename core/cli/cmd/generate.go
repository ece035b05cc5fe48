package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hyperterse/seeder/core/domain"
	"github.com/hyperterse/seeder/core/generator"
	"github.com/hyperterse/seeder/core/logger"
)

// generateCmd runs the dataset assembler without a store
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dataset in memory and print counts and one sample record per collection",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.New("generate")

	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}
	catalog, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}
	assembler, err := generator.NewAssembler(cfg.GeneratorOptions(catalog))
	if err != nil {
		return err
	}
	ds, err := assembler.Assemble()
	if err != nil {
		return log.Errorf("dataset assembly failed: %w", err)
	}

	if err := writeSamples(cmd.OutOrStdout(), ds); err != nil {
		return log.Errorf("failed to render samples: %w", err)
	}
	log.Successf("Generated %d users, %d products, %d reviews, %d orders",
		len(ds.Users), len(ds.Products), len(ds.Reviews), len(ds.Orders))
	return nil
}

// writeSamples prints each collection's count and its first record as
// relaxed Extended JSON.
func writeSamples(w io.Writer, ds *generator.Dataset) error {
	counts := ds.Counts()
	for _, collection := range domain.AllCollections {
		fmt.Fprintf(w, "%s: %d\n", collection, counts[collection])
		records := ds.Records(collection)
		if len(records) == 0 {
			continue
		}
		sample, err := bson.MarshalExtJSONIndent(records[0], false, false, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", sample)
	}
	return nil
}
