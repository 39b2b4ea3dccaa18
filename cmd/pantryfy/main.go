// Command pantryfy runs the extraction pipeline and the ingredient tools
// from the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pantryfy/internal/config"
	"pantryfy/internal/extract"
	"pantryfy/internal/grocery"
	"pantryfy/internal/ingredient"
	"pantryfy/internal/logging"
	"pantryfy/internal/platform/provider"
	"pantryfy/internal/platform/spoonacular"
	"pantryfy/internal/platform/web"
	"pantryfy/internal/recipe"
)

// errExtractionFailed marks a failed Outcome. The Outcome itself has
// already been printed.
var errExtractionFailed = errors.New("extraction failed")

var (
	configPath string
	verbose    bool
	timeout    time.Duration
	grouped    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pantryfy",
		Short:         "Turn recipe links into structured recipes and shopping lists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "Path to the JSON config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	extractCmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Extract a recipe from a video or recipe page URL",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().DurationVarP(&timeout, "timeout", "t", 90*time.Second, "Give up after this long")

	parseCmd := &cobra.Command{
		Use:   "parse <line>...",
		Short: "Parse free-text ingredient lines",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}

	groceryCmd := &cobra.Command{
		Use:   "grocery <recipes.json>",
		Short: "Merge the ingredients of a JSON array of recipes into a shopping list",
		Args:  cobra.ExactArgs(1),
		RunE:  runGrocery,
	}
	groceryCmd.Flags().BoolVar(&grouped, "json", false, "Print the list grouped by category as JSON")

	root.AddCommand(extractCmd, parseCmd, groceryCmd)
	return root
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errExtractionFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, "console")
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	model, release, err := provider.NewModel(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	client := web.NewClient(web.WithTimeout(cfg.Timeout()))
	var api extract.RecipeAPI
	if cfg.SpoonacularAPIKey != "" {
		api = spoonacular.NewClient(cfg.SpoonacularAPIKey, client)
	}

	url := args[0]
	logger.Debug("extracting", zap.String("url", url), zap.String("llm_provider", cfg.Provider()))
	out := extract.New(client, model, api, logger).ExtractRecipeFromURL(ctx, url)
	if err := printJSON(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if !out.OK() {
		return errExtractionFailed
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	lines := make([]recipe.IngredientLine, 0, len(args))
	for _, arg := range args {
		p := ingredient.ParseLine(arg)
		if p.Raw == "" {
			continue
		}
		lines = append(lines, recipe.FromParsed(p))
	}
	return printJSON(cmd.OutOrStdout(), lines)
}

func runGrocery(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	var recipes []recipe.SavedRecipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", args[0], err)
	}

	items := grocery.Aggregate(recipes)
	if grouped {
		return printJSON(cmd.OutOrStdout(), grocery.GroupByCategory(items))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), grocery.ClipboardText(items))
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
