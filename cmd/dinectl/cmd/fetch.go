package cmd

import (
	"fmt"

	"dinedecide/internal/core/cache"
	"dinedecide/internal/core/source"

	"github.com/spf13/cobra"
)

func newFetchCmd(root *rootOptions) *cobra.Command {
	var params source.SearchParams

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download recipes from Spoonacular into the corpus file",
		Long:  "Runs complexSearch with the given parameters, fetches full information for each result and writes the corpus file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, root, params)
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Query, "query", "", "search query (default: SPOONACULAR_QUERY)")
	f.StringVar(&params.Cuisine, "cuisine", "", "cuisine filter")
	f.StringVar(&params.Diet, "diet", "", "diet filter")
	f.StringVar(&params.Intolerances, "intolerances", "", "comma separated intolerances")
	f.IntVar(&params.Number, "number", 0, "number of results (default: SPOONACULAR_NUMBER)")
	f.IntVar(&params.Offset, "offset", 0, "result offset")
	return cmd
}

func runFetch(cmd *cobra.Command, root *rootOptions, flags source.SearchParams) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Spoonacular.APIKey == "" {
		return fmt.Errorf("SPOONACULAR_API_KEY is not set")
	}

	params := source.SearchParams{
		Query:        pick(flags.Query, cfg.Spoonacular.Query),
		Cuisine:      pick(flags.Cuisine, cfg.Spoonacular.Cuisine),
		Diet:         pick(flags.Diet, cfg.Spoonacular.Diet),
		Intolerances: pick(flags.Intolerances, cfg.Spoonacular.Intolerances),
		Number:       cfg.Spoonacular.Number,
		Offset:       cfg.Spoonacular.Offset,
	}
	if flags.Number > 0 {
		params.Number = flags.Number
	}
	if flags.Offset > 0 {
		params.Offset = flags.Offset
	}

	cm := cache.NewManager(cfg.Cache)
	defer cm.Close()

	src := source.NewSpoonacularSource(cfg.Spoonacular, cm).WithParams(params)
	recipes, err := src.Load(cmd.Context())
	if err != nil {
		return err
	}

	if err := source.WriteFile(cfg.Corpus.Path, recipes); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %d recipes to %s\n", len(recipes), cfg.Corpus.Path)
	return nil
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
