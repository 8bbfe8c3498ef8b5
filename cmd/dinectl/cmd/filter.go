package cmd

import (
	"fmt"
	"text/tabwriter"

	"dinedecide/internal/core/recipe"

	"github.com/spf13/cobra"
)

type filterOptions struct {
	criteria recipe.Criteria
	json     bool
}

func newFilterCmd(root *rootOptions) *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter the corpus file by meal type, cuisine, diet and ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar((*string)(&opts.criteria.MealType), "meal", "", "meal type: Breakfast, Lunch, Dinner")
	f.StringVar((*string)(&opts.criteria.Cuisine), "cuisine", "", "cuisine label")
	f.StringVar((*string)(&opts.criteria.Diet), "diet", "", "diet label")
	f.StringVar(&opts.criteria.IncludeIngredients, "include", "", "comma separated ingredients that must appear")
	f.StringVar(&opts.criteria.ExcludeIngredients, "exclude", "", "comma separated ingredients that must not appear")
	f.StringVarP(&opts.criteria.Query, "query", "q", "", "text search on title and ingredients")
	f.BoolVar(&opts.criteria.Surprise, "surprise", false, "ignore facets and shuffle the whole corpus")
	f.BoolVar(&opts.json, "json", false, "print results as JSON")
	return cmd
}

func runFilter(cmd *cobra.Command, root *rootOptions, opts *filterOptions) error {
	recipes, err := root.loadCorpus(cmd.Context())
	if err != nil {
		return err
	}

	c, err := opts.criteria.Normalize()
	if err != nil {
		return err
	}

	// Query 非空時 Filter 走搜尋模式
	res := recipe.NewEngine(recipe.NewIndex(recipes), nil).Filter(c, nil)

	out := cmd.OutOrStdout()
	if opts.json {
		return printJSON(out, res)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range res.Recipes {
		fmt.Fprintf(w, "%s\t%s\t%d min\n", r.ID, r.Title, r.ReadyInMinutes)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d matched, %d shown\n", res.Mode, res.Matched, len(res.Recipes))
	return nil
}
