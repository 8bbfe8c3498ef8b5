package cmd

import (
	"fmt"
	"strings"

	"dinedecide/internal/core/recipe"

	"github.com/spf13/cobra"
)

func newSuggestCmd(root *rootOptions) *cobra.Command {
	var ingredients bool

	cmd := &cobra.Command{
		Use:   "suggest <fragment>",
		Short: "Autocomplete titles and ingredients from the corpus file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := root.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}

			svc := recipe.NewSuggestionService(recipe.NewIndex(recipes))
			input := strings.Join(args, " ")

			var list []string
			if ingredients {
				list = svc.SuggestIngredients(input)
			} else {
				list = svc.Suggest(input)
			}

			for _, s := range list {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ingredients, "ingredients", false, "complete the last term of a comma separated ingredient list")
	return cmd
}
