package cmd

import (
	"context"
	"fmt"
	"io"

	"dinedecide/internal/core/source"
	"dinedecide/internal/infrastructure/config"
	"dinedecide/internal/pkg/common"

	"github.com/spf13/cobra"
)

// rootOptions 所有子命令共用的旗標
type rootOptions struct {
	corpusPath string
	logLevel   string
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd 每次呼叫都建立新的命令樹，旗標狀態不會跨次執行殘留
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "dinectl",
		Short:        "dinedecide command line tools",
		Long:         "Fetch recipes from Spoonacular and query a local recipe file.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel == "" {
				return nil
			}
			return common.InitLogger(opts.logLevel, "")
		},
	}

	root.PersistentFlags().StringVar(&opts.corpusPath, "corpus", "", "recipe file (default: CORPUS_PATH or output.json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "enable logging at this level (debug, info, warn, error)")

	root.AddCommand(newFetchCmd(opts))
	root.AddCommand(newFilterCmd(opts))
	root.AddCommand(newSuggestCmd(opts))
	return root
}

// loadConfig 讀取與伺服器相同的設定，讓 CLI 共用 .env
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if o.corpusPath != "" {
		cfg.Corpus.Path = o.corpusPath
	}
	return cfg, nil
}

func (o *rootOptions) loadCorpus(ctx context.Context) ([]common.Recipe, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	recipes, err := source.NewFileSource(cfg.Corpus.Path).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Corpus.Path, err)
	}
	return recipes, nil
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := common.ToJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
