package check

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/transferia/tweetstream/cmd/twcli/config"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"github.com/transferia/tweetstream/pkg/providers/twitter"
	"github.com/transferia/tweetstream/pkg/providers/twitter/stream"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// Report is what the agent would do with the config, without connecting anywhere.
type Report struct {
	Name   string                `json:"name"`
	Source abstract.ProviderType `json:"source"`
	Mode   string                `json:"mode,omitempty"`
	Query  *stream.FilterQuery   `json:"query,omitempty"`
	Sink   abstract.ProviderType `json:"sink"`
}

func CheckCommand() *cobra.Command {
	var configPath string
	checkCommand := &cobra.Command{
		Use:   "check",
		Short: "Validate the pipeline config and print the resolved stream request",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromYaml(configPath)
			if err != nil {
				return xerrors.Errorf("unable to load config: %w", err)
			}
			return Check(cfg, cmd.OutOrStdout())
		},
	}
	checkCommand.Flags().StringVar(&configPath, "config", "./agent.yaml", "path to yaml file with pipeline configuration")
	return checkCommand
}

func Check(cfg *config.Config, out io.Writer) error {
	report := Report{
		Name:   cfg.Name,
		Source: cfg.Source.Type,
		Mode:   "",
		Query:  nil,
		Sink:   cfg.Sink.Type,
	}

	src, err := model.NewSource(cfg.Source.Type, cfg.Source.Options)
	if err != nil {
		return xerrors.Errorf("invalid source: %w", err)
	}
	if twitterSrc, ok := src.(*twitter.TwitterSource); ok {
		filter, err := twitterSrc.FilterSpec()
		if err != nil {
			return xerrors.Errorf("invalid filter: %w", err)
		}
		report.Mode = string(filter.Mode())
		if filter.Mode() == twitter.SubscriptionModeFilter {
			report.Query = filter.Query()
		}
	}
	if _, err := model.NewDestination(cfg.Sink.Type, cfg.Sink.Params); err != nil {
		return xerrors.Errorf("invalid sink: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return xerrors.Errorf("unable to print report: %w", err)
	}
	return nil
}
