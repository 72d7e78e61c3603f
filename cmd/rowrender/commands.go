package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bjaus/rowrender"
	"github.com/bjaus/rowrender/internal/config"
	"github.com/bjaus/rowrender/internal/dataset"
	"github.com/bjaus/rowrender/internal/logging"
	"github.com/bjaus/rowrender/internal/present"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configPath string
		cfg        = &config.Config{}
	)

	rootCmd := &cobra.Command{
		Use:   "rowrender",
		Short: "Render row datasets as HTML, Markdown, JSON, XML, CSV, text or protobuf",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded
			logging.Setup(cmd.ErrOrStderr(), max(verbosity, cfg.Log.Verbosity))
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv, -vvv)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (YAML)")

	rootCmd.AddCommand(newRenderCmd(cfg))
	rootCmd.AddCommand(newPageCmd(cfg))
	rootCmd.AddCommand(newFormatsCmd())

	return rootCmd
}

func newRenderCmd(cfg *config.Config) *cobra.Command {
	var (
		format   string
		tmpl     string
		data     string
		out      string
		pretty   bool
		sanitize bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a dataset file in one format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rowrender.New(format, tmpl, cfg.RenderOptions()...)
			if err != nil {
				return err
			}
			rows, err := dataset.Load(data)
			if err != nil {
				return err
			}
			output, err := r.Render(rows)
			if err != nil {
				return err
			}

			var text string
			switch o := output.(type) {
			case rowrender.Rendered:
				text = string(o)
			case rowrender.Raw:
				b, err := rowrender.Marshal(rowrender.JSON, o.Rows)
				if err != nil {
					return err
				}
				text = string(b)
			}

			if r.Format() == rowrender.HTML && (sanitize || cfg.Output.Sanitize) {
				text = present.Sanitize(text)
			}

			if out != "" {
				if err := writeOutput(out, text); err != nil {
					return err
				}
			} else {
				w := cmd.OutOrStdout()
				if r.Format() == rowrender.Markdown && (pretty || cfg.Output.Pretty) && isTerminal(w) {
					text = present.Pretty(text, cfg.Output.Style)
				}
				if _, err := io.WriteString(w, text); err != nil {
					return err
				}
			}
			log.Info().Str("format", r.Format().String()).Int("rows", len(rows)).Msg("Rendered dataset")
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (see 'rowrender formats')")
	cmd.Flags().StringVarP(&tmpl, "template", "t", "", "Template file for html and markdown")
	cmd.Flags().StringVarP(&data, "data", "d", "", "Dataset file (.json, .yaml, .toml, or - for JSON on stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render markdown for the terminal")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "Strip unsafe markup from html output")

	return cmd
}

func newPageCmd(cfg *config.Config) *cobra.Command {
	var opts rowrender.PageOptions
	var data string

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Build an HTML page embedding the rendered dataset and its JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := dataset.Load(data)
			if err != nil {
				return err
			}
			opts.Options = cfg.RenderOptions()
			_, err = io.WriteString(cmd.OutOrStdout(), rowrender.Page(rows, opts))
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.TemplatePath, "template", "t", "", "HTML template file")
	cmd.Flags().StringVarP(&data, "data", "d", "", "Dataset file (.json, .yaml, .toml, or - for JSON on stdin)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Page title")
	cmd.Flags().StringVar(&opts.Script, "script", "", "Hydration script URL")

	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and the names they accept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{{"FORMAT", "NAMES"}}
			for _, f := range rowrender.Formats() {
				rows = append(rows, []string{f.String(), strings.Join(rowrender.Aliases(f), ", ")})
			}
			return present.WriteColumns(cmd.OutOrStdout(), rows)
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && present.IsTerminal(f)
}

// writeOutput writes text to a new file at path and reports the close error.
func writeOutput(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.WriteString(f, text); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
