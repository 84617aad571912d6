package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rp-magrathea/vogsphere/internal/model"
	"github.com/rp-magrathea/vogsphere/internal/pipeline"
	"github.com/rp-magrathea/vogsphere/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrNotGenerated is returned when the answers had problems and no post was written
var ErrNotGenerated = errors.New("claim post not generated")

// generateOptions holds the generate command's flags
type generateOptions struct {
	form        string
	formID      string
	answers     string
	set         []string
	out         string
	format      string
	postTag     string
	trueLiteral string
	noCache     bool
	watch       bool
	timeout     time.Duration
}

var genOpts generateOptions

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a claim post from form answers",
	Long: `Generate reads the answers of a claim form and writes the claim post.

Answers come from an HTML form (a saved page or an http(s) URL), a YAML
answers file, --set name=value pairs, or any combination. When a form is
given it decides which fields exist and which are required; answers only
fill in values.

If any answer is missing or contradictory, every problem is printed and
nothing is generated.

Example:
  vogsphere generate --answers arthur.yaml
  vogsphere generate --form claim.html --answers arthur.yaml --out post.txt
  vogsphere generate --form https://forum.example.com/claim --form-id claim --set is-requested=true
  vogsphere generate --answers arthur.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Input flags
	generateCmd.Flags().StringVar(&genOpts.form, "form", "", "HTML form file or http(s) URL")
	generateCmd.Flags().StringVar(&genOpts.formID, "form-id", "", "id or name of the form inside the page (default: first form)")
	generateCmd.Flags().StringVar(&genOpts.answers, "answers", "", "YAML answers file")
	generateCmd.Flags().StringArrayVar(&genOpts.set, "set", nil, "field value as name=value (repeatable)")

	// Output flags
	generateCmd.Flags().StringVarP(&genOpts.out, "out", "o", "", "write the post to this file instead of stdout")
	generateCmd.Flags().StringVar(&genOpts.format, "format", "", "output format: text or json (default from config)")
	generateCmd.Flags().StringVar(&genOpts.postTag, "post-tag", "", "outer post tag (default from config)")
	generateCmd.Flags().StringVar(&genOpts.trueLiteral, "true-literal", "", "raw value that makes a boolean field true (default from config)")

	// Fetch flags
	generateCmd.Flags().BoolVar(&genOpts.noCache, "no-cache", false, "disable cache (force fresh fetch)")
	generateCmd.Flags().DurationVar(&genOpts.timeout, "timeout", 0, "form fetch timeout (default from config)")

	generateCmd.Flags().BoolVarP(&genOpts.watch, "watch", "w", false, "regenerate whenever the form or answers file changes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	genOpts.apply(cfg)

	// One pipeline per invocation, so watch re-runs share the fetch limiter and cache
	p := pipeline.NewPipeline(cfg, logger)

	if !genOpts.watch {
		return generate(contextOf(cmd), p, cfg, genOpts, cmd.OutOrStdout(), logger)
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndGenerate(ctx, p, cfg, genOpts, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// apply copies explicitly given flags over the loaded configuration
func (o generateOptions) apply(cfg *model.Config) {
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.postTag != "" {
		cfg.PostTag = o.postTag
	}
	if o.trueLiteral != "" {
		cfg.TrueLiteral = o.trueLiteral
	}
	if o.noCache {
		cfg.Cache.Enabled = false
	}
	if o.timeout > 0 {
		cfg.Form.Timeout = o.timeout
	}
}

func (o generateOptions) inputs() pipeline.Inputs {
	return pipeline.Inputs{
		Form:    o.form,
		FormID:  o.formID,
		Answers: o.answers,
		Set:     o.set,
	}
}

// generate runs one generation. The post goes to --out when given, otherwise to stdout;
// problems always go to stdout.
func generate(ctx context.Context, p *pipeline.Pipeline, cfg *model.Config, o generateOptions, stdout io.Writer, logger *zap.Logger) error {
	if cfg.Form.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Form.Timeout)
		defer cancel()
	}

	res, err := p.Run(ctx, o.inputs())
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if res.Problems.HasConfig() {
		logger.Warn("The claim form does not match the field manifest; an admin needs to update one of them",
			zap.Int("problems", len(res.Problems.OfKind(model.ProblemConfig))))
	}

	if res.OK() && o.out != "" {
		if err := writeFile(o.out, res, cfg.Output.Format); err != nil {
			return err
		}
		logger.Info("Wrote claim post", zap.String("path", o.out))
		return nil
	}

	if err := pipeline.WriteResult(stdout, res, cfg.Output.Format); err != nil {
		return err
	}

	if !res.OK() {
		return fmt.Errorf("%w: %d problem(s)", ErrNotGenerated, len(res.Problems))
	}
	return nil
}

func writeFile(path string, res *pipeline.Result, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()

	return pipeline.WriteResult(f, res, format)
}

// watchAndGenerate generates once, then again on every change to a local input file,
// until ctx is done. Generation problems are reported and watching continues.
func watchAndGenerate(ctx context.Context, p *pipeline.Pipeline, cfg *model.Config, o generateOptions, stdout, stderr io.Writer, logger *zap.Logger) error {
	var files []string
	if o.form != "" && !pipeline.IsRemote(o.form) {
		files = append(files, o.form)
	}
	files = append(files, o.answers)

	w, err := watch.NewWatcher(files, watch.DefaultDebounce, logger)
	if err != nil {
		return fmt.Errorf("--watch needs a local form or answers file: %w", err)
	}

	run := func() {
		if err := generate(ctx, p, cfg, o, stdout, logger); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}

	run()
	fmt.Fprintf(stderr, "Watching %d file(s) for changes (Ctrl+C to stop)\n", len(w.Files()))
	return w.Run(ctx, run)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
