package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rp-magrathea/vogsphere/internal/extract"
	"github.com/rp-magrathea/vogsphere/internal/model"
	"github.com/rp-magrathea/vogsphere/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	fieldsForm   string
	fieldsFormID string
)

// fieldsCmd represents the fields command
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the field manifest, optionally checked against a form",
	Long: `Fields prints every field the generator expects, with its kind.

With --form, each field is also looked up in the form: missing fields
are what an admin has to fix before members can generate claims.

Example:
  vogsphere fields
  vogsphere fields --form claim.html --form-id claim`,
	Args: cobra.NoArgs,
	RunE: runFields,
}

func init() {
	rootCmd.AddCommand(fieldsCmd)

	fieldsCmd.Flags().StringVar(&fieldsForm, "form", "", "HTML form file or http(s) URL to check")
	fieldsCmd.Flags().StringVar(&fieldsFormID, "form-id", "", "id or name of the form inside the page")
}

func runFields(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if fieldsForm == "" {
		listFields(cmd.OutOrStdout(), cfg.Fields, nil)
		return nil
	}

	missing, err := checkForm(contextOf(cmd), cfg, fieldsForm, fieldsFormID, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if missing > 0 {
		return fmt.Errorf("%d field(s) missing from form", missing)
	}
	return nil
}

// listFields writes one line per manifest field and returns how many are missing from form.
// A nil form lists the manifest alone.
func listFields(w io.Writer, manifest model.Manifest, form extract.FieldSource) int {
	missing := 0
	for _, g := range manifest {
		kind, known := model.ParseFieldKind(g.Kind)
		label := string(kind)
		if !known {
			label = g.Kind + " (unsupported)"
		}

		for _, name := range g.Names {
			if form == nil {
				fmt.Fprintf(w, "%-20s %s\n", name, label)
				continue
			}

			status := "missing"
			if f, ok := form.Lookup(name); ok {
				status = "optional"
				if f.Required {
					status = "required"
				}
			} else {
				missing++
			}
			fmt.Fprintf(w, "%-20s %-20s %s\n", name, label, status)
		}
	}
	return missing
}

// checkForm loads a form and reports how many manifest fields it lacks
func checkForm(ctx context.Context, cfg *model.Config, location, formID string, w io.Writer) (int, error) {
	form, err := pipeline.NewPipeline(cfg, logger).LoadForm(ctx, location, formID)
	if err != nil {
		return 0, err
	}
	return listFields(w, cfg.Fields, form), nil
}
