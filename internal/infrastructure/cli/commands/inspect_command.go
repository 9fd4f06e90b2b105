package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/infrastructure/artifact"
)

// NewInspectCommand reports what the configured artifacts contain.
func NewInspectCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Describe the configured vectorizer and model artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := rt.Config(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			vec, vecErr := artifact.Inspect(domain.ArtifactVectorizer, cfg.Artifacts.VectorizerPath)
			writeSummary(out, vec, vecErr)
			clf, clfErr := artifact.Inspect(domain.ArtifactClassifier, cfg.Artifacts.ModelPath)
			writeSummary(out, clf, clfErr)

			if vecErr != nil {
				return vecErr
			}
			if clfErr != nil {
				return clfErr
			}
			if vec.Features != clf.Features {
				return fmt.Errorf("%w: vectorizer emits %d features, model expects %d",
					domain.ErrFeatureMismatch, vec.Features, clf.Features)
			}
			fmt.Fprintln(out, "Artifacts are compatible.")
			return nil
		},
	}
}

func writeSummary(out io.Writer, s artifact.Summary, err error) {
	fmt.Fprintf(out, "%s: %s\n", s.Artifact, s.Path)
	if err != nil {
		fmt.Fprintf(out, "  error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "  kind:     %s\n", s.Kind)
	fmt.Fprintf(out, "  size:     %s\n", humanize.Bytes(uint64(s.SizeBytes)))
	fmt.Fprintf(out, "  features: %s\n", humanize.Comma(int64(s.Features)))
	if len(s.Classes) > 0 {
		fmt.Fprintf(out, "  classes:  %v\n", s.Classes)
	}
}
