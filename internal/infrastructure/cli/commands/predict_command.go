package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/fakenews-go/internal/domain"
)

// predictionOutput is the --json shape of one prediction.
type predictionOutput struct {
	News          string       `json:"news"`
	Label         domain.Label `json:"label"`
	Confidence    float64      `json:"confidence"`
	Probabilities [2]float64   `json:"probabilities"`
	Result        string       `json:"result"`
}

// NewPredictCommand classifies one text without starting a UI.
func NewPredictCommand(rt *Runtime) *cobra.Command {
	var (
		articleURL string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "predict [text...]",
		Short: "Classify a news text as FAKE or REAL",
		Long:  "Classify news text given as arguments, read from stdin, or downloaded from --url.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := rt.Container(ctx)
			if err != nil {
				return err
			}

			text, err := resolveInput(cmd.InOrStdin(), args, articleURL, stdinIsPipe())
			if err != nil {
				return err
			}
			if articleURL != "" {
				container.Logger.Debug("fetching article", map[string]interface{}{"url": articleURL})
				if text, err = container.Fetcher.Fetch(ctx, articleURL); err != nil {
					return err
				}
			}

			pred, err := container.Predictor.Predict(ctx, text)
			if errors.Is(err, domain.ErrEmptyInput) {
				return errors.New(domain.MsgEmptyInput)
			}
			if err != nil {
				return err
			}

			out := predictionOutput{
				News:          domain.TruncateDisplay(text, container.Config.Display.TruncateLength),
				Label:         pred.Label,
				Confidence:    pred.Confidence,
				Probabilities: pred.Probabilities,
				Result:        pred.Result(),
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			RenderPrediction(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&articleURL, "url", "u", "", "Download the article at this URL and classify its text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the prediction as JSON")
	return cmd
}

// resolveInput picks the text source. A URL yields an empty text, filled in by the fetcher.
func resolveInput(stdin io.Reader, args []string, articleURL string, piped bool) (string, error) {
	text := strings.Join(args, " ")
	switch {
	case articleURL != "" && text != "":
		return "", errors.New(ErrBothSet)
	case articleURL != "":
		return "", nil
	case text != "":
		return text, nil
	case piped:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		return "", errors.New(ErrNoInput)
	}
}

func stdinIsPipe() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// RenderPrediction prints one prediction in a friendly, ASCII-only format.
func RenderPrediction(out io.Writer, p predictionOutput) {
	fmt.Fprintf(out, "News: %s\n", p.News)
	fmt.Fprintf(out, "%s%s\n", domain.MsgPredictionPrefix, p.Result)
	fmt.Fprintf(out, "P(FAKE)=%.4f  P(REAL)=%.4f\n", p.Probabilities[domain.ClassFake], p.Probabilities[domain.ClassReal])
}
