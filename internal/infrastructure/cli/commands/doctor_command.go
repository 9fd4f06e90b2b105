package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/fakenews-go/internal/app"
	"github.com/doeshing/fakenews-go/internal/application/doctor"
	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/infrastructure/artifact"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, artifacts and session storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, _, err := rt.Config(cmd.Context())
			if err != nil {
				return err
			}
			svc := &doctor.Service{
				ConfigProvider: loader,
				Inspector:      artifact.Inspector{},
				Sessions:       app.ProbeSessionStore,
			}
			report, err := svc.Run(cmd.Context())

			displayDoctorReport(cmd.OutOrStdout(), report)

			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			return nil
		},
	}
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
