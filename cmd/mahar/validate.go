package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/mahar/internal/datasource"
	"github.com/vanderheijden86/mahar/pkg/metrics"
	"github.com/vanderheijden86/mahar/pkg/model"
	"github.com/vanderheijden86/mahar/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the content for errors",
	Long: "validate loads the content the browser would use and checks every record\n" +
		"plus the cross references between them. Errors make the command fail;\n" +
		"warnings are only reported.",
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("stats", false, "print load timings and counters")
	validateCmd.Flags().Bool("json", false, "print the report as JSON")
	rootCmd.AddCommand(validateCmd)
}

// validateReport is the --json output.
type validateReport struct {
	Source   datasource.DataSource  `json:"source"`
	Stats    model.Stats            `json:"stats"`
	OK       bool                   `json:"ok"`
	Issues   []validate.Issue       `json:"issues"`
	Timings  []metrics.TimingStats  `json:"timings,omitempty"`
	Counters []metrics.CounterStats `json:"counters,omitempty"`
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, src, err := loadContent(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	withStats, _ := cmd.Flags().GetBool("stats")
	asJSON, _ := cmd.Flags().GetBool("json")

	r := validate.Content(c)
	out := validateReport{
		Source: src,
		Stats:  c.Stats(),
		OK:     r.OK(),
		Issues: r.Issues,
	}
	if out.Issues == nil {
		out.Issues = []validate.Issue{}
	}
	if withStats {
		out.Timings = metrics.AllTimingStats()
		out.Counters = metrics.AllCounterStats()
	}

	w := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintln(w, string(data))
	} else {
		printValidateReport(w, out)
	}

	if !out.OK {
		return fmt.Errorf("content has %d error(s)", r.Count(validate.SeverityError))
	}
	return nil
}

func printValidateReport(w io.Writer, r validateReport) {
	fmt.Fprintf(w, "Source: %s\n", r.Source.Path)
	s := r.Stats
	fmt.Fprintf(w, "Articles: %d  Gallery: %d  Testimonials: %d  FAQs: %d  Team: %d  Features: %d  Pillars: %d\n",
		s.Articles, s.Gallery, s.Testimonials, s.FAQs, s.Team, s.Features, s.Pillars)

	if len(r.Issues) > 0 {
		fmt.Fprintln(w)
		for _, i := range r.Issues {
			fmt.Fprintf(w, "  %s\n", i)
		}
	}
	errs, warns := 0, 0
	for _, i := range r.Issues {
		if i.Severity == validate.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", errs, warns)

	if len(r.Timings) > 0 {
		fmt.Fprintln(w, "\nTimings:")
		for _, t := range r.Timings {
			fmt.Fprintf(w, "  %-16s count=%-4d avg=%.2fms max=%.2fms total=%.2fms\n",
				t.Name, t.Count, t.AvgMs, t.MaxMs, t.TotalMs)
		}
	}
	if len(r.Counters) > 0 {
		fmt.Fprintln(w, "\nCounters:")
		for _, c := range r.Counters {
			fmt.Fprintf(w, "  %-16s %d\n", c.Name, c.Value)
		}
	}
}
