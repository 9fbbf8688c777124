package evaluation

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"support-router/internal/model"
)

const (
	rule          = "================================================================================"
	sampleMaxRune = 60
)

// FallbackMessages stands in when no dataset is available.
func FallbackMessages() []Sample {
	base := []Sample{
		{Text: "I want to cancel my order", Label: model.IntentCancelOrder},
		{Text: "What payment methods do you accept?", Label: model.IntentCheckPaymentMethods},
		{Text: "How do I track my package?", Label: model.IntentTrackOrder},
		{Text: "I need to speak with a human agent", Label: model.IntentContactHumanAgent},
		{Text: "Can you help me reset my password?", Label: model.IntentRecoverPassword},
	}
	out := make([]Sample, 0, len(base)*100)
	for i := 0; i < 100; i++ {
		out = append(out, base...)
	}
	return out
}

// Write renders r as a plain-text report.
func (r Report) Write(w io.Writer) error {
	ew := &errWriter{w: w}

	section(ew, "ROUTING DISTRIBUTION")
	ew.printf("Processed %d messages in %s", r.Messages, r.Elapsed.Round(1e6))
	if r.Messages > 0 {
		ew.printf(" (%.2f ms per message)", float64(r.Elapsed.Microseconds())/1000/float64(r.Messages))
	}
	ew.printf("\n\nBy Bucket:\n")
	for _, b := range model.Buckets {
		n := r.ByBucket[b]
		ew.printf("  %-10s %5d (%5.1f%%) - %s [%s cost]\n", b, n, pct(n, r.Messages), b.Description(), b.CostTier())
	}
	if r.Unclassified > 0 {
		ew.printf("  %-10s %5d (%5.1f%%) - classifier error\n", "NONE", r.Unclassified, pct(r.Unclassified, r.Messages))
	}

	ew.printf("\nBy Action Type:\n")
	for _, ac := range r.ActionsByCount() {
		ew.printf("  %-25s: %5d (%5.1f%%)\n", ac.Action, ac.Count, pct(ac.Count, r.Messages))
	}

	ew.printf("\nConfidence Statistics:\n")
	ew.printf("  Average confidence: %.2f%%\n", r.AverageConfidence*100)
	ew.printf("  Low confidence (<%.0f%%): %d (%.1f%%)\n", r.Threshold*100, r.LowConfidence, pct(r.LowConfidence, r.Messages))
	ew.printf("  High confidence (>=80%%): %d (%.1f%%)\n", r.HighConfidence, pct(r.HighConfidence, r.Messages))
	if r.Labelled > 0 {
		ew.printf("  Accuracy on %d labelled messages: %.2f%%\n", r.Labelled, r.Accuracy()*100)
	}

	section(ew, "COST ANALYSIS")
	ew.printf("Cost Estimates (for %d requests):\n", r.Cost.Requests)
	ew.printf("  Without routing (all -> ESCALATE): $%.2f\n", r.Cost.WithoutRouting)
	ew.printf("  With routing:                      $%.2f\n", r.Cost.WithRouting)
	ew.printf("  Savings:                           $%.2f (%.1f%%)\n", r.Cost.Savings, r.Cost.SavingsPercent)

	ew.printf("\nCost breakdown with routing:\n")
	for _, b := range model.Buckets {
		ew.printf("  %-10s $%.2f (%d requests x $%g)\n", b, r.Cost.ByBucket[b], r.ByBucket[b], r.Costs.PerRequest(b))
	}

	ew.printf("\nMonthly Projections (extrapolated):\n")
	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, p := range r.Projections {
		fmt.Fprintf(tw, "  %d requests/month:\t$%.2f\tvs\t$%.2f\t-> save\t$%.2f\t\n", p.MonthlyRequests, p.WithRouting, p.WithoutRouting, p.Savings)
	}
	if err := tw.Flush(); err != nil && ew.err == nil {
		ew.err = err
	}

	if len(r.Samples) > 0 {
		section(ew, fmt.Sprintf("SAMPLE ROUTING DECISIONS (first %d)", len(r.Samples)))
		for i, d := range r.Samples {
			ew.printf("\n%d. %s\n", i+1, truncate(d.Text, sampleMaxRune))
			if d.Err != nil {
				ew.printf("   Error: %v\n", d.Err)
				continue
			}
			ew.printf("   Intent: %s\n", d.Intent)
			ew.printf("   Confidence: %.1f%%\n", d.Confidence*100)
			ew.printf("   -> %s (%s cost, %s)\n", d.Bucket, d.CostTier, d.Action)
		}
	}
	ew.printf("\n")
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}

func section(ew *errWriter, title string) {
	ew.printf("\n%s\n%s\n%s\n", rule, title, rule)
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func truncate(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max]) + "..."
}
