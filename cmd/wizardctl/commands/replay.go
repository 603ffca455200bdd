package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"mortgage-portal/internal/engine"
	"mortgage-portal/internal/model"
	"mortgage-portal/internal/mutations"
	"mortgage-portal/internal/summary"
)

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Run a recorded mutation batch against a fresh wizard",
		Long:  "Reads a run request (tenant_id, instructions.mutations) from a JSON file, or stdin when the file is -, and prints the outcome.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			eng := engine.New(engine.Options{
				Registry: mutations.NewRegistry(mutations.Options{StrictSteps: strict}),
			})
			printRun(cmd.OutOrStdout(), len(req.Instructions.Mutations), eng.Process(req))
			return nil
		},
	}
	return cmd
}

func readRequest(stdin io.Reader, path string) (*model.RunRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var req model.RunRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &req, nil
}

func printRun(out io.Writer, requested int, resp *model.RunResponse) {
	result := resp.RunResult
	end := result.EndState.Wizard

	outcome := color.New(color.FgGreen, color.Bold)
	if resp.RunMetadata.RunOutcome != model.OutcomeSuccess {
		outcome = color.New(color.FgRed, color.Bold)
	}
	outcome.Fprintf(out, "%s", resp.RunMetadata.RunOutcome)
	fmt.Fprintf(out, ": %d of %d mutation(s) applied, wizard at step %d of %d\n",
		result.EndState.MutationIndex+1, requested, end.Step+1, model.StepCount)
	if end.Submitted && end.SubmittedAt != nil {
		color.New(color.FgGreen).Fprintf(out, "Submitted on %s\n", *end.SubmittedAt)
	}

	if len(result.Messages) > 0 {
		color.New(color.FgYellow).Fprintln(out, "\nMessages")
		for _, m := range result.Messages {
			level := color.New(color.FgYellow)
			if m.Level == model.LevelCritical {
				level = color.New(color.FgRed)
			}
			level.Fprintf(out, "  %-8s", m.Level)
			fmt.Fprintf(out, " %-24s %s\n", m.Code, m.Message)
		}
	}

	color.New(color.FgYellow).Fprintln(out, "\nSections")
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Step", "Section", "Status", "Missing"})
	for _, r := range summary.Sections(&end.Application) {
		status := "complete"
		if !r.Complete() {
			status = "incomplete"
		}
		table.Append([]string{strconv.Itoa(r.Step + 1), r.Title, status, strings.Join(r.Missing, ", ")})
	}
	table.Render()

	p := summary.NewPrinter()
	t := summary.Compute(&end.Application)
	color.New(color.FgYellow).Fprintln(out, "\nTotals")
	totals := tablewriter.NewWriter(out)
	totals.SetHeader([]string{"Figure", "Amount"})
	totals.Append([]string{"Annual income", summary.Money(p, t.AnnualIncome)})
	totals.Append([]string{"Monthly commitments", summary.Money(p, t.MonthlyCommitments)})
	totals.Append([]string{"Outstanding debt", summary.Money(p, t.OutstandingDebt)})
	totals.Append([]string{"Mortgage amount", summary.Money(p, t.MortgageAmount)})
	totals.Append([]string{"Portfolio value", summary.Money(p, t.PortfolioValue)})
	totals.Append([]string{"Portfolio mortgages", summary.Money(p, t.PortfolioMortgages)})
	totals.Render()
}
