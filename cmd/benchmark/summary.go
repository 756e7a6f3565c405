package main

import (
	"fmt"
	"sort"

	"github.com/arturpietrzak/customer-service-llm/internal/models"
)

// printSummary writes a human-readable run digest to stdout. The full data
// lives in the store; this is just the terminal view.
func printSummary(run *models.RunRecord) {
	fmt.Printf("\nRun %s (%s)\n", run.RunID, run.Status)
	fmt.Printf("  models: %v\n", run.Models)
	fmt.Printf("  judges: %v\n", run.Judges)
	fmt.Printf("  scenarios: %d, records: %d\n", run.ScenarioCount, len(run.Records))

	// Average overall per model
	type modelAgg struct {
		sum    float64
		count  int
		failed int
	}
	perModel := make(map[string]*modelAgg)
	for _, record := range run.Records {
		agg := perModel[record.ModelID]
		if agg == nil {
			agg = &modelAgg{}
			perModel[record.ModelID] = agg
		}
		if record.Status == models.RecordOk && record.Consensus != nil {
			agg.sum += record.Consensus.Overall
			agg.count++
		} else {
			agg.failed++
		}
	}

	ids := make([]string, 0, len(perModel))
	for id := range perModel {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println("\n  model scores:")
	for _, id := range ids {
		agg := perModel[id]
		if agg.count == 0 {
			fmt.Printf("    %-24s no successful evaluations (%d failed)\n", id, agg.failed)
			continue
		}
		fmt.Printf("    %-24s %.2f over %d scenarios", id, agg.sum/float64(agg.count), agg.count)
		if agg.failed > 0 {
			fmt.Printf(" (%d failed)", agg.failed)
		}
		fmt.Println()
	}

	if len(run.JudgeStats) > 0 {
		fmt.Println("\n  judge reliability:")
		judgeIDs := make([]string, 0, len(run.JudgeStats))
		for id := range run.JudgeStats {
			judgeIDs = append(judgeIDs, id)
		}
		sort.Strings(judgeIDs)
		for _, id := range judgeIDs {
			s := run.JudgeStats[id]
			fmt.Printf("    %-24s %d evaluations, %.0f%% failures (parse %d, call %d, timeout %d)\n",
				id, s.Evaluations, s.FailureRate*100, s.ParseFailures, s.CallFailures, s.Timeouts)
		}
	}
}
