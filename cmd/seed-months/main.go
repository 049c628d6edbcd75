// Command seed-months generates a sample data directory for tally:
// a config.json manifest plus one month<N>.json file per month, with a
// varied score distribution across teams.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/tally/internal/domain/model"
)

// Output file permission constants.
const (
	dataFilePermission = 0o644
	dataDirPermission  = 0o755
)

// Score distribution constants.
const (
	baselineScoreMin   = 5.0
	baselineScoreRange = 40.0
	hotStreakChance    = 0.15
	hotStreakBonusMax  = 35.0
	absentChance       = 0.1
)

// seedManifest is the generated config.json shape. The service only reads
// the months list; the rest tags the dataset for traceability.
type seedManifest struct {
	Months      []string `json:"months"`
	GeneratedBy string   `json:"generated_by,omitempty"`
	GeneratedAt string   `json:"generated_at,omitempty"`
}

var defaultTeams = []string{
	"Red Raccoons",
	"Blue Badgers",
	"Green Geckos",
	"Golden Gophers",
	"Silver Swifts",
	"Crimson Cranes",
	"Violet Vipers",
	"Amber Antelopes",
}

func main() {
	var (
		outDir    = flag.String("out", "data", "output directory for generated files")
		numMonths = flag.Int("months", 6, "number of months to generate")
		numTeams  = flag.Int("teams", 5, "number of teams submitting scores")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "random seed for reproducible datasets")
		start     = flag.String("start", "2026-01-01", "date of the first month (YYYY-MM-DD)")
	)
	flag.Parse()

	if *numTeams > len(defaultTeams) {
		fmt.Fprintf(os.Stderr, "at most %d teams supported\n", len(defaultTeams))
		os.Exit(1)
	}

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -start date: %v\n", err)
		os.Exit(1)
	}

	if err := generate(*outDir, *numMonths, *numTeams, *seed, startDate); err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}
}

func generate(outDir string, numMonths, numTeams int, seed int64, start time.Time) error {
	if err := os.MkdirAll(outDir, dataDirPermission); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible datasets
	runID := uuid.New().String()

	manifest := seedManifest{
		GeneratedBy: "seed-months " + runID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for i := 1; i <= numMonths; i++ {
		id := fmt.Sprintf("%d", i)
		monthDate := start.AddDate(0, i-1, 0)

		month := model.Month{
			Label:       monthDate.Format("January 2006"),
			Date:        monthDate.Format("2006-01-02"),
			Submissions: generateSubmissions(rng, numTeams),
		}

		if err := writeJSON(filepath.Join(outDir, "month"+id+".json"), month); err != nil {
			return err
		}
		manifest.Months = append(manifest.Months, id)
	}

	if err := writeJSON(filepath.Join(outDir, "config.json"), manifest); err != nil {
		return err
	}

	fmt.Printf("generated %d months for %d teams in %s (run %s)\n", numMonths, numTeams, outDir, runID)
	return nil
}

// generateSubmissions rolls one score entry per participating team. A team
// occasionally skips a month entirely, and occasionally lands a hot streak
// on top of its baseline.
func generateSubmissions(rng *rand.Rand, numTeams int) []model.Submission {
	subs := make([]model.Submission, 0, numTeams)
	for _, team := range defaultTeams[:numTeams] {
		if rng.Float64() < absentChance {
			continue
		}

		score := baselineScoreMin + rng.Float64()*baselineScoreRange
		if rng.Float64() < hotStreakChance {
			score += rng.Float64() * hotStreakBonusMax
		}

		// One decimal place keeps the files readable.
		subs = append(subs, model.Submission{
			TeamName: team,
			Score:    float64(int(score*10)) / 10,
		})
	}
	return subs
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), dataFilePermission); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
