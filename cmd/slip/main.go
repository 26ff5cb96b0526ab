package main

import (
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/big"
	"math/rand/v2"
	"os"

	"jackpotsim/internal/betting"
	"jackpotsim/internal/config"
	"jackpotsim/internal/jackpot"
	"jackpotsim/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)
		return flag.ErrHelp
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(out)
	rulesPath := fs.String("rules", config.GetEnv("RULES_PATH", ""), "YAML rule table")
	games := fs.Int("games", jackpot.DefaultTotalMatches, "number of games in the jackpot")
	file := fs.String("file", "", "JSON input file")
	seed := fs.Int64("seed", -1, "int64 seed for random number generator")
	amount := fs.Int64("amount", 0, "budget in KSh")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	rules, err := config.LoadRules(*rulesPath)
	if err != nil {
		return err
	}

	var (
		title string
		sel   betting.Selections
	)
	switch args[0] {
	case "validate":
		title = "Slip"
		if err := readJSON(*file, &sel); err != nil {
			return err
		}
		if err := betting.CheckRange(sel, *games); err != nil {
			return err
		}

	case "random":
		title = fmt.Sprintf("Random slip (seed %d)", resolveSeed(seed))
		sel = betting.Randomize(*games, newRand(*seed), rules)

	case "smart":
		title = "Smart slip"
		var jp jackpot.Jackpot
		if err := readJSON(*file, &jp); err != nil {
			return err
		}
		if jp.TotalMatches <= 0 {
			jp.TotalMatches = len(jp.Fixtures)
		}
		if jp.Name != "" {
			title = jp.Name
		}
		sel = betting.SmartSelect(jp.Odds(), rules)

	case "budget":
		title = fmt.Sprintf("Budget KSh %d (seed %d)", *amount, resolveSeed(seed))
		sel, err = betting.PlanBudget(*amount, *games, newRand(*seed), rules)
		if err != nil {
			return err
		}

	default:
		printUsage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}

	res, err := betting.Validate(sel, rules)
	if err != nil {
		return err
	}

	fmt.Fprint(out, report.Selections(title, sel))
	fmt.Fprint(out, report.Summary("Validation", res))
	return nil
}

// resolveSeed replaces a missing seed with a random one so the run can be repeated.
func resolveSeed(seed *int64) int64 {
	if *seed < 1 {
		n, err := crand.Int(crand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		*seed = n.Int64()
	}
	return *seed
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))
}

func readJSON(path string, v interface{}) error {
	if path == "" {
		return errors.New("-file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Jackpot slip tool")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  slip validate -file slip.json [-games 17]   Validate a slip (game -> picks)")
	fmt.Fprintln(out, "  slip random [-games 17] [-seed N]           Draw a random slip")
	fmt.Fprintln(out, "  slip smart -file jackpot.json               Pick from fixture odds")
	fmt.Fprintln(out, "  slip budget -amount KSH [-games 17]         Spend a budget")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "All commands accept -rules <file.yaml> (default: $RULES_PATH).")
}
