// Package cli implements the command-line interface for blockbench.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hweber/blockbench/internal/logctx"
	"github.com/hweber/blockbench/pkg/bench"
	"github.com/hweber/blockbench/pkg/define"
	"github.com/hweber/blockbench/pkg/engine"
	"github.com/hweber/blockbench/pkg/results"
)

// Run executes the CLI with the given arguments.
func Run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: blockbench <command> [options]\ncommands: list, run")
	}

	switch args[0] {
	case "list":
		return runList(args[1:])
	case "run":
		return runRun(args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// stringList collects repeated flag values.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	internal := fs.Bool("internal", false, "include internal cases")
	showDefines := fs.Bool("defines", false, "show each case's define sequence")
	var overrides stringList
	fs.Var(&overrides, "D", "define override NAME=V[,V...] or NAME=range(a,b[,s]) (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	overrideDefs, err := define.ParseOverrides(overrides)
	if err != nil {
		return err
	}

	for _, s := range bench.Suites() {
		fmt.Printf("%s (%d cases)\n", s.Name, len(s.Cases))
		for _, c := range s.Cases {
			if c.Flags&bench.FlagInternal != 0 && !*internal {
				continue
			}
			defines := s.EffectiveDefines(c, engine.ImplicitDefines(), overrideDefs)
			total := define.TotalPermutations(defines)
			fmt.Printf("  %s:%s  %d permutations\n", s.Name, c.Name, total)
			if *showDefines {
				for _, d := range defines {
					n := d.Permutations
					if n < 1 {
						n = 1
					}
					fmt.Printf("    %s x%d\n", d.Name, n)
				}
			}
		}
	}
	return nil
}

func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	out := fs.String("out", "", "write results CSV to this path")
	parquetOut := fs.String("parquet", "", "write results Parquet to this path")
	upload := fs.String("upload", "", "upload the results file to this s3://bucket/key")
	seed := fs.Int64("seed", -1, "override the SEED define for every case")
	internal := fs.Bool("internal", false, "include internal cases")
	summary := fs.Bool("summary", true, "print the per-measurement summary table")
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-friendly log output")
	var overrides stringList
	fs.Var(&overrides, "D", "define override NAME=V[,V...] or NAME=range(a,b[,s]) (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logctx.NewConfiguredLogger(*debug, *human)
	ctx := logctx.WithLogger(context.Background(), logger)

	if *upload != "" && *out == "" && *parquetOut == "" {
		return errors.New("--upload requires --out or --parquet")
	}

	overrideDefs, err := define.ParseOverrides(overrides)
	if err != nil {
		return err
	}
	if *seed >= 0 {
		overrideDefs = append(overrideDefs, define.Const(engine.DefSeed, *seed))
	}

	var filters []bench.Filter
	for _, arg := range fs.Args() {
		f, err := bench.ParseFilter(arg)
		if err != nil {
			return err
		}
		if bench.FindSuite(f.Suite) == nil {
			return fmt.Errorf("unknown suite: %s", f.Suite)
		}
		filters = append(filters, f)
	}

	mem := &results.MemRecorder{}
	sinks := results.MultiRecorder{mem}
	if *out != "" {
		csvRec, err := results.CreateCSV(*out)
		if err != nil {
			return err
		}
		sinks = append(sinks, csvRec)
	}
	if *parquetOut != "" {
		sinks = append(sinks, results.CreateParquet(*parquetOut))
	}

	opts := bench.Options{
		Filters:   filters,
		Base:      engine.ImplicitDefines(),
		Overrides: overrideDefs,
		Internal:  *internal,
		NewMeter: func(c *bench.Ctx) bench.Meter {
			return results.NewMeter(c, sinks)
		},
	}

	sum, runErr := bench.Run(ctx, opts)
	if err := sinks.Close(); err != nil && runErr == nil {
		runErr = err
	}

	logger.Info().
		Int("cases", sum.Cases).
		Int("runs", sum.Runs).
		Int("skipped", sum.Skipped).
		Int("failed", sum.Failed).
		Dur("elapsed", sum.Elapsed).
		Msg("bench run finished")

	if *summary {
		if err := results.WriteSummary(os.Stdout, mem.Records); err != nil && runErr == nil {
			runErr = err
		}
	}

	if runErr == nil && *upload != "" {
		if err := uploadResults(ctx, *upload, *out, *parquetOut); err != nil {
			return err
		}
	}
	return runErr
}

// uploadResults puts the preferred local results file (CSV when both
// exist) to the given S3 URL.
func uploadResults(ctx context.Context, url, csvPath, parquetPath string) error {
	path := csvPath
	if path == "" {
		path = parquetPath
	}
	bucket, key, err := results.ParseS3URL(url)
	if err != nil {
		return err
	}
	up, err := results.NewUploader(ctx)
	if err != nil {
		return err
	}
	if err := up.Upload(ctx, bucket, key, path); err != nil {
		return err
	}
	logger := logctx.FromContext(ctx)
	logger.Info().Str("url", url).Msg("results uploaded")
	return nil
}
