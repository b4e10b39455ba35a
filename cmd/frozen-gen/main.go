// Command frozen-gen generates Go source for frozen maps from key-value
// listings, and inspects the layout the analyzer would pick for a key set.
//
// Input files contain one entry per line in the form key=value, where the
// value is emitted verbatim as a Go expression. Blank lines and lines
// starting with # are skipped. For inspection, the =value part is
// optional.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	frozen "github.com/geeknoid/frozen-collections"
	"github.com/geeknoid/frozen-collections/emit"
)

var cli struct {
	Verbose bool `short:"v" help:"Enable verbose logging."`

	Gen struct {
		Input     string `arg:"" help:"Input file of key=value lines."`
		Out       string `short:"o" required:"" help:"Output path for the generated Go file."`
		Package   string `short:"p" required:"" help:"Package name for the generated file."`
		Var       string `required:"" help:"Name of the generated variable."`
		Kind      string `default:"string" enum:"string,scalar" help:"Key kind."`
		KeyType   string `default:"int" help:"Go key type for scalar maps."`
		ValueType string `default:"string" help:"Go type expression for values."`
		Seed      uint64 `help:"Analysis seed; 0 uses a fixed default."`
	} `cmd:"" help:"Generate a Go file defining a frozen map."`

	Inspect struct {
		Input string `arg:"" help:"Input file of key[=value] lines."`
		Kind  string `default:"string" enum:"string,scalar" help:"Key kind."`
	} `cmd:"" help:"Print the layout the analyzer picks for the input keys."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("frozen-gen"),
		kong.Description("Code generator for frozen collections."))

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var err error
	switch ctx.Command() {
	case "gen <input>":
		err = runGen(logger)
	case "inspect <input>":
		err = runInspect(logger)
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		logger.Error("failed", "error", err)
		os.Exit(1)
	}
}

func runGen(logger *slog.Logger) error {
	keys, values, err := readEntries(cli.Gen.Input)
	if err != nil {
		return err
	}
	logger.Debug("parsed input", "path", cli.Gen.Input, "entries", len(keys))

	g := &emit.Generator{
		Package:   cli.Gen.Package,
		Var:       cli.Gen.Var,
		ValueType: cli.Gen.ValueType,
		Seed:      cli.Gen.Seed,
	}

	out, err := os.Create(cli.Gen.Out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	switch cli.Gen.Kind {
	case "scalar":
		scalars, convErr := toScalars(keys)
		if convErr != nil {
			err = convErr
			break
		}
		err = g.ScalarMap(out, cli.Gen.KeyType, scalars, values)
	default:
		err = g.StringMap(out, keys, values)
	}
	if err != nil {
		out.Close()
		os.Remove(cli.Gen.Out)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Info("generated", "path", cli.Gen.Out, "entries", len(keys))
	return nil
}

func runInspect(logger *slog.Logger) error {
	keys, _, err := readEntries(cli.Inspect.Input)
	if err != nil {
		return err
	}

	var plan frozen.Plan
	if cli.Inspect.Kind == "scalar" {
		scalars, convErr := toScalars(keys)
		if convErr != nil {
			return convErr
		}
		plan = frozen.AnalyzeScalarKeys(scalars)
	} else {
		plan = frozen.AnalyzeStringKeys(keys)
	}

	logger.Debug("analyzed", "keys", len(keys))
	fmt.Printf("keys:       %d\n", len(keys))
	fmt.Printf("variant:    %s\n", plan.Variant)
	if plan.TableSize != 0 {
		fmt.Printf("table size: %d\n", plan.TableSize)
	}
	if plan.Variant == frozen.LeftSubstringHash || plan.Variant == frozen.RightSubstringHash {
		fmt.Printf("window:     offset %d, length %d\n", plan.SubOffset, plan.SubLen)
	}
	if plan.Variant == frozen.DenseScalarLookup || plan.Variant == frozen.SparseScalarLookup {
		fmt.Printf("range:      [%d, %d]\n", plan.MinKey, plan.MinKey+int64(plan.Span)-1)
	}
	return nil
}

// readEntries parses key=value lines. Lines without = get an empty value.
func readEntries(path string) (keys, values []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		keys = append(keys, key)
		values = append(values, value)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	return keys, values, nil
}

func toScalars(keys []string) ([]int64, error) {
	out := make([]int64, len(keys))
	for i, k := range keys {
		v, err := strconv.ParseInt(k, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("key %q is not an integer: %w", k, err)
		}
		out[i] = v
	}
	return out, nil
}
