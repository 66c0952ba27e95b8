package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/meenmo/curvekit/config"
	"github.com/meenmo/curvekit/curve"
	"github.com/meenmo/curvekit/scenario"
	"github.com/meenmo/curvekit/utils"
)

// ScenarioOutput is one bumped copy of a curve's par rates.
type ScenarioOutput struct {
	Label    string            `json:"label"`
	Kind     scenario.Kind     `json:"kind"`
	Index    int               `json:"index"`
	Shift    decimal.Decimal   `json:"shift"`
	ParRates []decimal.Decimal `json:"par_rates"`
}

// ParameterOutput is the metadata of one curve node.
type ParameterOutput struct {
	Label string   `json:"label"`
	Date  string   `json:"date,omitempty"`
	Time  *float64 `json:"time,omitempty"`
}

// CurveOutput defines the JSON output schema per curve.
type CurveOutput struct {
	TaskID     string            `json:"task_id,omitempty"`
	Name       string            `json:"name,omitempty"`
	Input      string            `json:"input,omitempty"`
	Config     string            `json:"config,omitempty"`
	XValueType string            `json:"x_value_type,omitempty"`
	YValueType string            `json:"y_value_type,omitempty"`
	DayCount   string            `json:"day_count,omitempty"`
	Parameters []ParameterOutput `json:"parameters,omitempty"`
	Scenarios  []ScenarioOutput  `json:"scenarios,omitempty"`
	TimesError string            `json:"times_error,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "YAML or JSON input path (optional; if set, ignores stdin)")
	verbose := flag.Bool("v", false, "Log progress to stderr")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		usage()
		return
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			usage()
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		writeError(fmt.Sprintf("failed to read input: %v", err))
		return
	}

	outputs, hadError, err := run(raw, logger)
	if err != nil {
		writeError(err.Error())
		return
	}

	outputBytes, _ := json.Marshal(outputs)
	fmt.Println(string(outputBytes))

	if hadError {
		os.Exit(1)
	}
}

// run processes every curve of the request. Per-curve failures are reported in
// the curve's Error field; only document-level problems return an error.
func run(raw []byte, logger *slog.Logger) ([]CurveOutput, bool, error) {
	req, err := parseRequest(raw)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse input: %w", err)
	}
	valuationDate, err := utils.DateParser(req.ValuationDate)
	if err != nil {
		return nil, false, err
	}
	cfg, err := config.Decode(req.Config)
	if err != nil {
		return nil, false, err
	}
	logger.Debug("request parsed", "valuation_date", valuationDate, "curves", len(req.Curves),
		"bucket_shift", cfg.BucketShift, "parallel", cfg.IncludeParallel)

	hadError := false
	outputs := make([]CurveOutput, 0, len(req.Curves))
	for _, c := range req.Curves {
		out, err := processCurve(c, valuationDate, cfg)
		if err != nil {
			hadError = true
			logger.Warn("curve rejected", "task_id", c.TaskID, "name", c.Name, "err", err)
			outputs = append(outputs, CurveOutput{TaskID: c.TaskID, Name: c.Name, Error: err.Error()})
			continue
		}
		if out.TimesError != "" {
			logger.Warn("node times unavailable", "task_id", c.TaskID, "name", c.Name, "err", out.TimesError)
		}
		logger.Debug("curve processed", "name", out.Name, "scenarios", len(out.Scenarios))
		outputs = append(outputs, *out)
	}
	return outputs, hadError, nil
}

func processCurve(c CurveInput, valuationDate civil.Date, cfg config.Config) (*CurveOutput, error) {
	input, curveCfg, err := c.build()
	if err != nil {
		return nil, err
	}

	ladder, err := scenario.Ladder(input, cfg)
	if err != nil {
		return nil, err
	}
	scenarios := make([]ScenarioOutput, len(ladder))
	for i, s := range ladder {
		scenarios[i] = ScenarioOutput{
			Label:    s.Label,
			Kind:     s.Kind,
			Index:    s.Index,
			Shift:    s.Shift,
			ParRates: s.Input.ParRates(),
		}
	}

	// Node times are informational: a curve whose nodes are not in date order
	// still gets its scenarios and parameters, just without times.
	meta := curveCfg.Metadata(valuationDate)
	var times []float64
	var timesErr string
	if meta.DayCount != "" {
		if times, err = curve.NodeTimes(meta, valuationDate); err != nil {
			timesErr = err.Error()
		}
	}
	params := make([]ParameterOutput, len(meta.Parameters))
	for i, p := range meta.Parameters {
		params[i].Label = p.Label()
		if dated, ok := p.(curve.DatedParameterMetadata); ok {
			params[i].Date = dated.Date().String()
		}
		if times != nil {
			params[i].Time = &times[i]
		}
	}

	return &CurveOutput{
		TaskID:     c.TaskID,
		Name:       string(input.Name()),
		Input:      input.String(),
		Config:     curveCfg.String(),
		XValueType: string(meta.XValueType),
		YValueType: string(meta.YValueType),
		DayCount:   string(meta.DayCount),
		Parameters: params,
		Scenarios:  scenarios,
		TimesError: timesErr,
	}, nil
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  curveshift < input.yaml")
	fmt.Println("  curveshift -input /path/to/input.yaml [-v]")
	fmt.Println()
	fmt.Println("Read par rate curves (YAML or JSON), output bump scenarios and curve metadata as JSON.")
	fmt.Println()
	fmt.Println("Example input:")
	fmt.Println(`  valuation_date: "2025-03-12"`)
	fmt.Println(`  config:`)
	fmt.Println(`    bucket_shift: "0.0001"`)
	fmt.Println(`  curves:`)
	fmt.Println(`    - name: USD-LIBOR`)
	fmt.Println(`      convention: USD-LIBOR-3M`)
	fmt.Println(`      day_count: ACT/365F`)
	fmt.Println(`      interpolator: NaturalCubicSpline`)
	fmt.Println(`      extrapolator_left: Flat`)
	fmt.Println(`      extrapolator_right: Flat`)
	fmt.Println(`      nodes:`)
	fmt.Println(`        - {tenor: 6M, instrument: MM, rate: "0.010"}`)
	fmt.Println(`        - {tenor: 5Y, instrument: SWAP, rate: "0.020"}`)
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func writeError(msg string) {
	output := CurveOutput{Error: msg}
	outputBytes, _ := json.Marshal(output)
	fmt.Println(string(outputBytes))
	os.Exit(1)
}
