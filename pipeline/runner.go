package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/funnelsim/compare"
	"github.com/inference-sim/funnelsim/report"
	"github.com/inference-sim/funnelsim/sim"
)

// DefaultCustomers is the number of customers simulated per configuration.
const DefaultCustomers = 100

// Simulator runs one configuration. The Runner wraps its errors in
// SimulationError.
type Simulator interface {
	Run(customers int, ref ConfigRef) (*sim.RunResult, error)
}

// SimulatorFunc adapts a function to the Simulator interface.
type SimulatorFunc func(customers int, ref ConfigRef) (*sim.RunResult, error)

// Run calls f.
func (f SimulatorFunc) Run(customers int, ref ConfigRef) (*sim.RunResult, error) {
	return f(customers, ref)
}

// FunnelSimulator runs the YAML funnel file at ref.Path.
var FunnelSimulator = SimulatorFunc(func(customers int, ref ConfigRef) (*sim.RunResult, error) {
	return sim.Simulate(customers, ref.Path)
})

// Runner drives one comparative run.
type Runner struct {
	Simulator Simulator
	Customers int
	OutDir    string // "" means the working directory
	Workbook  bool   // also write comparative_summary.xlsx
	Log       logrus.FieldLogger
}

// Outcome is what a successful run produced.
type Outcome struct {
	Runs         []report.Run
	Table        *compare.Table
	Highlights   []compare.Highlight
	ReportPath   string
	WorkbookPath string
	Exports      []string
}

// accumulator collects per-configuration results in discovery order. It is
// passed by value and returned from every step.
type accumulator struct {
	runs    []report.Run
	records []compare.Record
	exports []string
}

func (a accumulator) add(run report.Run, rec compare.Record, export string) accumulator {
	a.runs = append(a.runs, run)
	a.records = append(a.records, rec)
	a.exports = append(a.exports, export)
	return a
}

// Run simulates every configuration in order, then ranks them and writes the
// report. The first error aborts the run and no report is written. Zero
// configurations produce a report without best-funnel selections.
func (r *Runner) Run(refs []ConfigRef) (*Outcome, error) {
	if r.Simulator == nil {
		return nil, fmt.Errorf("no simulator configured")
	}
	if r.Customers <= 0 {
		return nil, fmt.Errorf("customer count must be positive, got %d", r.Customers)
	}
	log := r.logger().WithField("run_id", uuid.NewString())
	log.Infof("Comparing %d configuration(s) with %d customers each", len(refs), r.Customers)

	acc, err := r.collect(accumulator{}, refs, log)
	if err != nil {
		return nil, err
	}

	tb := compare.BuildTable(acc.records)
	var highlights []compare.Highlight
	if len(tb.Rows) > 0 {
		highlights, err = compare.SelectAll(tb)
		if err != nil {
			return nil, fmt.Errorf("ranking configurations: %w", err)
		}
		for _, h := range highlights {
			log.WithField("config", h.Selection.Row.Configuration).
				Infof("%s: %s = %s", h.Criterion.Title, h.Criterion.Metric, formatValue(h.Selection.Value))
		}
	} else {
		log.Warn("No configurations found; best-funnel selection skipped")
	}

	out := &Outcome{
		Runs:       acc.runs,
		Table:      tb,
		Highlights: highlights,
		ReportPath: filepath.Join(r.OutDir, report.ReportFile),
		Exports:    acc.exports,
	}

	if r.Workbook {
		out.WorkbookPath = filepath.Join(r.OutDir, report.WorkbookFile)
		if err := report.ExportWorkbook(out.WorkbookPath, tb.Full(), acc.runs); err != nil {
			return nil, err
		}
		log.Infof("Workbook saved to '%s'", out.WorkbookPath)
	}

	doc := report.Render(report.Input{Runs: acc.runs, Table: tb, Highlights: highlights})
	if err := report.WriteBytesAtomic(out.ReportPath, doc); err != nil {
		return nil, err
	}
	log.Infof("Comparative summary report has been saved to '%s'", out.ReportPath)
	return out, nil
}

// collect runs each configuration in turn and returns the grown accumulator.
func (r *Runner) collect(acc accumulator, refs []ConfigRef, log logrus.FieldLogger) (accumulator, error) {
	for _, ref := range refs {
		clog := log.WithField("config", ref.Name)
		clog.Info("Running simulation")

		res, err := r.Simulator.Run(r.Customers, ref)
		if err != nil {
			return acc, &SimulationError{Configuration: ref.Name, Err: err}
		}
		if res == nil || res.Details == nil {
			return acc, &SimulationError{Configuration: ref.Name, Err: fmt.Errorf("simulator returned no result")}
		}

		rec, err := compare.Extract(ref.Name, res.Summary)
		if err != nil {
			return acc, err
		}

		export := filepath.Join(r.OutDir, report.CSVFileName(ref.Name))
		if err := report.ExportCSV(export, res.Details); err != nil {
			return acc, fmt.Errorf("exporting results of %s: %w", ref.Name, err)
		}
		clog.Debugf("Detail results saved to '%s'", export)

		acc = acc.add(report.Run{Configuration: ref.Name, Result: res}, rec, export)
	}
	return acc, nil
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
