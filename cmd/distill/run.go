package main

import (
	"cmp"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sarchlab/distill/catalog"
	"github.com/sarchlab/distill/datarecording"
	"github.com/sarchlab/distill/monitoring"
	"github.com/sarchlab/distill/sim"
	"github.com/sarchlab/distill/tower"
	"github.com/sarchlab/distill/world"
)

type runOptions struct {
	catalogDir string
	ticks      int
	record     string
	resume     string
	snapshot   string
	monitor    bool
	port       int
	open       bool
	trace      bool
}

func runOptionsFromConfig() runOptions {
	return runOptions{
		catalogDir: viper.GetString(catalogKey),
		ticks:      viper.GetInt(ticksKey),
		record:     viper.GetString(recordKey),
		monitor:    viper.GetBool(monitorKey),
		port:       viper.GetInt(monitorPortKey),
		open:       viper.GetBool(monitorOpenKey),
	}
}

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and print the state of every tower.",
	Long: `Run places the blocks and fluids of a scenario file into a new ` +
		`world and steps it for the number of ticks the scenario asks for.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptionsFromConfig()
		opts.resume, _ = cmd.Flags().GetString("resume")
		opts.snapshot, _ = cmd.Flags().GetString("snapshot")
		opts.trace, _ = cmd.Flags().GetBool("trace")

		return runScenario(cmd.OutOrStdout(), args[0], opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.StringP("catalog", "c", ".", "catalog directory")
	bindFlag(flags.Lookup("catalog"), catalogKey)
	flags.Int("ticks", 0, "override the number of ticks to run")
	bindFlag(flags.Lookup("ticks"), ticksKey)
	flags.String("record", "",
		"record tower activity into this SQLite file (without extension)")
	bindFlag(flags.Lookup("record"), recordKey)
	flags.Bool("monitor", false, "serve the monitoring web page while running")
	bindFlag(flags.Lookup("monitor"), monitorKey)
	flags.Int("port", 0, "port of the monitoring server, random if 0")
	bindFlag(flags.Lookup("port"), monitorPortKey)
	flags.Bool("open", false, "open the monitoring page in a browser")
	bindFlag(flags.Lookup("open"), monitorOpenKey)
	flags.String("resume", "",
		"start from a snapshot instead of the scenario's blocks")
	flags.String("snapshot", "", "save a snapshot of the world when done")
	flags.Bool("trace", false, "log every event the engine handles")
}

func runScenario(out io.Writer, scenarioPath string, opts runOptions) error {
	cat, err := catalog.Load(opts.catalogDir)
	if err != nil {
		return err
	}

	tuning, err := tuningFor(cat)
	if err != nil {
		return err
	}

	s, err := world.LoadScenario(scenarioPath)
	if err != nil {
		return err
	}

	ticks := s.Ticks
	if opts.ticks > 0 {
		ticks = opts.ticks
	}

	if ticks > tuning.TickLimit {
		return fmt.Errorf("%d ticks is more than the limit of %d",
			ticks, tuning.TickLimit)
	}

	engine := sim.NewSerialEngine()
	if opts.trace {
		engine.AcceptHook(sim.NewEventLogger(log.Default()))
	}

	w := world.MakeBuilder().
		WithEngine(engine).
		WithFinder(cat.Recipes).
		WithProcessInterval(tuning.ProcessInterval).
		WithTankCapacity(tuning.TankCapacity).
		WithTransferRate(tuning.TransferRate).
		Build("World")

	if opts.record != "" {
		recorder := datarecording.New(opts.record)
		towerRecorder := datarecording.NewTowerRecorder(engine, recorder)
		w.AcceptHook(towerRecorder)
		w.AcceptTowerHook(towerRecorder)

		execRecorder := datarecording.NewExecRecorder(recorder)
		execRecorder.Start()
		execRecorder.Note("Scenario", scenarioPath)
		execRecorder.Note("Catalog", cat.Dir)
		execRecorder.Note("Ticks", strconv.Itoa(ticks))

		defer func() {
			execRecorder.End()
			recorder.Flush()
		}()
	}

	if err := populate(w, s, cat, opts.resume); err != nil {
		return err
	}

	var bar *monitoring.ProgressBar
	if opts.monitor {
		m := monitoring.NewMonitor().WithPortNumber(opts.port)
		m.RegisterEngine(engine)
		m.RegisterWorld(w)
		m.StartServer()

		if opts.open {
			if err := m.OpenInBrowser(); err != nil {
				log.Printf("cannot open browser: %v", err)
			}
		}

		name := cmp.Or(s.Name, filepath.Base(scenarioPath))
		bar = m.CreateProgressBar(name, uint64(ticks))
		defer m.CompleteProgressBar(bar)
	}

	if err := step(w, ticks, tuning.ProcessInterval, bar); err != nil {
		return err
	}

	printTowers(out, w)

	if opts.snapshot != "" {
		return saveSnapshot(w, opts.snapshot)
	}

	return nil
}

func populate(
	w *world.World,
	s world.Scenario,
	cat *catalog.Catalog,
	resume string,
) error {
	if resume == "" {
		return w.Apply(s, cat.Molecules)
	}

	f, err := os.Open(resume)
	if err != nil {
		return err
	}
	defer f.Close()

	return w.LoadSnapshot(f, cat.Molecules)
}

// step runs the world one process interval at a time so that the progress
// bar moves while the engine is busy.
func step(w *world.World, ticks, chunk int, bar *monitoring.ProgressBar) error {
	for done := 0; done < ticks; {
		n := min(chunk, ticks-done)

		if err := w.Run(n); err != nil {
			return err
		}

		done += n

		if bar != nil {
			bar.IncrementFinished(uint64(n))
		}
	}

	return nil
}

func saveSnapshot(w *world.World, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := w.SaveSnapshot(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func printTowers(out io.Writer, w *world.World) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Tower", "Stage", "Fluid", "Amount", "Recipe",
		"Last Result"})
	table.SetBorder(false)

	for _, t := range w.Towers() {
		recipeID := "-"
		if r := t.LastRecipe(); r != nil {
			recipeID = r.ID
		}

		last := "-"
		if res := t.LastResult(); res.OK || res.Reason != tower.Distilled {
			last = res.Reason.String()
		}

		for i, s := range t.Stages() {
			content := s.Tank().Fluid()

			name, amount := "-", "0"
			if !content.IsEmpty() {
				name, amount = content.Fluid, strconv.Itoa(content.Amount)
			}

			table.Append([]string{
				t.ControllerPos().String(),
				strconv.Itoa(i),
				name,
				amount,
				recipeID,
				last,
			})
		}
	}

	table.Render()
}
