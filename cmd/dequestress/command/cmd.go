package dequestress

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vkngwrapper/arsenal/deque/memutils"
	"golang.org/x/exp/slog"
)

const (
	defaultOps        = 10000
	defaultBlockSize  = 64
	defaultMapSize    = 8
	defaultSeed       = 1
	defaultCheckEvery = 1000
)

// NewCmd creates a new dequestress command
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{}
	Init(cmd, viper.New())
	return cmd
}

// Init initializes the command
func Init(cmd *cobra.Command, v *viper.Viper) {
	cobra.CheckErr(configureOptions(cmd.Flags(), v))

	cmd.Use = "dequestress"
	cmd.Short = "Run a randomized workload against a block deque and report its memory use"
	cmd.Long = `Run a randomized workload against a block deque, checking every operation against a
plain slice, and report how the deque's blocks and block map were used.
  Environment variables:
    DEQUESTRESS_OPS=10000
    DEQUESTRESS_BLOCK_SIZE=64
    DEQUESTRESS_MAP_SIZE=8
    DEQUESTRESS_SEED=1
    DEQUESTRESS_MAX_BLOCKS=0`
	cmd.Example = `  dequestress
  dequestress --ops 1000000 --block-size 512
  dequestress --max-blocks 16 --block-size 4 --json`
	cmd.Args = cobra.NoArgs
	cmd.SilenceUsage = true

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		config, err := configFromViper(v)
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if v.GetBool("verbose") {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.HandlerOptions{Level: level}.NewTextHandler(cmd.ErrOrStderr()))

		report, err := Run(logger, config)
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), report, v.GetBool("json"))
	}
}

func configureOptions(flags *pflag.FlagSet, v *viper.Viper) error {
	flags.IntP("ops", "n", defaultOps, "number of random operations to run")
	flags.IntP("block-size", "b", defaultBlockSize, "elements per block, rounded up to a power of two")
	flags.Int("map-size", defaultMapSize, "initial number of block map slots")
	flags.Int64("seed", defaultSeed, "random seed")
	flags.Bool("symmetric", false, "double the block map in both directions when it grows")
	flags.Int("max-blocks", 0, "largest number of blocks the allocator may hand out, 0 for no limit")
	flags.Int("check-every", defaultCheckEvery, "number of operations between full consistency checks")
	flags.BoolP("verbose", "v", false, "log block map relocations")
	flags.Bool("json", false, "print the deque's statistics as JSON before it is destroyed")

	for _, name := range []string{"ops", "block-size", "map-size", "seed", "symmetric", "max-blocks", "check-every", "verbose", "json"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("DEQUESTRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return nil
}

func configFromViper(v *viper.Viper) (Config, error) {
	config := Config{
		Ops:        v.GetInt("ops"),
		BlockSize:  memutils.CeilPow2(v.GetInt("block-size")),
		MapSize:    v.GetInt("map-size"),
		Seed:       v.GetInt64("seed"),
		Symmetric:  v.GetBool("symmetric"),
		MaxBlocks:  v.GetInt("max-blocks"),
		CheckEvery: v.GetInt("check-every"),
	}

	if err := memutils.CheckPositive(config.Ops, "ops"); err != nil {
		return config, err
	}
	if err := memutils.CheckPositive(config.MapSize, "map-size"); err != nil {
		return config, err
	}

	return config, nil
}

func render(out io.Writer, report *Report, asJSON bool) error {
	opsTable := tablewriter.NewWriter(out)
	opsTable.SetHeader([]string{"Operation", "Count", "Rejected"})
	for _, op := range report.Ops {
		opsTable.Append([]string{op.Name, strconv.Itoa(op.Count), strconv.Itoa(op.Rejected)})
	}
	opsTable.Render()

	stats := report.Stats
	summary := tablewriter.NewWriter(out)
	summary.SetHeader([]string{"Metric", "Value"})
	summary.AppendBulk([][]string{
		{"Operations", strconv.Itoa(report.Operations)},
		{"Length", strconv.Itoa(report.Length)},
		{"Blocks", strconv.Itoa(stats.BlockCount)},
		{"Unused slots", strconv.Itoa(stats.UnusedSlots())},
		{"Map slots", strconv.Itoa(stats.MapSlotCount)},
		{"Headroom", fmt.Sprintf("%d front, %d back", stats.HeadroomFront, stats.HeadroomBack)},
		{"Relocations", strconv.Itoa(stats.Relocations)},
		{"Elapsed", report.Elapsed.String()},
		{"Debug validation", strconv.FormatBool(memutils.DebugEnabled)},
	})
	summary.Render()

	if asJSON {
		_, err := fmt.Fprintln(out, report.StatsJSON)
		return err
	}

	return nil
}
