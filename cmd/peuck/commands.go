// File: cmd/peuck/commands.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/momentics/peuck/api"
	"github.com/momentics/peuck/control"
	"github.com/momentics/peuck/facade"
)

type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "peuck",
		Short:         "CPU topology and thread affinity diagnostics",
		Version:       fmt.Sprintf("%s (commit: %s)", version, gitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file path")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log.format", flags.Lookup("log-format"))

	root.AddCommand(
		c.infoCmd(),
		c.threadsCmd(),
		c.maskCmd(),
		c.pinCmd(),
		c.logicalCmd(),
		c.statsCmd(),
	)
	return root
}

// run builds the facade, hands it to fn and closes it.
func (c *cli) run(cmd *cobra.Command, fn func(p *facade.Peuck, out io.Writer) error) error {
	cfg, err := control.Load(c.v, c.cfgFile)
	if err != nil {
		return err
	}
	p, err := facade.New(cfg, facade.WithOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer p.Close(context.Background())
	return fn(p, cmd.OutOrStdout())
}

func (c *cli) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show platform availability, hardware and core topology",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(p *facade.Peuck, out io.Writer) error {
				ctrl := p.Affinity()
				fmt.Fprintf(out, "platform:  %v\n", ctrl.Available())
				fmt.Fprintf(out, "cores:     %d\n", ctrl.CoreCount())
				fmt.Fprintf(out, "hardware:  %s\n", ctrl.CPUHardwareName())

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "CPU\tFREQ(kHz)\tCLUSTER")
				for _, core := range ctrl.Topology() {
					fmt.Fprintf(tw, "%d\t%d\t%d\n", core.Index, core.Frequency, core.ClusterID)
				}
				return tw.Flush()
			})
		},
	}
}

func (c *cli) threadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "threads",
		Short: "List the threads of this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(p *facade.Peuck, out io.Writer) error {
				threads := p.Affinity().EnumerateThreads()
				tids := make([]int, 0, len(threads))
				for tid := range threads {
					tids = append(tids, tid)
				}
				sort.Ints(tids)

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TID\tNAME")
				for _, tid := range tids {
					fmt.Fprintf(tw, "%d\t%s\n", tid, threads[tid])
				}
				return tw.Flush()
			})
		},
	}
}

func (c *cli) maskCmd() *cobra.Command {
	var cluster string
	var cores int
	cmd := &cobra.Command{
		Use:   "mask",
		Short: "Print the affinity mask for a cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hint, err := api.ParseClusterHint(cluster)
			if err != nil {
				return err
			}
			return c.run(cmd, func(p *facade.Peuck, out io.Writer) error {
				n := cores
				if !cmd.Flags().Changed("cores") {
					n = p.Affinity().CoreCount()
				}
				mask := p.Affinity().ResolveClusterMask(hint, n)
				fmt.Fprintf(out, "%s cores=%d cpus=%v\n", mask, n, mask.CPUs())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", "all", "cluster (all, little, big)")
	cmd.Flags().IntVar(&cores, "cores", 0, "core count (detected by default)")
	return cmd
}

func (c *cli) pinCmd() *cobra.Command {
	var tid int
	var rawMask string
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Apply an affinity mask to a thread id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tid <= 0 {
				return fmt.Errorf("--tid must be positive: %w", api.ErrInvalidArgument)
			}
			mask, err := api.ParseAffinityMask(rawMask)
			if err != nil {
				return err
			}
			return c.run(cmd, func(p *facade.Peuck, out io.Writer) error {
				if !p.Affinity().Available() {
					return fmt.Errorf("affinity control: %w", api.ErrNotSupported)
				}
				p.Affinity().SetAffinityForTid(tid, mask)
				fmt.Fprintf(out, "tid %d -> %s\n", tid, mask)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&tid, "tid", 0, "thread id")
	cmd.Flags().StringVar(&rawMask, "mask", "", "affinity mask (decimal, 0x hex or 0b binary)")
	_ = cmd.MarkFlagRequired("tid")
	_ = cmd.MarkFlagRequired("mask")
	return cmd
}

func (c *cli) logicalCmd() *cobra.Command {
	var rawThread, rawCluster string
	cmd := &cobra.Command{
		Use:   "logical",
		Short: "Move a logical application thread to a cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			thread, err := api.ParseLogicalThread(rawThread)
			if err != nil {
				return err
			}
			hint, err := api.ParseClusterHint(rawCluster)
			if err != nil {
				return err
			}
			return c.run(cmd, func(p *facade.Peuck, out io.Writer) error {
				ctrl := p.Affinity()
				if !ctrl.Available() {
					return fmt.Errorf("affinity control: %w", api.ErrNotSupported)
				}
				name, _ := ctrl.ThreadNames().Lookup(thread)
				matched := 0
				for _, threadName := range ctrl.EnumerateThreads() {
					if name != "" && strings.HasPrefix(threadName, name) {
						matched++
					}
				}
				if matched == 0 {
					return fmt.Errorf("thread %s (%q): %w", thread, name, api.ErrNotFound)
				}
				ctrl.SetAffinityForLogicalThread(thread, hint)
				fmt.Fprintf(out, "%s (%d threads) -> %s\n", thread, matched, hint)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rawThread, "thread", "", "logical thread (main, gfx, choreographer, worker, background, audio-mixer, audio-streamer)")
	cmd.Flags().StringVar(&rawCluster, "cluster", "all", "cluster (all, little, big)")
	_ = cmd.MarkFlagRequired("thread")
	return cmd
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Dump debug probes and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(p *facade.Peuck, out io.Writer) error {
				writeSorted(out, p.Control().GetConfig())
				writeSorted(out, p.Control().Stats())
				return nil
			})
		},
	}
}

func writeSorted(out io.Writer, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s=%v\n", k, m[k])
	}
}
