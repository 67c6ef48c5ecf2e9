package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ehr/backoffice/internal/domain/catalog"
	"github.com/ehr/backoffice/internal/domain/outcome"
)

func simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "simulate [verify|follow-up|coordinate]",
		Short:     "Run one operation many times and print the outcome distribution",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"verify", "follow-up", "coordinate"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetInt("id")
			trials, _ := cmd.Flags().GetInt("trials")
			seed, _ := cmd.Flags().GetUint64("seed")
			if trials < 1 {
				return fmt.Errorf("--trials must be at least 1")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, pool, err := openCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if pool != nil {
				defer pool.Close()
			}

			opts := []outcome.Option{outcome.WithVerificationSuccessRate(cfg.VerificationSuccessRate)}
			if seed != 0 {
				opts = append(opts, outcome.WithRand(rand.New(rand.NewPCG(seed, seed))))
			}
			gen, err := outcome.NewGenerator(opts...)
			if err != nil {
				return err
			}

			dist, err := simulate(gen, store, args[0], id, trials)
			if err != nil {
				return err
			}
			return dist.write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().Int("id", 0, "Patient, claim or care-task id")
	cmd.Flags().Int("trials", 1000, "Number of runs")
	cmd.Flags().Uint64("seed", 0, "Seed for a reproducible run (0 uses the shared source)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

type distribution struct {
	trials     int
	counts     map[string]int
	confidence int
}

func (d *distribution) add(label string, confidence int) {
	d.counts[label]++
	d.confidence += confidence
}

// simulate runs op against record id trials times, bucketing each run by the
// part of the result that varies between runs.
func simulate(gen *outcome.Generator, store *catalog.Store, op string, id, trials int) (*distribution, error) {
	d := &distribution{trials: trials, counts: make(map[string]int)}

	switch op {
	case "verify":
		p, err := store.Patient(id)
		if err != nil {
			return nil, err
		}
		for i := 0; i < trials; i++ {
			res := gen.VerifyInsurance(p).Result
			label := string(res.VerificationStatus)
			if res.FailureReason != "" {
				label += ": " + res.FailureReason
			}
			d.add(label, res.ConfidenceScore)
		}
	case "follow-up":
		c, err := store.Claim(id)
		if err != nil {
			return nil, err
		}
		for i := 0; i < trials; i++ {
			res := gen.FollowUpClaim(c).Result
			d.add(res.NewStatus+": "+res.ActionTaken, res.ConfidenceScore)
		}
	case "coordinate":
		t, err := store.CareTask(id)
		if err != nil {
			return nil, err
		}
		for i := 0; i < trials; i++ {
			co := gen.CoordinateCare(t)
			label := co.Channel.String()
			if s := co.Result.PatientSatisfaction; s != "" {
				label += ": " + s
			}
			d.add(label, co.Result.ConfidenceScore)
		}
	default:
		return nil, fmt.Errorf("unknown operation %q (want verify, follow-up or coordinate)", op)
	}

	return d, nil
}

func (d *distribution) labels() []string {
	labels := make([]string, 0, len(d.counts))
	for l := range d.counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if d.counts[labels[i]] != d.counts[labels[j]] {
			return d.counts[labels[i]] > d.counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}

func (d *distribution) write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OUTCOME\tCOUNT\tSHARE")
	for _, l := range d.labels() {
		n := d.counts[l]
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", l, n, 100*float64(n)/float64(d.trials))
	}
	fmt.Fprintln(tw, strings.Repeat("-", 6)+"\t\t")
	fmt.Fprintf(tw, "trials\t%d\t\n", d.trials)
	fmt.Fprintf(tw, "mean confidence\t%.1f\t\n", float64(d.confidence)/float64(d.trials))
	return tw.Flush()
}
