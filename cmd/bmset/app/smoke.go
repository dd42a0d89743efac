package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/hupe1980/bmset"
)

type smokeStep struct {
	op         bmset.Op
	value      int64
	wantStatus bmset.Status
	wantWas    bool
}

// smokeSteps is the reference scenario over the int16 range.
var smokeSteps = []smokeStep{
	{bmset.OpAdd, 10, bmset.StatusSuccess, false},
	{bmset.OpAdd, -9, bmset.StatusSuccess, false},
	{bmset.OpAdd, math.MaxInt16 + 1, bmset.StatusValueRange, false},
	{bmset.OpAdd, 10, bmset.StatusSuccess, true},
	{bmset.OpRemove, 10, bmset.StatusSuccess, true},
	{bmset.OpRemove, 11, bmset.StatusSuccess, false},
}

var errSmokeFailed = errors.New("smoke test failed")

func newSmokeCmd(e *env) *cobra.Command {
	var locked bool

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run the reference scenario over [-32768, 32767]",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []bmset.Option
			if locked {
				opts = append(opts, bmset.WithLocking())
			}
			return runSmoke(cmd, e, opts)
		},
	}
	cmd.Flags().BoolVar(&locked, "locked", false, "run against a locked set")

	return cmd
}

func runSmoke(cmd *cobra.Command, e *env, opts []bmset.Option) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := bmset.New(math.MinInt16, math.MaxInt16, opts...)
	e.logger.LogCreate(ctx, math.MinInt16, math.MaxInt16, s, err)
	if err != nil {
		return err
	}
	lg := e.logger.WithSet(s)

	failed := 0
	for i, st := range smokeSteps {
		was, err := applyOp(s, st.op, st.value)
		lg.LogOperation(ctx, st.op, st.value, was, err)

		status := bmset.StatusOf(err)
		ok := status == st.wantStatus && (status != bmset.StatusSuccess || was == st.wantWas)
		mark := "ok"
		if !ok {
			mark = "FAIL"
			failed++
		}
		_, _ = fmt.Fprintf(out, "%d. %s %d -> %s was_member=%t %s\n", i+1, st.op, st.value, status, was, mark)
	}

	cerr := s.Close()
	lg.LogClose(ctx, cerr)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d steps", errSmokeFailed, failed, len(smokeSteps))
	}
	_, _ = fmt.Fprintln(out, "PASS")
	return cerr
}

// applyOp dispatches op to the matching Set method.
func applyOp(s *bmset.Set, op bmset.Op, v int64) (bool, error) {
	switch op {
	case bmset.OpAdd:
		return s.Add(v)
	case bmset.OpRemove:
		return s.Remove(v)
	default:
		return s.IsElementOf(v)
	}
}
