package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/bmset"
)

type opArg struct {
	op    bmset.Op
	value int64
}

func newApplyCmd(e *env) *cobra.Command {
	var rf rangeFlags

	cmd := &cobra.Command{
		Use:   "apply [op:value]...",
		Short: "Apply a sequence of operations to a new set",
		Long: `
	Creates a set over [--min, --max] and applies each argument in order.
	An argument is op:value where op is add, remove or query.
	One line is printed per operation: op, value, status and the membership
	of the value immediately before the operation.
	`,
		Example: "  bmset apply --min -100 --max 100 add:10 query:10 remove:10 add:101",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := make([]opArg, 0, len(args))
			for _, a := range args {
				op, err := parseOpArg(a)
				if err != nil {
					return err
				}
				ops = append(ops, op)
			}
			return runApply(cmd, e, &rf, ops)
		},
	}
	rf.register(cmd, 0, 1023, false)

	return cmd
}

func parseOpArg(s string) (opArg, error) {
	name, val, ok := strings.Cut(s, ":")
	if !ok {
		return opArg{}, fmt.Errorf("invalid operation %q: want op:value", s)
	}

	var op bmset.Op
	switch strings.ToLower(name) {
	case "add":
		op = bmset.OpAdd
	case "remove", "rm":
		op = bmset.OpRemove
	case "query", "is":
		op = bmset.OpNone
	default:
		return opArg{}, fmt.Errorf("invalid operation %q: unknown op %q", s, name)
	}

	v, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return opArg{}, fmt.Errorf("invalid operation %q: %w", s, err)
	}
	return opArg{op: op, value: v}, nil
}

func runApply(cmd *cobra.Command, e *env, rf *rangeFlags, ops []opArg) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := bmset.New(rf.min, rf.max, rf.options()...)
	e.logger.LogCreate(ctx, rf.min, rf.max, s, err)
	if err != nil {
		return err
	}
	lg := e.logger.WithSet(s)

	for _, o := range ops {
		was, err := applyOp(s, o.op, o.value)
		lg.LogOperation(ctx, o.op, o.value, was, err)

		member := "-"
		if bmset.MemberValid(err) {
			member = strconv.FormatBool(was)
		}
		_, _ = fmt.Fprintf(out, "%s\t%d\t%s\t%s\n", o.op, o.value, bmset.StatusOf(err), member)
	}

	err = s.Close()
	lg.LogClose(ctx, err)
	return err
}
