package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentflare-ai/subdoc"
)

// mutate runs op against the document read from st.docPath, writes the
// result back out on success, and maps a non-success status to a non-zero
// exit via st.reportStatus.
func (st *rootState) mutate(cmd *cobra.Command, op, selector string, run func([]byte) ([]byte, subdoc.Status, error)) error {
	doc, err := st.readDoc(cmd)
	if err != nil {
		return err
	}
	out, status, err := run(doc)
	if err != nil {
		return err
	}
	if err := st.reportStatus(cmd, op, selector, status); err != nil {
		return err
	}
	return st.writeDoc(cmd, out)
}

func newSetCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "set <selector> <value>",
		Short: "replace the value at selector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.mutate(cmd, "set", args[0], func(doc []byte) ([]byte, subdoc.Status, error) {
				return subdoc.Replace(doc, args[0], []byte(args[1]))
			})
		},
	}
}

func newDeleteCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <selector>",
		Short: "remove the value at selector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.mutate(cmd, "delete", args[0], func(doc []byte) ([]byte, subdoc.Status, error) {
				return subdoc.Delete(doc, args[0])
			})
		},
	}
}

func newUpsertCmd(st *rootState) *cobra.Command {
	var createParents bool
	cmd := &cobra.Command{
		Use:   "upsert <selector> <value>",
		Short: "insert or replace an object member at selector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.mutate(cmd, "upsert", args[0], func(doc []byte) ([]byte, subdoc.Status, error) {
				return subdoc.DictUpsert(doc, args[0], []byte(args[1]), createParents)
			})
		},
	}
	cmd.Flags().BoolVar(&createParents, "create-parents", false, "synthesize missing intermediate objects")
	return cmd
}

func newAppendCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "append <selector> <value>",
		Short: "append value as the last element of the array at selector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.mutate(cmd, "append", args[0], func(doc []byte) ([]byte, subdoc.Status, error) {
				return subdoc.ArrayAppend(doc, args[0], []byte(args[1]))
			})
		},
	}
}

func newPrependCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "prepend <selector> <value>",
		Short: "prepend value as the first element of the array at selector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.mutate(cmd, "prepend", args[0], func(doc []byte) ([]byte, subdoc.Status, error) {
				return subdoc.ArrayPrepend(doc, args[0], []byte(args[1]))
			})
		},
	}
}

func newUniqueAddCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "unique-add <selector> <value>",
		Short: "append value to the array at selector unless already present",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.mutate(cmd, "unique-add", args[0], func(doc []byte) ([]byte, subdoc.Status, error) {
				return subdoc.ArrayAddUnique(doc, args[0], []byte(args[1]))
			})
		},
	}
}

func newIncrCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "incr <selector> <delta>",
		Short: "add delta to the integer value at selector",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return err
			}
			return st.mutate(cmd, "incr", args[0], func(doc []byte) ([]byte, subdoc.Status, error) {
				return subdoc.Increment(doc, args[0], delta)
			})
		},
	}
}
