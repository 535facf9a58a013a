package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentflare-ai/subdoc"
)

func newGetCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "get <selector>",
		Short: "print the value at selector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := st.readDoc(cmd)
			if err != nil {
				return err
			}
			loc, status, err := subdoc.Get(doc, args[0])
			if err != nil {
				return err
			}
			if err := st.reportStatus(cmd, "get", args[0], status); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(doc[loc.Begin:loc.End()]))
			return nil
		},
	}
}

func newExistsCmd(st *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <selector>",
		Short: "report whether selector names a value in the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := st.readDoc(cmd)
			if err != nil {
				return err
			}
			ok, status, err := subdoc.Exists(doc, args[0])
			if err != nil {
				return err
			}
			st.log.Debug().Str("selector", args[0]).Str("status", status.String()).Msg("exists checked")
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}
