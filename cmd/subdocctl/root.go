// Package main implements subdocctl, a small command-line front end onto
// the subdoc engine for scripting and manual inspection.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentflare-ai/subdoc/internal/config"
	"github.com/agentflare-ai/subdoc/internal/logging"
)

type rootState struct {
	docPath    string
	configPath string
	jsonOut    bool

	cfg       config.Config
	requestID string
	log       zerolog.Logger
}

// NewRootCmd builds the subdocctl command tree.
func NewRootCmd() *cobra.Command {
	st := &rootState{}

	root := &cobra.Command{
		Use:           "subdocctl",
		Short:         "subdocctl inspects and edits a JSON document without fully parsing it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := st.init(); err != nil {
				return err
			}
			// The config file's json setting applies unless --json was given.
			if st.cfg.JSON && !cmd.Flags().Changed("json") {
				st.jsonOut = true
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&st.docPath, "doc", "-", "path to the JSON document, or - for stdin")
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "path to a subdocctl.yaml config file")
	root.PersistentFlags().BoolVar(&st.jsonOut, "json", false, "emit machine-readable JSON results")

	root.AddCommand(newGetCmd(st))
	root.AddCommand(newExistsCmd(st))
	root.AddCommand(newSetCmd(st))
	root.AddCommand(newDeleteCmd(st))
	root.AddCommand(newUpsertCmd(st))
	root.AddCommand(newAppendCmd(st))
	root.AddCommand(newPrependCmd(st))
	root.AddCommand(newUniqueAddCmd(st))
	root.AddCommand(newIncrCmd(st))

	return root
}

func (st *rootState) init() error {
	st.requestID = uuid.NewString()

	if st.configPath != "" {
		cfg, err := config.Load(st.configPath)
		if err != nil {
			return err
		}
		st.cfg = cfg
	} else {
		st.cfg = config.Default()
	}

	st.log = logging.NewConsole("subdocctl", st.requestID)
	lvl, err := zerolog.ParseLevel(st.cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	st.log = st.log.Level(lvl)
	return nil
}

// readDoc reads the target document from st.docPath, or stdin when it is
// "-" or empty.
func (st *rootState) readDoc(cmd *cobra.Command) ([]byte, error) {
	if st.docPath == "" || st.docPath == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(st.docPath)
}

// writeDoc writes an updated document back to st.docPath, or stdout when it
// is "-" or empty.
func (st *rootState) writeDoc(cmd *cobra.Command, doc []byte) error {
	if st.docPath == "" || st.docPath == "-" {
		_, err := cmd.OutOrStdout().Write(doc)
		return err
	}
	return os.WriteFile(st.docPath, doc, 0o644)
}

// reportStatus prints an operation's status and returns an error cobra
// should surface with a non-zero exit code, unless the status is Success.
func (st *rootState) reportStatus(cmd *cobra.Command, op, selector string, status fmt.Stringer) error {
	st.log.Debug().Str("op", op).Str("selector", selector).Str("status", status.String()).Msg("operation finished")
	if status.String() == "success" {
		return nil
	}
	if st.jsonOut {
		fmt.Fprintf(cmd.OutOrStdout(), `{"status":%q,"op":%q,"selector":%q}`+"\n", status, op, selector)
		return fmt.Errorf("%s: %s", op, status)
	}
	return fmt.Errorf("%s %q: %s", op, selector, status)
}
