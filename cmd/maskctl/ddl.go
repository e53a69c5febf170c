package main

import (
	"fmt"

	"github.com/MrEthical07/bitmask/column"
	"github.com/apex/log"
	"github.com/spf13/cobra"
)

func newDDLCmd() *cobra.Command {
	var (
		dialectName string
		byteLen     int
		debug       bool
		domainPath  string
	)

	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Print the column type for a mask",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dialect, err := column.ParseDialect(dialectName)
			if err != nil {
				return err
			}

			if domainPath != "" {
				domain, err := loadDomain(domainPath)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("bytes") {
					log.Warnf("--bytes is ignored, domain %q sets the width", domain.Name())
				}
				byteLen = column.NewEnum("", domain).ByteLen()
			}

			var codec column.Codec = column.Binary{}
			if debug {
				codec = column.Debug{}
			}

			decl, err := codec.Declaration(dialect, byteLen)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"codec": codec.Name(), "dialect": string(dialect)}).Debug("declaration")
			fmt.Fprintln(cmd.OutOrStdout(), decl)
			return nil
		},
	}
	cmd.Flags().StringVar(&dialectName, "dialect", "mysql", "SQL dialect: mysql, postgres or sqlite")
	cmd.Flags().IntVar(&byteLen, "bytes", 1, "Mask width in bytes")
	cmd.Flags().BoolVar(&debug, "debug", false, "Use the human-readable text column")
	cmd.Flags().StringVar(&domainPath, "domain", "", "Size the column for the domain in this TOML file")
	return cmd
}
