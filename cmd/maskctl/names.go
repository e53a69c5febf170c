package main

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/MrEthical07/bitmask"
	"github.com/MrEthical07/bitmask/flags"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var domainPath string

	cmd := &cobra.Command{
		Use:   "encode --domain FILE NAME...",
		Short: "Encode flag names into a mask",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := loadDomain(domainPath)
			if err != nil {
				return err
			}

			list := make([]flags.Named, 0, len(args))
			for _, name := range args {
				f, ok := domain.Lookup(name)
				if !ok {
					return fmt.Errorf("%w: %q is not a member of %q", flags.ErrTypeMismatch, name, domain.Name())
				}
				list = append(list, f)
			}

			m, err := flags.NewProjector(domain).Encode(list...)
			if err != nil {
				return err
			}
			printMask(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().StringVar(&domainPath, "domain", "", "TOML file defining the flag domain")
	_ = cmd.MarkFlagRequired("domain")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var (
		domainPath string
		isBase64   bool
	)

	cmd := &cobra.Command{
		Use:   "decode --domain FILE [--base64] VALUE",
		Short: "Decode a bit string or base64 payload into flag names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := loadDomain(domainPath)
			if err != nil {
				return err
			}

			var m bitmask.Mask
			if isBase64 {
				raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(args[0]))
				if err != nil {
					return fmt.Errorf("%w: %v", bitmask.ErrInvalidArgument, err)
				}
				m = bitmask.FromBinary(raw)
			} else if m, err = bitmask.FromBitString(args[0], true); err != nil {
				return err
			}

			if m.Len() != domain.Length() {
				return fmt.Errorf("%w: mask has %d bits, domain %q needs %d",
					bitmask.ErrInvalidArgument, m.Len(), domain.Name(), domain.Length())
			}

			list, err := flags.NewProjector(domain).Decode(m)
			if err != nil {
				return err
			}
			for _, f := range list {
				fmt.Fprintln(cmd.OutOrStdout(), f.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&domainPath, "domain", "", "TOML file defining the flag domain")
	cmd.Flags().BoolVar(&isBase64, "base64", false, "Treat VALUE as base64 of the binary encoding")
	_ = cmd.MarkFlagRequired("domain")
	return cmd
}
