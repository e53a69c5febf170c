package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/MrEthical07/bitmask"
	"github.com/apex/log"
	"github.com/spf13/cobra"
)

type binaryOp func(bitmask.Mask, bitmask.Mask) (bitmask.Mask, error)

var operators = map[string]binaryOp{
	"and":    bitmask.Mask.And,
	"andnot": bitmask.Mask.AndNot,
	"or":     bitmask.Mask.Or,
	"xor":    bitmask.Mask.Xor,
}

func operatorNames() []string {
	names := make([]string, 0, len(operators))
	for name := range operators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newParseCmd() *cobra.Command {
	var unaligned bool

	cmd := &cobra.Command{
		Use:   "parse BITS",
		Short: "Parse a bit string and print its encodings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := bitmask.FromBitString(args[0], unaligned)
			if err != nil {
				return err
			}
			if len(args[0]) != m.Len() {
				log.Debugf("padded %d bits to %d", len(args[0]), m.Len())
			}
			printMask(cmd.OutOrStdout(), m)
			return nil
		},
	}
	cmd.Flags().BoolVar(&unaligned, "unaligned", false, "Pad bit strings whose length is not a multiple of 8")
	return cmd
}

func newCombineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "combine OP A B",
		Short: "Combine two bit strings with and, andnot, or or xor",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := operators[strings.ToLower(args[0])]
			if !ok {
				return fmt.Errorf("unknown operator %q (want one of %s)", args[0], strings.Join(operatorNames(), ", "))
			}

			a, err := bitmask.FromBitString(args[1], false)
			if err != nil {
				return fmt.Errorf("first operand: %w", err)
			}
			b, err := bitmask.FromBitString(args[2], false)
			if err != nil {
				return fmt.Errorf("second operand: %w", err)
			}

			log.WithFields(log.Fields{"op": args[0], "bits": a.Len()}).Debug("combining")
			out, err := op(a, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
}

func printMask(w io.Writer, m bitmask.Mask) {
	positions := make([]string, 0, m.Cardinality())
	for p := range m.Positions() {
		positions = append(positions, strconv.Itoa(p))
	}

	fmt.Fprintf(w, "bits:        %s\n", m.String())
	fmt.Fprintf(w, "length:      %d\n", m.Len())
	fmt.Fprintf(w, "cardinality: %d\n", m.Cardinality())
	fmt.Fprintf(w, "positions:   %s\n", strings.Join(positions, " "))
	fmt.Fprintf(w, "hex:         %s\n", hex.EncodeToString(m.Bytes()))
	fmt.Fprintf(w, "base64:      %s\n", base64.StdEncoding.EncodeToString(m.Bytes()))
}
