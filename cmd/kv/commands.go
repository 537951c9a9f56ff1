package kv

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	kvlib "github.com/ValentinKolb/bKV/lib/kv"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if head, err := rpcNode.Append([]kvlib.Modification{kvlib.Update(key, value)}); err != nil {
				return err
			} else {
				fmt.Printf("set successfully, head=%d\n", head)
			}
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if head, err := rpcNode.Append([]kvlib.Modification{kvlib.Delete(key)}); err != nil {
				return err
			} else {
				fmt.Printf("delete successfully, head=%d\n", head)
			}
			return nil
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Reads the head and entry count of the node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if info, err := rpcNode.Info(); err != nil {
				return err
			} else {
				fmt.Printf("head=%d, size=%d\n", info.Head, info.Size)
			}
			return nil
		},
	}
	fetchCmd = &cobra.Command{
		Use:   "fetch [begin] [end] [head]",
		Short: "Reads a chunk of entries plus the modifications newer than the given head",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			begin, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("begin must be a number: %w", err)
			}
			end, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("end must be a number: %w", err)
			}
			head, err := strconv.ParseUint(args[2], 10, 32)
			if err != nil {
				return fmt.Errorf("head must be a number: %w", err)
			}

			result, err := rpcNode.Fetch(begin, end, uint32(head))
			if err != nil {
				return err
			}

			fmt.Printf("head=%d\n", result.Head)
			for _, e := range result.Entries {
				fmt.Printf("entry: %s - %s\n", e.Key, e.Value)
			}
			for _, m := range result.Diff {
				fmt.Printf("diff: %s\n", m.String())
			}
			return nil
		},
	}
)
