package cli

import (
	"fmt"

	"github.com/dotnot-labs/regui/internal/proxyconfig"
	"github.com/spf13/cobra"
)

var (
	proxyMergeOutput string
	proxyNameParts   int
)

func init() {
	proxyMergeCmd.Flags().StringVarP(&proxyMergeOutput, "output", "o", "", "Output file")
	_ = proxyMergeCmd.MarkFlagRequired("output")
	proxyNameCmd.Flags().IntVar(&proxyNameParts, "parts", proxyconfig.DefaultNameParts, "Number of domain parts")

	proxyCmd.AddCommand(proxyMergeCmd)
	proxyCmd.AddCommand(proxyNameCmd)
	proxyCmd.AddCommand(proxyListCmd)
	rootCmd.AddCommand(proxyCmd)
}

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Registry proxy configuration utilities",
	Long: `Work with the proxy configuration file: a YAML document with a 'common'
mapping shared by every proxy and a 'registries' mapping of per-proxy
overrides.`,
}

var proxyMergeCmd = &cobra.Command{
	Use:   "merge <config> <registry>",
	Short: "Merge common config with a registry override",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := proxyconfig.Load(args[0])
		if err != nil {
			return err
		}
		merged, err := f.Merge(args[1])
		if err != nil {
			return err
		}
		return proxyconfig.WriteYAML(proxyMergeOutput, merged)
	},
}

var proxyNameCmd = &cobra.Command{
	Use:   "name <config> <registry>",
	Short: "Derive registry name from remoteurl",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := proxyconfig.Load(args[0])
		if err != nil {
			return err
		}
		name, err := f.RegistryName(args[1], proxyNameParts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

var proxyListCmd = &cobra.Command{
	Use:   "list <config>",
	Short: "List registry keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := proxyconfig.Load(args[0])
		if err != nil {
			return err
		}
		for _, name := range f.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
