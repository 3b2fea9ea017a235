package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved settings as YAML, or save them with --save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.resolve(cmd)
			if err != nil {
				return err
			}
			if save {
				if err := cfg.Save(root.configPath); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", root.configPath)
				return nil
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the resolved settings to the config file")
	return cmd
}
