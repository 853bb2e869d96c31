package main

import (
	"github.com/kk-code-lab/try/internal/config"
	"github.com/kk-code-lab/try/internal/shellsetup"
	"github.com/spf13/cobra"
)

func (c *cli) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Print the shell function that wraps try",
		Long: `Print a shell function named "try" for bash, zsh, sh, fish or PowerShell.
Add it to your shell startup, for example:

    eval "$(try init)"             # bash, zsh
    try init | source              # fish
    try init | Out-String | iex    # PowerShell

A path argument (or --path) is baked into the function as the tries root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := c.flags.path
			if len(args) == 1 {
				root = args[0]
			}
			if root != "" {
				resolved, err := config.ResolveRoot(root, nil)
				if err != nil {
					return err
				}
				root = resolved
			}
			return shellsetup.WriteInit(cmd.OutOrStdout(), c.flags.shell, shellsetup.Config{
				DetectParent: c.env.detectParent,
				Executable:   c.env.executable,
				Root:         root,
			})
		},
	}
}
