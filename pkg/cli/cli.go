package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the contact-backend command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "contact-backend",
		Short:        "Contact form backend with Telegram relay",
		SilenceUsage: true,
	}

	root.AddCommand(
		NewServeCommand(),
		NewVersionCommand(),
	)

	return root
}
