package cmd

import (
	"fmt"

	"github.com/shouni/gemini-image-studio/pkg/prompt"

	"github.com/spf13/cobra"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "選択できる画風プリセットを表示します。",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range prompt.Styles() {
			ins := s.Instruction()
			if ins == "" {
				ins = "(no addition)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-15s %s\n", s, ins)
		}
		return nil
	},
}
