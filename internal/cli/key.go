package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lunar/internal/config"
	"github.com/tartampluch/go-lunar/internal/credentials"
	"golang.org/x/term"
)

func (a *App) keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the advisory API key stored in the OS keyring",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set",
			Short: "Read the API key from the terminal or stdin and store it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				key, err := a.readKey()
				if err != nil {
					return err
				}
				if err := credentials.Set(key); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), config.MsgKeyStored)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Remove the stored API key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := credentials.Delete(); err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), config.MsgKeyDeleted)
				return nil
			},
		},
	)
	return cmd
}

// readKey prompts without echo on a terminal and reads one line otherwise.
func (a *App) readKey() (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.errOut, config.MsgKeyPrompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.errOut)
		if err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrKeyRead, err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: %w", config.ErrKeyRead, err)
	}
	return strings.TrimSpace(line), nil
}
