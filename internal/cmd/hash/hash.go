package hash

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var cost int

// readPassword asks twice on a terminal, or reads one line otherwise.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	fmt.Fprint(os.Stderr, "Again: ")
	again, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if string(pw) != string(again) {
		return "", errors.New("passwords do not match")
	}
	return string(pw), nil
}

var HashCmd = &cobra.Command{
	Use:   "hash [PASSWORD...]",
	Short: "Generate bcrypt hash(s) for the [accounts] section of the access config",
	Long: "Generate bcrypt hash(s) for the [accounts] section of the access config.\n" +
		"Without arguments the password is read from the terminal.",
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 0 {
			pw, err := readPassword()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Read password failed:", err)
				os.Exit(2)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Generate fail:", err)
				os.Exit(2)
			}
			fmt.Fprintln(os.Stdout, string(hash))
			return
		}

		for _, pw := range args {
			hash, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Generate fail:", pw, " err:", err)
			} else {
				fmt.Fprintln(os.Stdout, pw+":", string(hash))
			}
		}
	},
}

func init() {
	HashCmd.Flags().IntVarP(&cost, "cost", "", bcrypt.DefaultCost, "bcrypt cost")
}
