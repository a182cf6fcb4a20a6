//go:build unix

package reloadserver

import (
	"fmt"
	"os"
	"slices"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"
)

var serverPid int32

// isServer matches processes started from the same binary with the serve
// or quick-serve command.
func isServer(p *process.Process, selfPath string) bool {
	path, err := p.Exe()
	if err != nil || path != selfPath {
		return false // pid 1 do hate this
	}

	args, err := p.CmdlineSlice()
	if err != nil {
		return false
	}
	return slices.Contains(args, "serve") || slices.Contains(args, "quick-serve")
}

func findProcesses() (pids []int32, err error) {
	ps, err := process.Processes()
	if err != nil {
		return nil, err
	}

	selfPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	selfPid := int32(os.Getpid())

	for _, p := range ps {
		if p.Pid != selfPid && isServer(p, selfPath) {
			pids = append(pids, p.Pid)
		}
	}
	return
}

var ReloadConfigCmd = &cobra.Command{
	Use:   "reload-server",
	Short: "Tell a running server to reload its config",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if serverPid <= 0 {
			pids, err := findProcesses()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Find server process failed: %v\n", err)
				os.Exit(2)
			}

			switch len(pids) {
			case 0:
				fmt.Fprintf(os.Stderr, "No server found. Try specifying the pid manually.\n")
				os.Exit(1)
			case 1:
				serverPid = pids[0]
			default:
				fmt.Fprintf(os.Stderr, "Found %d servers %v. Specify the pid with -p.\n", len(pids), pids)
				os.Exit(1)
			}
		}

		p, err := process.NewProcess(serverPid)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Send signal failed: %v\n", err)
			os.Exit(2)
		}

		err = p.SendSignal(syscall.SIGHUP)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Send signal failed: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("Reload sent to %d\n", serverPid)
	},
}

func init() {
	ReloadConfigCmd.Flags().Int32VarP(&serverPid, "pid", "p", 0, "Server pid (try find when 0 or negative)")
}
