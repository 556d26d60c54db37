package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/etnz/cashflow/config"
)

// RunExtension attempts to find and execute an external cfs-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The extension receives the settings in the CFS_* environment variables
// understood by config.Load.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "cfs-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	cmd.Env = append(os.Environ(),
		config.EnvBookFile+"="+cfg.BookFile,
		config.EnvCurrency+"="+cfg.Currency,
		config.EnvGranularity+"="+cfg.Granularity,
		config.EnvLiquidityWindow+"="+strconv.Itoa(cfg.LiquidityWindow),
		config.EnvDueHorizon+"="+strconv.Itoa(cfg.DueHorizon),
		config.EnvLogLevel+"="+extensionLogLevel(),
	)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		// If it's not an ExitError or we can't get the status, report a generic error
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

func extensionLogLevel() string {
	if *Verbose {
		return "debug"
	}
	return cfg.LogLevel
}
