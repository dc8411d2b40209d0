/*
main.go - Command-line calculators

PURPOSE:
  Runs the settlement calculators from a terminal and prints the same
  plain-text breakdowns the API returns with ?format=text. Useful for
  checking a figure without starting the server, and for importing the
  published CSV files into the SQLite database.

COMMANDS:
  calc datasets      Latest value of every reference table
  calc injury        Ley 24.557 indemnity
  calc severance     Ley 20.744 dismissal settlement
  calc index         Update an amount by RIPTE, Tasa Activa and IPC
  calc wage-base     IBM from monthly salaries
  calc jus           Convert pesos to JUS
  calc regulation    Ley 24.432 fee sheet
  calc import        Import the CSV files into the SQLite database

GLOBAL FLAGS:
  --config     Configuration file (same keys as the server)
  --data       Reference data directory, overrides data.dir
  --db         SQLite database path, overrides data.database
  --log-level  Overrides logging.level

EXAMPLES:
  calc injury --pmi 2024-03-10 --final 2024-06-20 --ibm 850000 --age 40 --disability 12.5
  calc wage-base --pmi 2024-03-15 --salary 2024-01=100000 --salary 2024-02=80000
  calc regulation --amount 10000000 --date 2024-04-01 --plaintiff 12 --expert 5:vat

SEE ALSO:
  - commands.go: Command definitions
  - report/: Breakdown rendering
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
