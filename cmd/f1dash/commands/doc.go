// Package commands defines the f1dash CLI.
//
// Commands
//
//   - tui            Terminal dashboard (default)
//   - serve          Browser dashboard over HTTP
//   - drivers        List, show, create and delete drivers
//   - constructors   List, show, create and delete constructors
//   - standings      List constructor standings
//   - chart          Print the wins or points chart
//
// # Implementation
//
// The root command loads configuration (flags over environment over .env),
// opens the logger, starts tracing and builds the API client before any
// subcommand runs. The terminal UI logs to a file so the screen stays clean;
// every other command logs JSON to stderr.
package commands
