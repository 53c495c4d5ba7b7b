// Package commands defines the nexus CLI and wires dependencies for subcommands.
//
// Commands
//
//   - register, login   Create an account or sign in (signed-out only)
//   - logout, whoami    Forget or show the stored session
//   - dashboard         Balances, recent transactions, budgets, goals, health
//   - accounts          List accounts; add
//   - transactions      List with filters; add, export, import
//   - budgets           List; add, delete, export, import
//   - goals             List; add, progress
//   - investments       Portfolio with totals; add, delete
//   - analytics         insights, forecast, health, report
//   - notifications     List; read, read-all
//   - recurring         Scheduled bills
//   - predict           Classify a description (no sign-in needed)
//   - model-info        Describe the classifier (no sign-in needed)
//
// # Implementation
//
// The root command loads settings, restores the stored session and builds the
// dependency graph (credential store, API client, session manager, dashboard
// loader, importers) before any subcommand runs. Each command carries a guard
// annotation. A guard that redirects prints a hint on stderr and stops the
// command; a session that expires mid-command prints the same hint once.
//
// Results print as tables by default; -o json and -o yaml print the API
// objects instead and silence the informational lines.
package commands
