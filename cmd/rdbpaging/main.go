// Package main provides a CLI for checking and running order by schemas.
//
// The CLI supports:
//   - validate: Compile a YAML order by schema and list its fields
//   - plan: Print the joins, ORDER BY and page clause for a request
//   - query: Run a paginated query against a database
//   - config show: Print the effective configuration
//
// Usage:
//
//	rdbpaging [flags] <command>
//
// Only query needs database access, configured in rdbpaging.yaml or with
// RDBPAGING_DATABASE_* environment variables.
package main

func main() {
	Execute()
}
