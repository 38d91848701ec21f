// Package toolrun executes the external command-line tools the generator
// orchestrates (npm, Maven). It captures combined output while streaming it
// to the configured writers, and reports non-zero exits as *ToolError so
// callers can surface the captured output verbatim.
package toolrun
