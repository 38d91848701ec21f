// Package cli wires the cobra command tree: project generation (new),
// standalone descriptor merging (merge), environment checks (doctor),
// settings (config), and version reporting.
package cli
