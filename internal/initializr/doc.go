// Package initializr fetches backend project skeletons from a Spring
// Initializr-compatible service. It downloads the generated starter
// archive for a set of project parameters and extracts it into the
// backend target directory. Any network or extraction failure aborts
// the generation pipeline; there is no partial recovery.
package initializr
