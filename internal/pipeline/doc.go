// Package pipeline orders the generation stages into a strict sequential
// chain: fetch the backend skeleton, scaffold and build the frontend,
// merge the build descriptor, write the workspace root files, and package
// the backend. Each stage gates the next; the first failure aborts the
// run with a StageError naming the stage. No rollback is attempted; a
// partial scaffold is cleaned up manually and regenerated.
package pipeline
