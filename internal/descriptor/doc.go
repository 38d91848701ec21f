// Package descriptor rewrites a generated Maven build descriptor (pom.xml)
// so the backend build embeds the frontend's compiled assets.
//
// Merge is a pure transformation over the descriptor bytes: it renames the
// project artifactId, sets the packaging type, pins the Java version
// property, and upserts a maven-resources-plugin execution that copies the
// frontend dist directory into the packaged classpath. All edits are made
// through a DOM-style tree so unrelated structure survives untouched, and
// every step is idempotent: running Merge twice with the same configuration
// yields the same document.
package descriptor
