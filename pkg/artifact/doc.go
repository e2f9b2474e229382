// Package artifact writes generated artifacts to an output directory.
//
// Files are replaced atomically and only when their content changed, which
// keeps build systems that track modification times quiet on regeneration.
// Each write records a manifest of BLAKE2b-256 digests next to the
// artifacts; Check compares a fresh run against the files on disk without
// touching them.
package artifact
