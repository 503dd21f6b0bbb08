// Package archive packs filesystem trees into a single raw archive and
// unpacks them again.
//
// The packed format is zip. A file target contributes one entry named by
// its base name; a directory target contributes one entry per contained
// file, prefixed with the directory's base name, walked in lexical order
// so repeated builds of the same tree produce the same entry sequence.
// Entry names use forward slashes; a trailing slash marks a directory
// entry with no content.
//
// Entry names are unique within an archive (duplicates fail the build) and
// are checked on both pack and unpack against absolute paths and ".."
// segments, so a hostile archive cannot write outside the extraction
// directory.
//
// The builder stages its output in a temporary file that the caller
// removes once the archive has been encrypted; the raw archive never
// reaches the final output path.
package archive
