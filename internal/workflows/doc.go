// Package workflows provides high-level orchestration for archrypt commands.
//
// Workflows coordinate the archive and crypto packages to implement
// complete user-facing features, independent of CLI concerns like flag
// parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Resolves key paths (flag value or registry default)
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Gating on the container extension before any work
//   - Sequencing build, seal, encode on compress
//   - Sequencing decode, open, extract on extract
//   - Managing staging files and the atomic output write
//
// # Available Workflows
//
//   - Compress: packs targets and seals them into a .acrp container
//   - Extract: opens a .acrp container and unpacks it into a directory
//
// Each run is synchronous and owns its buffers, staging files, and key
// material; no state is shared between invocations.
//
// # Progress Reporting
//
// Both workflows accept an Observer that receives one signal per packed
// or extracted file plus one for the cryptographic stage. Progress is
// presentation only; workflows run identically with no observer attached.
//
// # Error Handling
//
// Workflows fail fast: the first error from any stage propagates to the
// caller unchanged in meaning, with no retries. Check conditions with
// errors.Is() against the internal/errors sentinels:
//
//	result, err := workflows.Extract(ctx, opts)
//	if errors.Is(err, aerrors.ErrAuthenticationFailed) {
//	    // Container was tampered with or the wrong key was used
//	}
package workflows
