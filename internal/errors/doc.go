// Package errors provides typed error values for the archrypt application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Pipeline errors: a run was rejected up front (ErrInvalidExtension, ErrInvalidTarget)
//   - Archive errors: entry naming problems (ErrDuplicateEntry, ErrUnsafePath)
//   - Container errors: decode or decrypt failures (ErrMalformedContainer, ErrAuthenticationFailed)
//   - Key errors: key loading and registry selection (ErrKeyParse, ErrNoPublicKey)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !strings.EqualFold(ext, ContainerExtension) {
//	    return nil, errors.ErrInvalidExtension
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Compress(ctx, opts)
//	if errors.Is(err, aerrors.ErrAuthenticationFailed) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("unwrapping content key: %w", errors.ErrKeyUnwrapFailed)
package errors
