// Package workflows provides high-level orchestration for opsvault
// commands.
//
// Workflows coordinate the engine packages (vault, store, configs,
// audit) to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI
// concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving the storage adapter and metadata
//   - Enforcing the unlock rate limit and password verification
//   - Performing the core operation against the locked session
//   - Recording audit trail entries
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package,
// allowing the CLI layer to provide appropriate user-facing messages
// without string matching. Use errors.Is() to check for specific error
// conditions:
//
//	result, err := workflows.Unlock(ctx, opts)
//	if errors.Is(err, kerrors.ErrLocked) {
//	    // Tell the user to wait out the lockout
//	}
package workflows
