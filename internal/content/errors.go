// File path: internal/content/errors.go
package content

import "errors"

// Sentinel errors for the two terminal failure modes of the engine.
// Check with errors.Is(). Provider-internal error text is logged, never
// carried on these chains, so handlers can surface them verbatim.
var (
	// ErrGenerationFailed covers a whole-batch failure: the collaborator
	// call errored or its payload was not a parseable array. Nothing
	// partial is returned alongside it.
	ErrGenerationFailed = errors.New("content: generation failed")

	// ErrRefinementFailed covers a single-section refinement failure.
	// The caller must leave the section's persisted state untouched.
	ErrRefinementFailed = errors.New("content: refinement failed")
)
