//go:build !release

package glcall

// Debug is true unless built with the release tag. It selects the checked
// invoker and enables assertions.
const Debug = true
