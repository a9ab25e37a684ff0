// Package runner invokes external platform-specific SDK runners and turns
// their native output into canonical results.
//
// The SDKs themselves are external collaborators: each platform is driven
// through a configured command that reads adapted OpenQASM on stdin and
// prints one JSON result envelope on stdout. The envelope carries the
// platform's native result shape, which is handed to the matching
// normalizer entry point in internal/result.
package runner
