// Package sanitizer normalizes guest-supplied contact fields before
// validation and persistence. Sanitization is lossy on purpose: values
// are trimmed, whitespace-collapsed and canonicalized so that equality
// checks and phone lookups behave predictably.
package sanitizer
