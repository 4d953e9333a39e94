// Package timezone renders timestamps in the application timezone.
//
// Usage:
//
//	timezone.Init("Asia/Jakarta")              // once, at startup
//	now := timezone.Now()                      // current time in app timezone
//	s := timezone.Format(t, time.RFC3339Nano)  // format any time in app timezone
//
// Only IANA names are supported ("UTC", "Europe/London", ...). Until Init is
// called, or when the name cannot be loaded, UTC is used.
package timezone
