// Package netlenium is a client for the Netlenium browser-automation server.
//
// Commands are named, path-like operations ("admin/active_sessions") sent with
// a set of string parameters. Successful commands return a JSON body that is
// decoded into typed values; failed commands return a JSON error body
// carrying a numeric ErrorCode, which is decoded into an *Error whose Kind
// identifies the failure.
//
// # Usage
//
//	client := netlenium.New("http://localhost:6410", netlenium.WithSecret(secret))
//	sessions, err := client.GetSessions(ctx)
//	if err != nil {
//	    switch netlenium.KindOf(err) {
//	    case netlenium.KindUnauthorized:
//	        // wrong or missing secret
//	    case 0:
//	        // transport or decoding problem, not a server failure
//	    }
//	    return err
//	}
//
// # Errors
//
// Server failures are *Error values. Branch on the Kind field via errors.As,
// KindOf, or errors.Is with a Kind as the target:
//
//	if errors.Is(err, netlenium.KindSessionNotFound) { ... }
//
// Error bodies that are not JSON objects decode to KindBodyParse with the
// original text in Raw. Codes outside the known table decode to
// KindUnknownErrorCode with the number in Code.
//
// # Thread Safety
//
// A Client is immutable after New and may be shared between goroutines.
package netlenium
