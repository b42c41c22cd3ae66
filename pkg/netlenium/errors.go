package netlenium

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Kind identifies which failure a decoded server error represents.
// Kind implements error so it can be used as an errors.Is target:
//
//	if errors.Is(err, netlenium.KindSessionNotFound) { ... }
type Kind int

// Failure kinds. The zero value is not a valid kind.
const (
	KindGeneric Kind = iota + 1
	KindBodyParse
	KindAttributeNotFound
	KindInvalidProxyScheme
	KindUnsupportedDriver
	KindUnsupportedRequestMethod
	KindSessionExpired
	KindWindowHandlerNotFound
	KindSessionError
	KindSessionNotFound
	KindUnauthorized
	KindTooManySessions
	KindResourceNotFound
	KindJavascriptExecution
	KindMissingParameter
	KindInvalidSearchValue
	KindDriverDisabled
	KindElementNotFound
	KindUnknownErrorCode
)

// Server error codes with a special meaning.
const (
	CodeRawError     = 1
	CodeGeneralError = 100
)

var kindNames = map[Kind]string{
	KindGeneric:                  "Generic",
	KindBodyParse:                "BodyParse",
	KindAttributeNotFound:        "AttributeNotFound",
	KindInvalidProxyScheme:       "InvalidProxyScheme",
	KindUnsupportedDriver:        "UnsupportedDriver",
	KindUnsupportedRequestMethod: "UnsupportedRequestMethod",
	KindSessionExpired:           "SessionExpired",
	KindWindowHandlerNotFound:    "WindowHandlerNotFound",
	KindSessionError:             "SessionError",
	KindSessionNotFound:          "SessionNotFound",
	KindUnauthorized:             "Unauthorized",
	KindTooManySessions:          "TooManySessions",
	KindResourceNotFound:         "ResourceNotFound",
	KindJavascriptExecution:      "JavascriptExecution",
	KindMissingParameter:         "MissingParameter",
	KindInvalidSearchValue:       "InvalidSearchValue",
	KindDriverDisabled:           "DriverDisabled",
	KindElementNotFound:          "ElementNotFound",
	KindUnknownErrorCode:         "UnknownErrorCode",
}

// codeKinds is the fixed server error code table. Codes 1 and 100 are
// handled separately because they carry no specific kind.
var codeKinds = map[int]Kind{
	101: KindAttributeNotFound,
	102: KindInvalidProxyScheme,
	103: KindUnsupportedDriver,
	104: KindUnsupportedRequestMethod,
	105: KindSessionExpired,
	106: KindWindowHandlerNotFound,
	107: KindSessionError,
	108: KindSessionNotFound,
	109: KindUnauthorized,
	110: KindTooManySessions,
	111: KindResourceNotFound,
	112: KindJavascriptExecution,
	113: KindMissingParameter,
	114: KindInvalidSearchValue,
	115: KindDriverDisabled,
	116: KindElementNotFound,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error makes Kind usable as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

// KindForCode returns the failure kind for a server error code. Codes 1 and
// 100 map to KindGeneric; codes outside the table map to KindUnknownErrorCode.
func KindForCode(code int) Kind {
	switch code {
	case CodeRawError, CodeGeneralError:
		return KindGeneric
	}
	if kind, ok := codeKinds[code]; ok {
		return kind
	}
	return KindUnknownErrorCode
}

// Error is a decoded server failure.
type Error struct {
	// Kind selects the failure variant.
	Kind Kind
	// Code is the server's ErrorCode (0 for KindBodyParse).
	Code int
	// Message is suitable for direct display.
	Message string
	// Raw is the unparsed error body. Always set by DecodeError.
	Raw string
	// Err is the underlying parse error for KindBodyParse.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindBodyParse:
		return fmt.Sprintf("unparsable error response: %v: %s", e.Err, e.Raw)
	case KindUnknownErrorCode:
		return e.Message
	default:
		if e.Message == "" {
			return e.Kind.String()
		}
		return e.Kind.String() + ": " + e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is this error's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the failure kind of err, or 0 when err is not a decoded
// server failure.
func KindOf(err error) Kind {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	return 0
}

var errNotObject = errors.New("error body is not a JSON object")

// errorBody is the server's error envelope. ErrorCode is decoded by
// parseErrorCode.
type errorBody struct {
	ErrorCode json.RawMessage `json:"ErrorCode"`
	Message   string          `json:"Message"`
}

// maxExactFloat is the largest magnitude at which every integer is exact.
const maxExactFloat = 1 << 53

// parseErrorCode accepts any integral JSON number, including forms such as
// 108.0 or 1.08e2. An absent or null code is 0.
func parseErrorCode(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	if raw[0] == '"' {
		return 0, fmt.Errorf("error code %s is not a number", raw)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	if i, err := n.Int64(); err == nil && int64(int(i)) == i {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return 0, fmt.Errorf("error code %s is not an integer", raw)
	}
	return int(f), nil
}

// DecodeError decodes a raw error body into a failure. It never returns nil.
// Bodies that are not a JSON object yield KindBodyParse.
func DecodeError(raw string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return &Error{Kind: KindBodyParse, Raw: raw, Err: err}
	}
	if fields == nil {
		return &Error{Kind: KindBodyParse, Raw: raw, Err: errNotObject}
	}

	var body errorBody
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return &Error{Kind: KindBodyParse, Raw: raw, Err: err}
	}
	code, err := parseErrorCode(body.ErrorCode)
	if err != nil {
		return &Error{Kind: KindBodyParse, Raw: raw, Err: err}
	}

	kind := KindForCode(code)
	e := &Error{
		Kind:    kind,
		Code:    code,
		Message: body.Message,
		Raw:     raw,
	}
	switch {
	case code == CodeRawError:
		e.Message = raw
	case kind == KindUnknownErrorCode:
		e.Message = fmt.Sprintf("unknown error code %d", code)
		if body.Message != "" {
			e.Message += ": " + body.Message
		}
	}
	return e
}
