// Package response models the result of a network operation as a closed set
// of outcome variants.
//
// # Overview
//
// Every network operation resolves to exactly one of four variants:
//
//   - Success: a decoded 2xx response with body, headers and status code
//   - ServerError: a 4xx-5xx response, with the decoded error payload when
//     available
//   - NetworkError: a transport-level failure with no status code
//   - UnknownError: any other failure, e.g. a decode failure on a 2xx body
//
// The variants are mutually exclusive. Callers can switch on the concrete
// type for exhaustive handling, or use the Failure interface to collapse an
// outcome to "success vs any error":
//
//	switch v := outcome.(type) {
//	case response.Success[User]:
//	    return v.Body, nil
//	case response.ServerError[User]:
//	    return User{}, fmt.Errorf("server rejected request: %d", v.Code)
//	default:
//	    if f, ok := response.AsFailure(outcome); ok {
//	        return User{}, f.Err()
//	    }
//	}
//
// # Error Taxonomy
//
// Only ServerError, NetworkError and UnknownError implement Failure. A
// transport failure (nothing came back) is always a NetworkError; a response
// that arrived with an error status is always a ServerError, with Body set
// to nil when the error payload could not be decoded; everything else is an
// UnknownError, preserving the status code and headers when they were known
// before the failure occurred.
//
// # See Also
//
// The responsecache package layers caching and retry policies over
// operations that produce these outcomes.
package response
