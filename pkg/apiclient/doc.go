// Package apiclient is the generic REST client used to talk to the Foodstack
// backend.
//
// A call is described by a CallSpec (path template, method, path/query/header
// parameters, body, credentials and the expected return Shape). Client.Invoke
// turns it into exactly one HTTP exchange and returns a CallResult holding the
// coerced data and the raw response. Nothing is retried.
//
// Return shapes are resolved through a Registry: primitive kinds are cast
// directly, SequenceOf maps element-wise, and Model tags dispatch to decoders
// registered by the application. Unknown tags pass the decoded JSON through.
package apiclient
