// Package plugin serves the expansion rules to a host compiler over a framed
// msgpack protocol on a byte stream (stdin/stdout in `abstractc plugin`).
//
// Each frame is a 4-byte big-endian payload length followed by one msgpack
// value. The host sends Request frames; the server answers every request with
// exactly one Response frame carrying the same ID.
package plugin
