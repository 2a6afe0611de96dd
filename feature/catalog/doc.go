// Package catalog compiles the ROM compatibility catalog into a compact
// binary table.
//
// The input is the human-edited mupen64plus-style INI: blocks headed by a
// 32-character MD5 key hash, each carrying a CRC checksum and a small closed
// set of configuration keys. The output is a checksum-sorted, binary-searchable
// record table with a parallel checksum index and a deduplicated patch-string
// table, plus a canonicalized INI that re-parses to the same table.
//
// # Pipeline
//
// The compile is a strict batch pipeline; each stage consumes the full output
// of the previous one:
//
//   - Parse: scan lines, decode key/value fields into records, intern patch
//     payloads as they are seen.
//   - Resolve: link alias records (RefMD5) to their target by key hash.
//   - Canonicalize: sort by checksum, merge duplicate checksums, elide
//     records that carry only defaults, re-resolve alias indices against
//     final positions.
//   - Emit: serialize the binary artifact and the round-trip text form.
//
// Nothing is written until the whole pipeline has succeeded, so a fatal
// decode error never leaves a partial artifact behind.
package catalog
