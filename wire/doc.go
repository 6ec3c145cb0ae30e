// Package wire defines the OSM PBF protobuf messages and decodes them from
// raw bytes.
//
// The message set mirrors the two schemas of the PBF format:
//
//   - fileformat: BlobHeader and Blob, the framing layer carrying raw or
//     compressed block bytes.
//   - osmformat: HeaderBlock and PrimitiveBlock with their nested entity
//     messages (Node, Way, Relation, ChangeSet, DenseNodes) and the shared
//     StringTable.
//
// Decoding is built on github.com/richardartoul/molecule, which handles the
// protobuf wire layer (varints, wire types, packed repeated fields) without
// generated code. Repeated scalar fields accept both packed and unpacked
// encodings, as protobuf parsers are required to.
//
// Decoded messages own their data, with one deliberate exception: Blob.Data
// is a view into the input buffer, since a Blob is consumed immediately by
// the block decoder. HeaderBlock and PrimitiveBlock copy strings and string
// table entries out of the input, so they remain valid after the buffer they
// were decoded from is reused.
package wire
