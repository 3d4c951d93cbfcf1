// Package javaio writes the subset of the Java object-stream protocol
// needed to ship log records to org.apache.log4j receivers.
//
// It is deliberately not a general object serializer. An ObjectWriter
// supports exactly the operations the fixed LocationInfo record shape
// requires: the stream header, a null marker, a class prolog with
// back-references for already-described classes, and length-prefixed
// strings in the modified UTF-8 variant (NUL encoded as C0 80,
// supplementary planes as CESU-8 surrogate pairs, length counted in
// UTF-16 code units).
package javaio
