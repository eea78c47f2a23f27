/*
Package bitattr implements multi-value attributes stored as a single
integer column: each value of an attribute owns one bit, and a row's
values are the OR of their bits.

We implement:

1. Codecs, mapping an ordered vocabulary to bits and back, and answering
contains-any, contains-all, exact and empty questions about a mask.

2. Sets, a mask bound to its codec, with msgpack and JSON encodings.

3. Scopes, row predicates (with, with_any, without, with_exact, no) that
understand nullable columns, and Columns that evaluate scopes over many
rows using roaring bitmaps.

4. Schemas of records, each owning a fixed map of attribute name to codec,
optionally extending a parent record, loadable from plain definitions.

5. Bindings of a record onto a Go struct, reading and writing the integer
fields that hold the masks.

# Technical Details

**Bits.**
The i-th symbol of a vocabulary owns bit 1<<i. Bits never move: a codec is
immutable, and CheckLayout refuses a new vocabulary that isn't an append-only
extension of the old one. Masks fit into a signed 64-bit column, so a
vocabulary holds at most 63 symbols.

**Blank and zero values.**
Before lookup, encode drops blank values (empty or whitespace-only strings)
and the optional zero value. The zero value lets callers say "explicitly
none"; it encodes to 0 and is never returned by decode.

**NULL.**
When a codec allows NULL, the column may hold NULL in addition to 0. Only
scopes care: without and no also match NULL rows; all other scopes never do.

**Empty queries.**
By default, contains-any, contains-all, with and with_any given no values
mean "any value is set". EmptyQueryVacuous switches to plain set logic.
*/
package bitattr
