// Package rowrender renders a dataset of flat key-value rows in one of
// several output formats.
//
// A [Dataset] is an ordered slice of [Row] maps. A nil Dataset means no data
// was supplied; an empty non-nil Dataset means zero rows. Some formats treat
// the two differently.
//
// # Formats
//
// [New] resolves a format name with [ParseFormat] (case-insensitive):
//
//   - html, markdown (md): rendered through a template
//   - json: compact JSON, null for an absent dataset
//   - xml: a <rows> document with one <row> element per row
//   - csv: a header line and one quoted line per row
//   - text (plain): "field: value" lines separated by "---"
//   - protobuf (proto): the protobuf wire encoding of the rows, in base64
//
// Field order within a row is [Row.Keys] order, which is lexicographic.
//
// # Templates
//
// HTML and Markdown read a template file, either the path given to [New] or
// default.html / default.md in the template directory (see
// [WithTemplateDir]). The template language has four directives:
//
//	{{ field }}                                 value of field in the first row
//	{% for item in field %} ... {% endfor %}    repeat for each comma-separated item
//	{% if field %} ... {% else %} ... {% endif %} conditional, true iff the value is "true"
//	{% include path %}                          splice in another template
//
// Variables and conditions read the first row only; with no rows a
// conditional renders neither branch. A loop body repeats for
// every item of every row that has the list field, with the literal text
// "{ item }" replaced by the item. Directives inside a loop body are not
// re-evaluated per item.
//
// Each included file is expanded at most once per render. The top-level
// template is not counted, so a template that includes itself expands one
// more time before the nested include is skipped and logged as a warning.
// Unrecognized or malformed statements are dropped silently.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnknownFormat] — unrecognized format name
//   - [ErrFile] — a template could not be read; the error is a [*FileError]
//   - [ErrSerialization] — encoding or decoding failed
package rowrender
