// Package harness provides a conformance testing framework for schema
// compilation.
//
// Scenarios are YAML documents that declare a schema (inline CUE or
// file references), plus expectations: the types and unions the
// compiled registry must contain, or the errors compilation and
// validation must report.
//
// Every scenario runs with a fixed build ID, so the resulting snapshot
// bytes are fully deterministic and suitable for golden file
// comparison. RunWithGolden compares the canonical schema document
// against testdata/golden/{name}.golden via goldie.
package harness
