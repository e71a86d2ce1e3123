// Package writers turns a report.Report into serialized output.
//
// Design:
//   - Writers own all presentation knowledge (TSV, JSON/JSONL/YAML, tree, table).
//   - The registry core stays domain-only; report stays presentation-neutral.
//   - JSON/JSONL/YAML go through pkg/api (v1) for a stable wire format.
package writers
